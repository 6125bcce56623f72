package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	playground "github.com/go-playground/validator/v10"

	"github.com/kalibra-hr/workforce-backend-go/internal/config"
	appHTTP "github.com/kalibra-hr/workforce-backend-go/internal/handler/http"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/cron"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/database"
	"github.com/kalibra-hr/workforce-backend-go/internal/repository/postgresql"
	accrualService "github.com/kalibra-hr/workforce-backend-go/internal/service/accrual"
	leaveService "github.com/kalibra-hr/workforce-backend-go/internal/service/leave"
	"github.com/kalibra-hr/workforce-backend-go/internal/service/leavetype"
	reconcileService "github.com/kalibra-hr/workforce-backend-go/internal/service/reconcile"
	scheduleService "github.com/kalibra-hr/workforce-backend-go/internal/service/schedule"
	summaryService "github.com/kalibra-hr/workforce-backend-go/internal/service/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveAllocationRepo := postgresql.NewLeaveAllocationRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	catalog := leavetype.NewCatalog(leaveTypeRepo)
	if err := catalog.EnsureDefaults(context.Background()); err != nil {
		fmt.Println("Error seeding leave types:", err)
		return
	}

	resolver := scheduleService.NewResolver(contractRepo, workScheduleRepo)
	accrualSvc := accrualService.NewService(employeeRepo, contractRepo, leaveAllocationRepo, catalog)
	reconcileSvc := reconcileService.NewService(employeeRepo, leaveRequestRepo, attendanceRepo, resolver)
	requestSvc := leaveService.NewRequestService(employeeRepo, contractRepo, leaveRequestRepo, leaveAllocationRepo, catalog)
	summarySvc := summaryService.NewService(employeeRepo, attendanceRepo)

	scheduler := cron.NewScheduler()
	if cfg.Cron.Enabled {
		hrJobs := cron.NewHRJobs(accrualSvc, reconcileSvc)
		hrJobs.RegisterJobs(scheduler, cfg.Cron.Interval)
		scheduler.Start()
		defer scheduler.Stop()
	}

	validate := playground.New()
	masterHandler := appHTTP.NewMasterHandler(employeeRepo, contractRepo, workScheduleRepo, validate)
	leaveHandler := appHTTP.NewLeaveHandler(requestSvc, leaveAllocationRepo, leaveTypeRepo, catalog, validate)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceRepo, summarySvc, validate)
	jobsHandler := appHTTP.NewJobsHandler(accrualSvc, reconcileSvc)

	router := appHTTP.NewRouter(cfg.App.Env, masterHandler, leaveHandler, attendanceHandler, jobsHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	if err := server.Shutdown(context.Background()); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
