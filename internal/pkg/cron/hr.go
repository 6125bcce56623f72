package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kalibra-hr/workforce-backend-go/internal/service/accrual"
	"github.com/kalibra-hr/workforce-backend-go/internal/service/reconcile"
)

// HRJobs wires the accrual and reconciliation engines into the scheduler.
// Every job is idempotent, so the interval only controls freshness.
type HRJobs struct {
	accrualSvc   *accrual.Service
	reconcileSvc *reconcile.Service
}

func NewHRJobs(accrualSvc *accrual.Service, reconcileSvc *reconcile.Service) *HRJobs {
	return &HRJobs{
		accrualSvc:   accrualSvc,
		reconcileSvc: reconcileSvc,
	}
}

func (j *HRJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("allocate_annual_leave", interval, j.AllocateAnnualLeave)
	scheduler.AddJob("allocate_sick_leave", interval, j.AllocateSickLeave)
	scheduler.AddJob("reconcile_attendance", interval, j.ReconcileAttendance)
}

func (j *HRJobs) AllocateAnnualLeave(ctx context.Context) error {
	slog.Info("Cron: Starting annual leave allocation job")

	result, err := j.accrualSvc.RunAnnual(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to run annual accrual: %w", err)
	}

	slog.Info("Cron: Annual leave allocation finished",
		"employees_processed", result.EmployeesProcessed,
		"days_allocated", result.TotalDaysAllocated)
	return nil
}

func (j *HRJobs) AllocateSickLeave(ctx context.Context) error {
	slog.Info("Cron: Starting sick leave allocation job")

	result, err := j.accrualSvc.RunSick(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to run sick accrual: %w", err)
	}

	slog.Info("Cron: Sick leave allocation finished",
		"employees_processed", result.EmployeesProcessed,
		"days_allocated", result.TotalDaysAllocated)
	return nil
}

// ReconcileAttendance reconciles the current month. Allocation jobs are
// registered first so fresh leave is visible within the same cycle.
func (j *HRJobs) ReconcileAttendance(ctx context.Context) error {
	slog.Info("Cron: Starting attendance reconciliation job")

	now := time.Now().UTC()
	result, err := j.reconcileSvc.ReconcileMonth(ctx, now.Year(), now.Month(), "")
	if err != nil {
		return fmt.Errorf("failed to reconcile attendance: %w", err)
	}

	slog.Info("Cron: Attendance reconciliation finished",
		"created", result.Created,
		"updated", result.Updated)
	return nil
}
