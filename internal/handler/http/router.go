package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(env string, masterHandler MasterHandler, leaveHandler LeaveHandler, attendanceHandler AttendanceHandler, jobsHandler JobsHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Post("/", masterHandler.CreateEmployee)
			r.Get("/", masterHandler.ListEmployees)
		})

		r.Post("/contracts", masterHandler.CreateContract)

		r.Route("/work-schedules", func(r chi.Router) {
			r.Post("/", masterHandler.CreateWorkSchedule)
			r.Post("/{id}/exceptions", masterHandler.AddCalendarException)
		})

		r.Route("/leave-requests", func(r chi.Router) {
			r.Post("/", leaveHandler.CreateRequest)
			r.Post("/{id}/approve", leaveHandler.ApproveRequest)
			r.Post("/{id}/refuse", leaveHandler.RefuseRequest)
		})

		r.Get("/leave-types", leaveHandler.ListTypes)
		r.Get("/leave-allocations", leaveHandler.ListAllocations)

		r.Route("/attendances", func(r chi.Router) {
			r.Post("/", attendanceHandler.Record)
			r.Get("/", attendanceHandler.List)
			r.Get("/summary", attendanceHandler.Summary)
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Post("/accrual/run", jobsHandler.RunAccrual)
			r.Post("/reconcile/run", jobsHandler.RunReconcile)
		})
	})
	return r
}
