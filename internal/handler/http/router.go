package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtAuth *jwtauth.JWTAuth,
	periodHandler PeriodHandler,
	attendanceHandler AttendanceHandler,
	overtimeHandler OvertimeHandler,
	deductionHandler DeductionHandler,
	payslipHandler PayslipHandler,
	contributionHandler ContributionHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	origins := cfg.App.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).Handler)

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtAuth))
			r.Use(middleware.AuthRequired)

			r.Route("/periods", func(r chi.Router) {
				r.Get("/containing", periodHandler.Containing)
				r.Get("/year/{year}", periodHandler.InYear)
				r.Get("/{start}/next", periodHandler.Next)
				r.Get("/{start}/previous", periodHandler.Previous)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/corrections", attendanceHandler.CreateCorrection)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/entries", attendanceHandler.RecordEntry)
					r.Post("/import", attendanceHandler.Import)
					r.Post("/corrections/{id}/review", attendanceHandler.ReviewCorrection)
					r.Get("/summary", attendanceHandler.Summary)
				})
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Post("/", overtimeHandler.Submit)
				r.Get("/{id}", overtimeHandler.Get)
				r.Post("/{id}/cancel", overtimeHandler.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/{id}/approve", overtimeHandler.Approve)
					r.Post("/{id}/reject", overtimeHandler.Reject)
					r.Get("/credits/{employeeID}", overtimeHandler.CreditBalance)
				})
			})

			r.Get("/contributions/preview", contributionHandler.Preview)

			// HR only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireHR)

				r.Put("/contributions/tables", contributionHandler.SaveTables)

				r.Route("/deductions/{employeeID}/{periodStart}", func(r chi.Router) {
					r.Get("/", deductionHandler.Get)
					r.Put("/", deductionHandler.Update)
				})

				r.Route("/payslips", func(r chi.Router) {
					r.Get("/", payslipHandler.ListByPeriod)
					r.Post("/generate", payslipHandler.Generate)
					r.Get("/{id}", payslipHandler.Get)
					r.Post("/{id}/approve", payslipHandler.Approve)
					r.Post("/{id}/pay", payslipHandler.MarkPaid)
					r.Post("/{id}/adjustments", payslipHandler.AddAdjustment)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/ytd/{employeeID}", reportHandler.EmployeeYTD)
					r.Get("/bir", reportHandler.CompanySummary)
					r.Get("/alphalist.csv", reportHandler.AlphalistCSV)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"Route not found"}}`))
	})

	return r
}
