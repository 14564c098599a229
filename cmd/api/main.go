package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	appHTTP "github.com/cmlabs-hris/payroll-engine/internal/handler/http"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/cache"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/payroll-engine/internal/service/attendance"
	contributionService "github.com/cmlabs-hris/payroll-engine/internal/service/contribution"
	deductionService "github.com/cmlabs-hris/payroll-engine/internal/service/deduction"
	overtimeService "github.com/cmlabs-hris/payroll-engine/internal/service/overtime"
	payslipService "github.com/cmlabs-hris/payroll-engine/internal/service/payslip"
	reportService "github.com/cmlabs-hris/payroll-engine/internal/service/report"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.NewPostgreSQLDB(connectCtx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	cancelConnect()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	periods, err := period.NewCalculator(cfg.Payroll.PeriodAnchor)
	if err != nil {
		slog.Error("invalid period anchor", "error", err)
		os.Exit(1)
	}

	var tableCache cache.Store
	switch cfg.Cache.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		defer client.Close()
		tableCache = cache.NewRedis(client, cfg.Payroll.TableCacheTTL, cfg.Cache.Redis.Prefix)
	default:
		tableCache = cache.NewTTL(cfg.Payroll.TableCacheTTL)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	creditLedger := postgresql.NewTimeCreditLedger(db)
	deductionRepo := postgresql.NewDeductionRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	allowanceRepo := postgresql.NewAllowanceRepository(db)
	tableRepo := postgresql.NewStatutoryTableRepository(db)

	contributionSvc := contributionService.NewContributionService(tableRepo, tableCache)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, overtimeRepo, periods)
	overtimeSvc := overtimeService.NewOvertimeService(db, overtimeRepo, creditLedger)
	deductionSvc := deductionService.NewDeductionService(deductionRepo, employeeRepo, contributionSvc, periods)
	payslipSvc := payslipService.NewPayslipService(
		db,
		payslipRepo,
		allowanceRepo,
		employeeRepo,
		attendanceSvc,
		deductionSvc,
		contributionSvc,
		periods,
	)
	reportSvc := reportService.NewReportService(payslipRepo, employeeRepo)

	router := appHTTP.NewRouter(
		cfg,
		jwt.NewAuth(cfg.JWT.Secret),
		appHTTP.NewPeriodHandler(periods),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewOvertimeHandler(overtimeSvc),
		appHTTP.NewDeductionHandler(deductionSvc),
		appHTTP.NewPayslipHandler(payslipSvc),
		appHTTP.NewContributionHandler(contributionSvc),
		appHTTP.NewReportHandler(reportSvc),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler()
	if cfg.Payroll.AutoDraft {
		cron.NewPayrollJobs(employeeRepo, payslipRepo, payslipSvc, periods).
			RegisterJobs(scheduler, cfg.Payroll.AutoDraftInterval)
	}
	scheduler.Start(ctx)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	scheduler.Stop()
}
