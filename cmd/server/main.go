package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/SUSHIbit/ProjectRara/internal/config"
	"github.com/SUSHIbit/ProjectRara/internal/db"
	"github.com/SUSHIbit/ProjectRara/internal/handler"
	"github.com/SUSHIbit/ProjectRara/internal/repository"
	"github.com/SUSHIbit/ProjectRara/internal/server"
	"github.com/SUSHIbit/ProjectRara/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	// repositories
	userRepo := repository.UserRepository{DB: pg}
	attendanceRepo := repository.AttendanceRepository{DB: pg}
	benefitRepo := repository.BenefitRepository{DB: pg}
	serviceRepo := repository.ServiceRepository{DB: pg}
	catalogRepo := repository.ServiceTypeRepository{DB: pg}
	txRepo := repository.TransactionRepository{DB: pg}

	if err := catalogRepo.SeedDefaults(ctx); err != nil {
		logger.Error("failed to seed service types", "err", err)
		os.Exit(1)
	}

	// services
	authSvc := service.AuthService{Config: cfg, Users: userRepo, Logger: logger}
	attendanceSvc := service.AttendanceService{Store: attendanceRepo}
	billingSvc := service.BillingService{
		Services:     serviceRepo,
		Catalog:      catalogRepo,
		Customers:    userRepo,
		Benefits:     benefitRepo,
		Transactions: txRepo,
	}
	salesSvc := service.SalesService{Store: txRepo}
	membershipSvc := service.MembershipService{
		Users:        userRepo,
		Benefits:     benefitRepo,
		Transactions: txRepo,
	}
	benefitSvc := service.BenefitService{Users: userRepo, Store: benefitRepo}

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	authHandler := handler.AuthHandler{Service: &authSvc, Users: userRepo}
	customerHandler := handler.CustomerHandler{Users: userRepo, Benefits: benefitRepo, Catalog: catalogRepo}
	serviceHandler := handler.ServiceHandler{Repo: serviceRepo, Catalog: catalogRepo}
	attendanceHandler := handler.AttendanceHandler{Service: attendanceSvc}
	transactionHandler := handler.TransactionHandler{Billing: billingSvc, Receipts: txRepo, Currency: cfg.DefaultCurrency}
	salesHandler := handler.SalesHandler{Service: salesSvc, Currency: cfg.DefaultCurrency}
	memberHandler := handler.MemberHandler{Service: membershipSvc}
	benefitHandler := handler.BenefitHandler{Service: benefitSvc}

	router := server.NewRouter(cfg, logger,
		healthHandler,
		authHandler,
		customerHandler,
		serviceHandler,
		attendanceHandler,
		transactionHandler,
		salesHandler,
		memberHandler,
		benefitHandler,
	)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
