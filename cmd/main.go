package main

import (
	"net/http"
	"time"

	"github.com/partsflow/procurement-service/internal/db"
	"github.com/partsflow/procurement-service/internal/handlers"
	"github.com/partsflow/procurement-service/internal/lifecycle"
	"github.com/partsflow/procurement-service/internal/middleware"
	"github.com/partsflow/procurement-service/internal/notification"
	"github.com/partsflow/procurement-service/internal/repository"
	"github.com/partsflow/procurement-service/internal/router"
	"github.com/partsflow/procurement-service/internal/router/config"
	"github.com/partsflow/procurement-service/internal/services"
	"github.com/partsflow/procurement-service/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

const handlerTimeout = 5 * time.Second

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	logger.Init(cfg.Environment, cfg.LogLevel)
	log := logger.GetLogger()
	defer log.Sync()

	runDBMigration(log, cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatal("error initializing database", zap.Error(err))
	}
	defer dbPool.Close()

	demandRepo := repository.NewPostgresDemandRepository(dbPool)
	quoteRepo := repository.NewPostgresQuoteRepository(dbPool)
	orderRepo := repository.NewPostgresOrderRepository(dbPool)
	vendorRepo := repository.NewPostgresVendorRepository(dbPool)
	masterDataRepo := repository.NewPostgresMasterDataRepository(dbPool)
	userRepo := repository.NewPostgresUserRepository(dbPool)

	store := repository.NewPostgresLifecycleStore(dbPool)
	notifier := notification.NewLogNotifier(log)
	engine := lifecycle.NewEngine(store, lifecycle.SystemClock{}, notifier)

	demandService := services.NewDemandService(demandRepo, engine, dbPool)
	quoteService := services.NewQuoteService(quoteRepo, engine, dbPool)
	orderService := services.NewOrderService(orderRepo, store, engine)
	vendorService := services.NewVendorService(vendorRepo)
	masterDataService := services.NewMasterDataService(masterDataRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	statsService := services.NewStatsService(demandRepo, orderRepo, vendorRepo)

	demandHandler := handlers.NewDemandHandler(demandService, log, handlerTimeout)
	quoteHandler := handlers.NewQuoteHandler(quoteService, log, handlerTimeout)
	orderHandler := handlers.NewOrderHandler(orderService, log, handlerTimeout)
	vendorHandler := handlers.NewVendorHandler(vendorService, log, handlerTimeout)
	masterDataHandler := handlers.NewMasterDataHandler(masterDataService, log, handlerTimeout)
	authHandler := handlers.NewAuthHandler(authService, log, handlerTimeout)
	statsHandler := handlers.NewStatsHandler(statsService, log, handlerTimeout)

	routes := router.InitRoutes(demandHandler, quoteHandler, orderHandler, vendorHandler, masterDataHandler, authHandler, statsHandler)
	handler := middleware.Metrics(middleware.Auth(cfg.JWTSecret)(routes))

	log.Info("server is listening", zap.String("address", cfg.ServerAddress))
	if err := http.ListenAndServe(cfg.ServerAddress, handler); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

func runDBMigration(log *zap.Logger, migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", zap.Error(err))
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up", zap.Error(err))
	}
	log.Info("db migrated successfully")
}
