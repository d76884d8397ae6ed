// Package main is the entry point for the Void Voyager game backend
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Barkerprooks/void-voyager-backend/app/handlers"
	"github.com/Barkerprooks/void-voyager-backend/app/middleware"
	"github.com/Barkerprooks/void-voyager-backend/app/router"
	businessflow "github.com/Barkerprooks/void-voyager-backend/business_flow"
	"github.com/Barkerprooks/void-voyager-backend/config"
	"github.com/Barkerprooks/void-voyager-backend/models"
	"github.com/Barkerprooks/void-voyager-backend/repository"
	"github.com/Barkerprooks/void-voyager-backend/utils"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	log.Printf("Starting Void Voyager backend (env=%s version=%s)", cfg.Deployment.Environment, cfg.Deployment.Version)

	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if err := migrateSchema(db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	// Repositories
	accountRepo := repository.NewAccountRepository(db)
	shipTypeRepo := repository.NewShipTypeRepository(db)
	ownedShipRepo := repository.NewOwnedShipRepository(db)
	sessionRepo := repository.NewInMemorySessionRepository()

	if err := importShipCatalog(db, shipTypeRepo, cfg.Game.CatalogPath); err != nil {
		log.Fatalf("Failed to import ship catalog: %v", err)
	}

	if err := ensureAdminAccount(accountRepo, cfg); err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}

	rc := setupCache(cfg)

	// Business flows
	authFlow := businessflow.NewAuthFlow(accountRepo, sessionRepo, cfg.Game.StartingBalance, db)
	fleetFlow := businessflow.NewFleetFlow(accountRepo, shipTypeRepo, ownedShipRepo, rc, cfg.Cache.TTL, db)

	// HTTP layer
	authHandler := handlers.NewAuthHandler(authFlow, cfg.Security.CookieSecure)
	fleetHandler := handlers.NewFleetHandler(fleetFlow)
	authMiddleware := middleware.NewAuthMiddleware(sessionRepo, accountRepo)

	r := router.NewFiberRouter(authHandler, fleetHandler, authMiddleware, cfg)
	r.SetupRoutes()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- r.Start(address)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server stopped unexpectedly: %v", err)
	case sig := <-sigCh:
		log.Printf("Received signal %s, shutting down...", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := r.GetApp().ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}

	if rc != nil {
		_ = rc.Close()
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("Shutdown complete")
}

// setupLogging routes the standard logger to a rotating file when
// configured
func setupLogging(cfg *config.ProductionConfig) {
	if cfg.Logging.Output != "file" {
		return
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
	})
}

// openDatabase opens the SQLite database with the configured pool
// limits. TranslateError turns driver unique-violation errors into
// gorm.ErrDuplicatedKey, which the repositories rely on.
func openDatabase(cfg *config.ProductionConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
	if cfg.Database.SlowQueryLog {
		gormCfg.Logger = gormlogger.New(
			log.Default(),
			gormlogger.Config{
				SlowThreshold:             cfg.Database.SlowQueryTime,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database at %s: %w", cfg.Database.Path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying connection pool: %w", err)
	}

	// SQLite serializes writers anyway; a small pool avoids lock
	// contention errors under load.
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

// migrateSchema creates or updates the tables
func migrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.ShipType{},
		&models.OwnedShip{},
	)
}

// catalogEntry mirrors one row of the ship catalog seed file
type catalogEntry struct {
	Name string `json:"name"`
	Cost int64  `json:"cost"`
}

// importShipCatalog loads the catalog seed file and inserts entries
// that are not present yet. Existing entries keep their cost so owned
// ships are never repriced by a restart.
func importShipCatalog(db *gorm.DB, shipTypeRepo repository.ShipTypeRepository, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Catalog file %s not found, skipping import", path)
			return nil
		}
		return fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var entries []catalogEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	ctx := context.Background()
	imported := 0
	for _, entry := range entries {
		if entry.Name == "" || entry.Cost < 0 {
			return fmt.Errorf("invalid catalog entry: name=%q cost=%d", entry.Name, entry.Cost)
		}

		existing, err := shipTypeRepo.ByName(ctx, entry.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		if err := shipTypeRepo.Save(ctx, &models.ShipType{Name: entry.Name, Cost: entry.Cost}); err != nil {
			return err
		}
		imported++
	}

	log.Printf("Ship catalog ready: %d entries imported from %s", imported, path)
	return nil
}

// ensureAdminAccount creates the configured bootstrap admin when it
// does not exist yet
func ensureAdminAccount(accountRepo repository.AccountRepository, cfg *config.ProductionConfig) error {
	if cfg.Admin.Username == "" {
		return nil
	}

	ctx := context.Background()
	existing, err := accountRepo.ByUsername(ctx, cfg.Admin.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	admin := &models.Account{
		Username:     cfg.Admin.Username,
		PasswordHash: utils.HashPassword(cfg.Admin.Password),
		IsAdmin:      utils.ToPtr(true),
		Balance:      cfg.Game.StartingBalance,
	}
	if err := accountRepo.Save(ctx, admin); err != nil {
		return err
	}

	log.Printf("Bootstrap admin account created: %s", cfg.Admin.Username)
	return nil
}

// setupCache connects to Redis when the catalog cache is enabled.
// Cache failures are never fatal; the server just serves the catalog
// from the database.
func setupCache(cfg *config.ProductionConfig) *redis.Client {
	if !cfg.Cache.Enabled {
		return nil
	}

	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		DB:       cfg.Cache.RedisDB,
		Password: cfg.Cache.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable at %s, catalog cache disabled: %v", cfg.Cache.RedisAddr, err)
		_ = rc.Close()
		return nil
	}

	log.Printf("Catalog cache connected: %s", cfg.Cache.RedisAddr)
	return rc
}
