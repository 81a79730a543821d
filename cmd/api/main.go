package main

import (
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"rewards_admin/internal/audit"
	"rewards_admin/internal/config"
	"rewards_admin/internal/db"
	httpserver "rewards_admin/internal/http"
	"rewards_admin/internal/models"
	"rewards_admin/internal/permissions"
	"rewards_admin/internal/seed"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("❌ Failed to build logger: %v", err)
	}
	defer logger.Sync()

	gdb := db.Connect(cfg.DSN)
	db.AutoMigrate(gdb,
		&models.AdminUser{},
		&models.Rule{},
		&models.ConversionRate{},
		&models.Variable{},
		&models.ProgramUser{},
		&models.AdminLog{},
	)

	store := permissions.NewStore(permissions.GormDirectory{DB: gdb}, logger)

	if err := seed.FirstSetup(gdb, store); err != nil {
		log.Fatalf("❌ Seed failed: %v", err)
	}

	recorder := audit.NewRecorder(audit.GormSink{DB: gdb}, logger, audit.DefaultConfig())
	if err := recorder.Start(); err != nil {
		log.Fatalf("❌ Failed to start audit recorder: %v", err)
	}

	r := httpserver.NewRouter(gdb, cfg.JWTSecret, store, recorder)
	log.Printf("🚀 Server listening on :%s\n", cfg.AppPort)
	if err := r.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}

	if err := recorder.Stop(5 * time.Second); err != nil {
		logger.Warn("audit recorder shutdown", zap.Error(err))
	}
}
