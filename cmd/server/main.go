package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/app"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/config"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/logger"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/models"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/telemetry"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiCyan  = "\033[36m"
	ansiDim   = "\033[2m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fatal("config_load_failed", err)
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()

	if cfg.Auth.Enabled && len(cfg.Auth.JWTSecret) < 32 {
		logger.Warnw("auth_secret_weak", "hint", "configure auth.jwt_secret with at least 32 random bytes")
	}

	// 初始化数据库
	db, err := models.OpenDB(models.DBOptions{
		Driver:  cfg.Database.Driver,
		DSN:     cfg.Database.DSN,
		LogSQL:  cfg.Database.LogSQL,
		Tracing: cfg.Telemetry.Enabled,
		Pool: models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		},
	})
	if err != nil {
		fatal("database_open_failed", err)
	}

	// 自动迁移数据库表
	if cfg.Database.Migrate {
		if err := models.AutoMigrate(db); err != nil {
			fatal("database_migrate_failed", err)
		}
	}

	tel, err := telemetry.Setup(context.Background(), cfg.Telemetry)
	if err != nil {
		fatal("telemetry_setup_failed", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 数据库、Redis 与追踪的关闭由 app.Runner 在 HTTP 服务停止后执行
	opts := app.Options{
		Config:  cfg,
		DB:      db,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
	if tel != nil {
		opts.Tracer = tel
	}
	if err := app.Run(opts); err != nil {
		logger.Errorw("app_run_failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func fatal(event string, err error) {
	logger.Errorw(event, "error", err)
	logger.Sync()
	os.Exit(1)
}

func printStartupBanner() {
	fmt.Println(ansiCyan + ansiBold + "dynamic-pricing-food-service" + ansiReset)
	fmt.Println(ansiDim + "delivery price calculation api" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}
