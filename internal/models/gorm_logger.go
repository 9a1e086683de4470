package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/logger"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogger 将 GORM 日志转发到 zap
type GormLogger struct {
	level gormlogger.LogLevel
}

// NewGormLogger 创建 GORM 日志桥
func NewGormLogger(level gormlogger.LogLevel) *GormLogger {
	return &GormLogger{level: level}
}

// LogMode 实现 gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &GormLogger{level: level}
}

// Info 实现 gormlogger.Interface
func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.FromContext(ctx).Infow("gorm_info", "message", fmt.Sprintf(msg, args...))
	}
}

// Warn 实现 gormlogger.Interface
func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.FromContext(ctx).Warnw("gorm_warn", "message", fmt.Sprintf(msg, args...))
	}
}

// Error 实现 gormlogger.Interface
func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.FromContext(ctx).Errorw("gorm_error", "message", fmt.Sprintf(msg, args...))
	}
}

// Trace 记录 SQL 执行情况；未找到记录不视为错误
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		query, rows := fc()
		logger.FromContext(ctx).Errorw("gorm_query_failed", "sql", query, "rows", rows, "elapsed_ms", elapsed.Milliseconds(), "error", err)
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		query, rows := fc()
		logger.FromContext(ctx).Warnw("gorm_slow_query", "sql", query, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	case l.level >= gormlogger.Info:
		query, rows := fc()
		logger.FromContext(ctx).Debugw("gorm_query", "sql", query, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	}
}
