package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-DetailingBooking/internal/config"
	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
	"github.com/m04kA/SMC-DetailingBooking/pkg/metrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/txmanager"
)

// app общие зависимости команд: конфиг, логгер, подключение к БД
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
	rawDB   *sql.DB
	db      *dbmetrics.DB
	tx      *txmanager.TransactionManager

	stopMetricsCh chan struct{}
}

// newApp загружает конфигурацию и подключается к базе
// withMetrics включает prometheus, если он разрешён в конфиге
func newApp(ctx context.Context, withMetrics bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &app{cfg: cfg, log: log, stopMetricsCh: make(chan struct{})}

	if withMetrics && cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.rawDB = db

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		a.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if a.metrics != nil {
		a.db = dbmetrics.WrapWithDefault(db, a.metrics, cfg.Database.DBName, a.stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		a.db = dbmetrics.Wrap(db, nil)
	}
	a.tx = txmanager.NewTransactionManager(a.db)

	return a, nil
}

// defaultSettings настройки бронирования для новых автомоек
func (a *app) defaultSettings() domain.BookingSettings {
	b := a.cfg.Booking
	return domain.BookingSettings{
		SlotStepMinutes:           b.DefaultSlotStepMinutes,
		MinBookingNoticeMinutes:   b.DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:        b.DefaultAdvanceBookingDays,
		MaxConcurrentReservations: b.DefaultMaxConcurrentReservations,
	}
}

// Close останавливает сбор метрик и закрывает соединения
func (a *app) Close() {
	close(a.stopMetricsCh)
	if a.rawDB != nil {
		if err := a.rawDB.Close(); err != nil {
			a.log.Error("Failed to close database: %v", err)
		}
	}
	_ = a.log.Close()
}
