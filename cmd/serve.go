package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	cancelReservationHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/cancel_reservation"
	cancelShopReservationHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/cancel_shop_reservation"
	createLeadHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/create_lead"
	createReservationHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/get_available_slots"
	getCatalogHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/get_catalog"
	getReservationHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/get_reservation"
	getShopLeadsHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/get_shop_leads"
	getShopReservationsHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/get_shop_reservations"
	getShopSettingsHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/get_shop_settings"
	publishShopHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/publish_shop"
	quotePriceHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/quote_price"
	reorderCatalogHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/reorder_catalog"
	replaceScheduleHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/replace_schedule"
	updateReservationStatusHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/update_reservation_status"
	updateShopSettingsHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/update_shop_settings"
	"github.com/m04kA/SMC-DetailingBooking/internal/api/middleware"
	catalogRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/catalog"
	leadRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/lead"
	reservationRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/schedule"
	shopRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/shop"
	leadsService "github.com/m04kA/SMC-DetailingBooking/internal/service/leads"
	reservationsService "github.com/m04kA/SMC-DetailingBooking/internal/service/reservations"
	shopsService "github.com/m04kA/SMC-DetailingBooking/internal/service/shops"
	createReservationUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/get_available_slots"
	quotePriceUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/quote_price"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API: public booking routes under /api/v1/public/shops/{slug}
and owner routes under /api/v1/shops/{shopId} (X-User-ID header required).`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	log := a.log
	log.Info("Starting SMC-DetailingBooking...")

	// Репозитории
	shopRepository := shopRepo.NewRepository(a.db)
	scheduleRepository := scheduleRepo.NewRepository(a.db)
	catalogRepository := catalogRepo.NewRepository(a.db)
	reservationRepository := reservationRepo.NewRepository(a.db)
	leadRepository := leadRepo.NewRepository(a.db)

	// Use cases
	quotePriceUseCase := quotePriceUC.NewUseCase(shopRepository, catalogRepository, a.metrics, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		quotePriceUseCase,
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		leadRepository,
		quotePriceUseCase,
		a.tx,
		a.metrics,
		log,
	)

	// Сервисы
	shopSvc := shopsService.NewService(shopRepository, scheduleRepository, catalogRepository, a.tx, log)
	reservationSvc := reservationsService.NewService(reservationRepository, shopRepository, a.tx, log)
	leadSvc := leadsService.NewService(leadRepository, shopRepository, catalogRepository, a.metrics, log)

	// Handlers
	getCatalog := getCatalogHandler.NewHandler(shopSvc, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	createLead := createLeadHandler.NewHandler(leadSvc, log)

	getShopReservations := getShopReservationsHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	cancelShopReservation := cancelShopReservationHandler.NewHandler(reservationSvc, log)
	getShopSettings := getShopSettingsHandler.NewHandler(shopSvc, log)
	updateShopSettings := updateShopSettingsHandler.NewHandler(shopSvc, log)
	replaceSchedule := replaceScheduleHandler.NewHandler(shopSvc, log)
	reorderCatalog := reorderCatalogHandler.NewHandler(shopSvc, log)
	publishShop := publishShopHandler.NewHandler(shopSvc, log)
	getShopLeads := getShopLeadsHandler.NewHandler(leadSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if a.metrics != nil {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		r.Handle(a.cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", a.cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (страница бронирования автомойки)
	// ============================================================

	api.HandleFunc("/public/shops/{slug}", getCatalog.Handle).Methods(http.MethodGet)

	public := api.PathPrefix("/public/shops/{slug}").Subrouter()
	public.HandleFunc("/quote", quotePrice.Handle).Methods(http.MethodPost)
	public.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	public.HandleFunc("/reservations/{reference}", getReservation.Handle).Methods(http.MethodGet)
	public.HandleFunc("/reservations/{reference}/cancel", cancelReservation.Handle).Methods(http.MethodPost)
	public.HandleFunc("/leads", createLead.Handle).Methods(http.MethodPost)

	// ============================================================
	// OWNER ROUTES (требуют X-User-ID header)
	// ============================================================

	owner := api.PathPrefix("/shops/{shopId}").Subrouter()
	owner.Use(middleware.Auth)

	// --- Бронирования ---
	owner.HandleFunc("/reservations", getShopReservations.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)
	owner.HandleFunc("/reservations/{reservationId}/cancel", cancelShopReservation.Handle).Methods(http.MethodPost)

	// --- Настройки и каталог ---
	owner.HandleFunc("/settings", getShopSettings.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/settings", updateShopSettings.Handle).Methods(http.MethodPatch)
	owner.HandleFunc("/schedule", replaceSchedule.Handle).Methods(http.MethodPut)
	owner.HandleFunc("/reorder/{list}", reorderCatalog.Handle).Methods(http.MethodPut)
	owner.HandleFunc("/publication", publishShop.Handle).Methods(http.MethodPost, http.MethodDelete)

	// --- Заявки ---
	owner.HandleFunc("/leads", getShopLeads.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", a.cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
		return err
	case <-quit:
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(a.cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		return err
	}

	log.Info("Server stopped gracefully")
	return nil
}
