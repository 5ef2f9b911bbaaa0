package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PsyBookingService/internal/api/handlers/bulk_set_slots"
	"github.com/m04kA/PsyBookingService/internal/api/handlers/cancel_booking"
	"github.com/m04kA/PsyBookingService/internal/api/handlers/client_lookup"
	"github.com/m04kA/PsyBookingService/internal/api/handlers/create_booking"
	"github.com/m04kA/PsyBookingService/internal/api/handlers/get_available_slots"
	"github.com/m04kA/PsyBookingService/internal/api/handlers/get_booking"
	"github.com/m04kA/PsyBookingService/internal/api/handlers/get_client_bookings"
	"github.com/m04kA/PsyBookingService/internal/api/handlers/get_consistency"
	"github.com/m04kA/PsyBookingService/internal/api/handlers/get_provider_slots"
	"github.com/m04kA/PsyBookingService/internal/api/handlers/get_stats"
	"github.com/m04kA/PsyBookingService/internal/api/handlers/list_bookings"
	"github.com/m04kA/PsyBookingService/internal/api/handlers/set_slot_availability"
	"github.com/m04kA/PsyBookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/PsyBookingService/internal/api/handlers/update_payment_status"
	"github.com/m04kA/PsyBookingService/internal/api/middleware"
)

// Handlers все HTTP-обработчики сервиса
type Handlers struct {
	CreateBooking       *create_booking.Handler
	GetAvailableSlots   *get_available_slots.Handler
	GetProviderSlots    *get_provider_slots.Handler
	ClientLookup        *client_lookup.Handler
	GetClientBookings   *get_client_bookings.Handler
	ListBookings        *list_bookings.Handler
	GetBooking          *get_booking.Handler
	UpdateBookingStatus *update_booking_status.Handler
	UpdatePaymentStatus *update_payment_status.Handler
	CancelBooking       *cancel_booking.Handler
	SetSlotAvailability *set_slot_availability.Handler
	BulkSetSlots        *bulk_set_slots.Handler
	GetStats            *get_stats.Handler
	GetConsistency      *get_consistency.Handler
}

// Options необязательные части роутера
type Options struct {
	Metrics        middleware.HTTPMetrics // nil - без HTTP-метрик
	MetricsPath    string
	MetricsHandler http.Handler
	RateLimiter    *middleware.RateLimiter // nil - без ограничения POST /bookings
}

// NewRouter собирает маршруты /api/v1
func NewRouter(h Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}

	// Metrics endpoint (публичный, без аутентификации)
	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободное время по всем специалистам
	api.HandleFunc("/available-slots", h.GetAvailableSlots.Handle).Methods(http.MethodGet)

	// Календарь специалиста на дату
	api.HandleFunc("/providers/{providerId}/slots", h.GetProviderSlots.Handle).Methods(http.MethodGet)

	// Вход клиента по телефону
	api.HandleFunc("/clients/lookup", h.ClientLookup.Handle).Methods(http.MethodPost)

	// Создание бронирования: анонимно с сайта или от имени специалиста/менеджера
	var createBooking http.Handler = http.HandlerFunc(h.CreateBooking.Handle)
	if opts.RateLimiter != nil {
		createBooking = opts.RateLimiter.Middleware(createBooking)
	}
	api.Handle("/bookings", middleware.OptionalAuth(createBooking)).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Записи клиента
	protected.HandleFunc("/clients/bookings", h.GetClientBookings.Handle).Methods(http.MethodGet)

	// --- Специалисты и менеджеры ---
	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireRole(middleware.RoleProvider, middleware.RoleManager))

	staff.HandleFunc("/bookings", h.ListBookings.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{bookingId}", h.GetBooking.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{bookingId}/status", h.UpdateBookingStatus.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/bookings/{bookingId}/payment", h.UpdatePaymentStatus.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/bookings/{bookingId}", h.CancelBooking.Handle).Methods(http.MethodDelete)

	staff.HandleFunc("/providers/{providerId}/slots/{date}/bulk", h.BulkSetSlots.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/providers/{providerId}/slots/{date}/{time}", h.SetSlotAvailability.Handle).Methods(http.MethodPut)

	// --- Только менеджеры ---
	managers := protected.PathPrefix("").Subrouter()
	managers.Use(middleware.RequireRole(middleware.RoleManager))

	managers.HandleFunc("/stats", h.GetStats.Handle).Methods(http.MethodGet)
	managers.HandleFunc("/consistency", h.GetConsistency.Handle).Methods(http.MethodGet)

	return r
}
