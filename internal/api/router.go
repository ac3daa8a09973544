package api

import (
	"net/http"

	"github.com/gorilla/mux"

	cancelBookingHandler "github.com/m04kA/appointment-booking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/appointment-booking/internal/api/handlers/create_booking"
	createBusinessHandler "github.com/m04kA/appointment-booking/internal/api/handlers/create_business"
	deleteBusinessHandler "github.com/m04kA/appointment-booking/internal/api/handlers/delete_business"
	getAvailableSlotsHandler "github.com/m04kA/appointment-booking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/appointment-booking/internal/api/handlers/get_booking"
	getBusinessHandler "github.com/m04kA/appointment-booking/internal/api/handlers/get_business"
	getBusinessBookingsHandler "github.com/m04kA/appointment-booking/internal/api/handlers/get_business_bookings"
	getMyBookingsHandler "github.com/m04kA/appointment-booking/internal/api/handlers/get_my_bookings"
	listAllBookingsHandler "github.com/m04kA/appointment-booking/internal/api/handlers/list_all_bookings"
	listAllBusinessesHandler "github.com/m04kA/appointment-booking/internal/api/handlers/list_all_businesses"
	listBusinessesHandler "github.com/m04kA/appointment-booking/internal/api/handlers/list_businesses"
	updateBookingStatusHandler "github.com/m04kA/appointment-booking/internal/api/handlers/update_booking_status"
	updateBusinessHandler "github.com/m04kA/appointment-booking/internal/api/handlers/update_business"
	"github.com/m04kA/appointment-booking/internal/api/middleware"
	bookingsService "github.com/m04kA/appointment-booking/internal/service/bookings"
	businessesService "github.com/m04kA/appointment-booking/internal/service/businesses"
	createBookingUC "github.com/m04kA/appointment-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/appointment-booking/internal/usecase/get_available_slots"
)

// Dependencies use cases и сервисы, которые обслуживает API
type Dependencies struct {
	CreateBooking     *createBookingUC.UseCase
	GetAvailableSlots *getAvailableSlotsUC.UseCase
	Bookings          *bookingsService.Service
	Businesses        *businessesService.Service
}

// Options настройки роутера. Nil-поля отключают соответствующий middleware.
type Options struct {
	JWTSecret   string
	Metrics     middleware.HTTPMetrics
	RateLimiter *middleware.RateLimiter
	Logger      middleware.Logger
}

// NewRouter собирает маршруты /api/v1
func NewRouter(deps Dependencies, opts Options) *mux.Router {
	log := opts.Logger

	// Handlers
	createBooking := createBookingHandler.NewHandler(deps.CreateBooking, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(deps.GetAvailableSlots, log)
	getBooking := getBookingHandler.NewHandler(deps.Bookings, log)
	cancelBooking := cancelBookingHandler.NewHandler(deps.Bookings, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(deps.Bookings, log)
	getMyBookings := getMyBookingsHandler.NewHandler(deps.Bookings, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(deps.Bookings, log)
	listAllBookings := listAllBookingsHandler.NewHandler(deps.Bookings, log)
	createBusiness := createBusinessHandler.NewHandler(deps.Businesses, log)
	getBusiness := getBusinessHandler.NewHandler(deps.Businesses, log)
	updateBusiness := updateBusinessHandler.NewHandler(deps.Businesses, log)
	deleteBusiness := deleteBusinessHandler.NewHandler(deps.Businesses, log)
	listBusinesses := listBusinessesHandler.NewHandler(deps.Businesses, log)
	listAllBusinesses := listAllBusinessesHandler.NewHandler(deps.Businesses, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/businesses", listBusinesses.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId:[0-9]+}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId:[0-9]+}", getBusiness.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	if opts.RateLimiter != nil {
		protected.Use(opts.RateLimiter.Middleware)
	}
	protected.Use(middleware.Auth(opts.JWTSecret, log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/mine", getMyBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Бизнесы ---
	protected.HandleFunc("/businesses", createBusiness.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId:[0-9]+}", updateBusiness.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId:[0-9]+}", deleteBusiness.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/businesses/{businessId:[0-9]+}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	protected.HandleFunc("/admin/bookings", listAllBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/businesses", listAllBusinesses.Handle).Methods(http.MethodGet)

	return r
}
