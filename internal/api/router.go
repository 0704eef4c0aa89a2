package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	createBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_booking"
	getFieldHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_field"
	listBookingsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/list_bookings"
	listFieldsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/list_fields"
	transitionBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/transition_booking"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	bookingsService "github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
	fieldsService "github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
	createBookingUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/get_availability"
	transitionBookingUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dependencies собранные сервисы и use case для HTTP слоя
type Dependencies struct {
	CreateBooking     *createBookingUC.UseCase
	GetAvailability   *getAvailabilityUC.UseCase
	TransitionBooking *transitionBookingUC.UseCase
	Bookings          *bookingsService.Service
	Fields            *fieldsService.Service
	Tokens            middleware.TokenValidator

	// Metrics nil, если метрики выключены
	Metrics     *metrics.Metrics
	MetricsPath string
	// Gatherer источник для /metrics; по умолчанию глобальный реестр prometheus
	Gatherer prometheus.Gatherer

	Logger Logger
}

// NewRouter настраивает маршруты API
func NewRouter(deps Dependencies) *mux.Router {
	log := deps.Logger

	createBooking := createBookingHandler.NewHandler(deps.CreateBooking, log)
	getAvailability := getAvailabilityHandler.NewHandler(deps.GetAvailability, log)
	transitionBooking := transitionBookingHandler.NewHandler(deps.TransitionBooking, log)
	getBooking := getBookingHandler.NewHandler(deps.Bookings, log)
	listBookings := listBookingsHandler.NewHandler(deps.Bookings, log)
	getField := getFieldHandler.NewHandler(deps.Fields, log)
	listFields := listFieldsHandler.NewHandler(deps.Fields, log)

	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	if deps.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.Metrics))

		gatherer := deps.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix; токен необязателен, анонимные запросы отклоняют сами обработчики
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(deps.Tokens, log))

	// --- Каталог полей ---
	api.HandleFunc("/fields", listFields.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields/{fieldId}", getField.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields/{fieldId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Подтверждение и отмена (только администратор)
	api.HandleFunc("/bookings/{bookingId}/status", transitionBooking.Handle).Methods(http.MethodPatch)

	return r
}
