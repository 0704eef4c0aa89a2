package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/memory"
	bookingsService "github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
	fieldsService "github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
	createBookingUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/get_availability"
	transitionBookingUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-FieldBookingService/pkg/jwt"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/slotlock"
)

const testSecret = "router-test-secret"

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ *domain.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

func (p *recordingPublisher) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type testServer struct {
	router    *mux.Router
	tokens    *jwt.Service
	store     *memory.Store
	field     *domain.Field
	publisher *recordingPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.Nop()
	store := memory.NewStore()
	field := store.AddField(&domain.Field{
		Name:         "Field F",
		SportType:    domain.SportFootball,
		Location:     "1 Test Street",
		PricePerHour: 60,
		Amenities:    []string{"Parking"},
	})
	store.AddField(&domain.Field{
		Name:         "Court C",
		SportType:    domain.SportTennis,
		Location:     "2 Test Street",
		PricePerHour: 30,
	})

	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry("field-booking-test", registry)
	publisher := &recordingPublisher{}
	tokens := jwt.NewService(testSecret, time.Hour)
	schedule := domain.DefaultScheduleConfig()

	router := NewRouter(Dependencies{
		CreateBooking: createBookingUC.NewUseCase(
			store.Bookings(), store.Fields(), store, slotlock.Noop{}, publisher, m, schedule, log,
		),
		GetAvailability:   getAvailabilityUC.NewUseCase(store.Bookings(), store.Fields(), schedule, log),
		TransitionBooking: transitionBookingUC.NewUseCase(store.Bookings(), store, publisher, m, log),
		Bookings:          bookingsService.NewService(store.Bookings(), log),
		Fields:            fieldsService.NewService(store.Fields(), log),
		Tokens:            tokens,
		Metrics:           m,
		MetricsPath:       "/metrics",
		Gatherer:          registry,
		Logger:            log,
	})

	return &testServer{
		router:    router,
		tokens:    tokens,
		store:     store,
		field:     field,
		publisher: publisher,
	}
}

func (s *testServer) token(t *testing.T, userID uuid.UUID, role domain.Role) string {
	t.Helper()
	token, err := s.tokens.GenerateAccessToken(userID, string(role))
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type bookingBody struct {
	ID             uuid.UUID `json:"id"`
	FieldID        uuid.UUID `json:"field_id"`
	UserID         uuid.UUID `json:"user_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status"`
	TotalPrice     float64   `json:"total_price"`
}

type availabilityBody struct {
	Date  string `json:"date"`
	Slots []struct {
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		Available bool   `json:"available"`
	} `json:"slots"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func slotAvailable(t *testing.T, body availabilityBody, start string) bool {
	t.Helper()
	for _, slot := range body.Slots {
		if slot.StartTime == start {
			return slot.Available
		}
	}
	t.Fatalf("slot %s not found", start)
	return false
}

func createBody(fieldID uuid.UUID, date, start string) map[string]string {
	return map[string]string{
		"field_id":   fieldID.String(),
		"date":       date,
		"start_time": start,
	}
}

func TestBookConfirmFlow(t *testing.T) {
	s := newTestServer(t)
	userU := s.token(t, uuid.New(), domain.RoleUser)
	userV := s.token(t, uuid.New(), domain.RoleUser)
	admin := s.token(t, uuid.New(), domain.RoleAdmin)

	availabilityPath := "/api/v1/fields/" + s.field.ID.String() + "/availability?date=2025-05-15"

	// U бронирует 10:00
	rec := s.do(t, http.MethodPost, "/api/v1/bookings", userU, createBody(s.field.ID, "2025-05-15", "10:00:00"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created bookingBody
	decode(t, rec, &created)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 60.0, created.TotalPrice)
	assert.Equal(t, "10:00:00", created.StartTime)
	assert.Equal(t, "11:00:00", created.EndTime)
	assert.Equal(t, "2025-05-15", created.Date)

	// V получает конфликт на тот же слот
	rec = s.do(t, http.MethodPost, "/api/v1/bookings", userV, createBody(s.field.ID, "2025-05-15", "10:00"))
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// pending слот не блокирует отображение доступности
	rec = s.do(t, http.MethodGet, availabilityPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var before availabilityBody
	decode(t, rec, &before)
	require.Len(t, before.Slots, 14)
	assert.True(t, slotAvailable(t, before, "10:00:00"))

	// Администратор подтверждает
	rec = s.do(t, http.MethodPatch, "/api/v1/bookings/"+created.ID.String()+"/status", admin,
		map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var confirmed bookingBody
	decode(t, rec, &confirmed)
	assert.Equal(t, "confirmed", confirmed.Status)
	assert.Equal(t, "pending", confirmed.PreviousStatus)

	// Слот 10:00 теперь занят, соседние свободны
	rec = s.do(t, http.MethodGet, availabilityPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var after availabilityBody
	decode(t, rec, &after)
	assert.False(t, slotAvailable(t, after, "10:00:00"))
	assert.True(t, slotAvailable(t, after, "09:00:00"))
	assert.True(t, slotAvailable(t, after, "11:00:00"))

	assert.Equal(t, []string{"booking.created", "booking.confirmed"}, s.publisher.Events())
}

func TestCreateBooking_StatusMapping(t *testing.T) {
	s := newTestServer(t)
	user := s.token(t, uuid.New(), domain.RoleUser)

	tests := []struct {
		name   string
		token  string
		body   interface{}
		status int
	}{
		{"no token", "", createBody(s.field.ID, "2025-05-15", "10:00"), http.StatusUnauthorized},
		{"bad token", "garbage", createBody(s.field.ID, "2025-05-15", "10:00"), http.StatusUnauthorized},
		{"unknown field", user, createBody(uuid.New(), "2025-05-15", "10:00"), http.StatusNotFound},
		{"bad time", user, createBody(s.field.ID, "2025-05-15", "25:00"), http.StatusBadRequest},
		{"bad date", user, createBody(s.field.ID, "15.05.2025", "10:00"), http.StatusBadRequest},
		{"unknown body field", user, map[string]string{"foo": "bar"}, http.StatusBadRequest},
		{"twelve hour clock", user, createBody(s.field.ID, "2025-05-15", "02:00 PM"), http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/v1/bookings", tt.token, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestCreateBooking_ConcurrentRequestsOneWinner(t *testing.T) {
	s := newTestServer(t)

	const n = 16
	codes := make([]int, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		token := s.token(t, uuid.New(), domain.RoleUser)
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			rec := s.do(t, http.MethodPost, "/api/v1/bookings", token, createBody(s.field.ID, "2025-05-15", "18:00"))
			codes[i] = rec.Code
		}(i, token)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, conflicts)
}

func TestTransitionBooking_StatusMapping(t *testing.T) {
	s := newTestServer(t)
	userID := uuid.New()
	user := s.token(t, userID, domain.RoleUser)
	admin := s.token(t, uuid.New(), domain.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/v1/bookings", user, createBody(s.field.ID, "2025-05-15", "12:00"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var booking bookingBody
	decode(t, rec, &booking)
	path := "/api/v1/bookings/" + booking.ID.String() + "/status"

	rec = s.do(t, http.MethodPatch, path, "", map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPatch, path, user, map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPatch, path, admin, map[string]string{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, path, admin, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/v1/bookings/"+uuid.NewString()+"/status", admin, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/v1/bookings/not-a-uuid/status", admin, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, path, admin, map[string]string{"status": "cancelled"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// cancelled терминальный
	rec = s.do(t, http.MethodPatch, path, admin, map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBookings_Visibility(t *testing.T) {
	s := newTestServer(t)
	ownerID := uuid.New()
	owner := s.token(t, ownerID, domain.RoleUser)
	other := s.token(t, uuid.New(), domain.RoleUser)
	admin := s.token(t, uuid.New(), domain.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/v1/bookings", owner, createBody(s.field.ID, "2025-05-15", "08:00"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var booking bookingBody
	decode(t, rec, &booking)

	rec = s.do(t, http.MethodPost, "/api/v1/bookings", other, createBody(s.field.ID, "2025-05-15", "09:00"))
	require.Equal(t, http.StatusCreated, rec.Code)

	bookingPath := "/api/v1/bookings/" + booking.ID.String()
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, bookingPath, owner, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, bookingPath, admin, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, bookingPath, other, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, bookingPath, "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/bookings/"+uuid.NewString(), admin, nil).Code)

	var list struct {
		Bookings []bookingBody `json:"bookings"`
	}

	rec = s.do(t, http.MethodGet, "/api/v1/bookings", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	require.Len(t, list.Bookings, 1)
	assert.Equal(t, ownerID, list.Bookings[0].UserID)

	rec = s.do(t, http.MethodGet, "/api/v1/bookings", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	assert.Len(t, list.Bookings, 2)

	rec = s.do(t, http.MethodGet, "/api/v1/bookings?status=bogus", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/bookings", "", nil).Code)
}

func TestAvailability_StatusMapping(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"ok", "/api/v1/fields/" + s.field.ID.String() + "/availability?date=2025-05-15", http.StatusOK},
		{"missing date", "/api/v1/fields/" + s.field.ID.String() + "/availability", http.StatusBadRequest},
		{"bad date", "/api/v1/fields/" + s.field.ID.String() + "/availability?date=tomorrow", http.StatusBadRequest},
		{"bad id", "/api/v1/fields/abc/availability?date=2025-05-15", http.StatusBadRequest},
		{"unknown field", "/api/v1/fields/" + uuid.NewString() + "/availability?date=2025-05-15", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, tt.path, "", nil)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestFields_Catalog(t *testing.T) {
	s := newTestServer(t)

	var list struct {
		Fields []struct {
			ID        uuid.UUID `json:"id"`
			SportType string    `json:"sport_type"`
		} `json:"fields"`
	}

	rec := s.do(t, http.MethodGet, "/api/v1/fields", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	assert.Len(t, list.Fields, 2)

	rec = s.do(t, http.MethodGet, "/api/v1/fields?sport=tennis", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	require.Len(t, list.Fields, 1)
	assert.Equal(t, "tennis", list.Fields[0].SportType)

	rec = s.do(t, http.MethodGet, "/api/v1/fields?minPrice=50", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	require.Len(t, list.Fields, 1)
	assert.Equal(t, s.field.ID, list.Fields[0].ID)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/fields?sport=chess", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/fields?minPrice=abc", "", nil).Code)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/fields/"+s.field.ID.String(), "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/fields/"+uuid.NewString(), "", nil).Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	user := s.token(t, uuid.New(), domain.RoleUser)

	rec := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/bookings", user, createBody(s.field.ID, "2025-05-15", "20:00"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bookings_total")
	assert.Contains(t, rec.Body.String(), `path="/api/v1/bookings"`)
}
