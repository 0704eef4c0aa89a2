package transition_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-FieldBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

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

type recordingMetrics struct {
	mu     sync.Mutex
	labels []string
}

func (m *recordingMetrics) IncTransition(status, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.labels = append(m.labels, status+"/"+result)
}

type fixture struct {
	store     *memory.Store
	publisher *recordingPublisher
	metrics   *recordingMetrics
	useCase   *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	f := &fixture{
		store:     store,
		publisher: &recordingPublisher{},
		metrics:   &recordingMetrics{},
	}
	f.useCase = NewUseCase(store.Bookings(), store, f.publisher, f.metrics, logger.Nop())
	return f
}

func (f *fixture) seed(t *testing.T, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		FieldID:    uuid.New(),
		UserID:     uuid.New(),
		Date:       time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00:00",
		EndTime:    "11:00:00",
		Status:     status,
		TotalPrice: 60,
	})
	require.NoError(t, err)
	return b
}

func admin() domain.Identity {
	return domain.Identity{UserID: uuid.New(), Role: domain.RoleAdmin}
}

func TestExecute_TransitionMatrix(t *testing.T) {
	tests := []struct {
		from    domain.BookingStatus
		to      string
		allowed bool
	}{
		{domain.StatusPending, "confirmed", true},
		{domain.StatusPending, "cancelled", true},
		{domain.StatusPending, "pending", false},
		{domain.StatusConfirmed, "cancelled", false},
		{domain.StatusConfirmed, "pending", false},
		{domain.StatusConfirmed, "confirmed", false},
		{domain.StatusCancelled, "confirmed", false},
		{domain.StatusCancelled, "pending", false},
		{domain.StatusCancelled, "cancelled", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+tt.to, func(t *testing.T) {
			f := newFixture(t)
			b := f.seed(t, tt.from)

			resp, err := f.useCase.Execute(context.Background(), &Request{
				Identity:     admin(),
				BookingID:    b.ID,
				TargetStatus: tt.to,
			})

			stored, getErr := f.store.Bookings().GetByID(context.Background(), b.ID)
			require.NoError(t, getErr)

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, domain.BookingStatus(tt.to), resp.Status)
				assert.Equal(t, tt.from, resp.PreviousStatus)
				assert.Equal(t, domain.BookingStatus(tt.to), stored.Status)
				assert.Len(t, f.publisher.events, 1)
				return
			}

			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.from, stored.Status)
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestExecute_PublishesStatusEvent(t *testing.T) {
	f := newFixture(t)

	confirmed := f.seed(t, domain.StatusPending)
	_, err := f.useCase.Execute(context.Background(), &Request{Identity: admin(), BookingID: confirmed.ID, TargetStatus: "confirmed"})
	require.NoError(t, err)

	cancelled := f.seed(t, domain.StatusPending)
	_, err = f.useCase.Execute(context.Background(), &Request{Identity: admin(), BookingID: cancelled.ID, TargetStatus: "cancelled"})
	require.NoError(t, err)

	assert.Equal(t, []string{events.BookingConfirmed, events.BookingCancelled}, f.publisher.events)
}

func TestExecute_NonAdminRejected(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t, domain.StatusPending)

	for _, identity := range []domain.Identity{
		domain.Anonymous,
		{UserID: uuid.New(), Role: domain.RoleUser},
		{UserID: b.UserID, Role: domain.RoleUser},
	} {
		_, err := f.useCase.Execute(context.Background(), &Request{
			Identity:     identity,
			BookingID:    b.ID,
			TargetStatus: "confirmed",
		})
		assert.ErrorIs(t, err, ErrActorNotAdmin)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}

	stored, err := f.store.Bookings().GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.useCase.Execute(context.Background(), &Request{
		Identity:     admin(),
		BookingID:    uuid.New(),
		TargetStatus: "confirmed",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t, domain.StatusPending)

	_, err := f.useCase.Execute(context.Background(), &Request{Identity: admin(), BookingID: b.ID, TargetStatus: "approved"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.useCase.Execute(context.Background(), &Request{Identity: admin(), TargetStatus: "confirmed"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Contains(t, f.metrics.labels, "unknown/rejected")
}

func TestExecute_ConcurrentAdminsOneWinner(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t, domain.StatusPending)

	const n = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)

	for i := 0; i < n; i++ {
		target := "confirmed"
		if i%2 == 1 {
			target = "cancelled"
		}
		wg.Add(1)
		go func(target string) {
			defer wg.Done()
			_, err := f.useCase.Execute(context.Background(), &Request{Identity: admin(), BookingID: b.ID, TargetStatus: target})
			if err == nil {
				mu.Lock()
				applied++
				mu.Unlock()
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidTransition), err)
		}(target)
	}
	wg.Wait()

	assert.Equal(t, 1, applied)
}
