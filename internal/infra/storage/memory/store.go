package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
)

type txKey struct{}

// Store хранилище в памяти процесса: поля, бронирования и транзакции.
// Транзакции сериализуются глобальной блокировкой и откатываются по снимку.
// Возвращает те же ошибки, что и репозитории PostgreSQL.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	fields   map[uuid.UUID]*domain.Field
	bookings map[uuid.UUID]*domain.Booking

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		fields:   make(map[uuid.UUID]*domain.Field),
		bookings: make(map[uuid.UUID]*domain.Booking),
		now:      time.Now,
	}
}

// AddField добавляет поле в каталог
func (s *Store) AddField(f *domain.Field) *domain.Field {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	now := s.now().UTC()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now

	stored := copyField(f)
	s.fields[stored.ID] = stored
	return copyField(stored)
}

// Do выполняет fn в транзакции
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.DoSerializable(ctx, fn)
}

// DoSerializable выполняет fn под глобальной блокировкой.
// При ошибке или панике изменения бронирований откатываются.
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snapshot)
			panic(p)
		}
		if err != nil {
			s.restore(snapshot)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, true))
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// lockWrite вне транзакции ждёт завершения активных транзакций
func (s *Store) lockWrite(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

func (s *Store) snapshot() map[uuid.UUID]*domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[uuid.UUID]*domain.Booking, len(s.bookings))
	for id, b := range s.bookings {
		snap[id] = copyBooking(b)
	}
	return snap
}

func (s *Store) restore(snap map[uuid.UUID]*domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = snap
}

// Fields возвращает репозиторий полей поверх хранилища
func (s *Store) Fields() *FieldRepository {
	return &FieldRepository{store: s}
}

// Bookings возвращает репозиторий бронирований поверх хранилища
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// FieldRepository каталог полей в памяти
type FieldRepository struct {
	store *Store
}

// GetByID получает поле по ID
func (r *FieldRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Field, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f, ok := r.store.fields[id]
	if !ok {
		return nil, field.ErrFieldNotFound
	}
	return copyField(f), nil
}

// List получает поля по фильтру, отсортированные по названию
func (r *FieldRepository) List(_ context.Context, filter domain.FieldsFilter) ([]*domain.Field, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	result := make([]*domain.Field, 0)
	for _, f := range r.store.fields {
		if filter.SportType != nil && f.SportType != *filter.SportType {
			continue
		}
		if filter.MinPrice != nil && f.PricePerHour < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && f.PricePerHour > *filter.MaxPrice {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(f.Name), query) &&
			!strings.Contains(strings.ToLower(f.Location), query) {
			continue
		}
		result = append(result, copyField(f))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID.String() < result[j].ID.String()
	})

	return result, nil
}

// BookingRepository бронирования в памяти
type BookingRepository struct {
	store *Store
}

// Create создает бронирование.
// Активное бронирование того же слота возвращает booking.ErrSlotTaken.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	unlock := r.store.lockWrite(ctx)
	defer unlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if b.IsActive() {
		for _, existing := range r.store.bookings {
			if existing.IsActive() &&
				existing.FieldID == b.FieldID &&
				sameDay(existing.Date, b.Date) &&
				existing.StartTime.Equal(b.StartTime) {
				return nil, booking.ErrSlotTaken
			}
		}
	}

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := r.store.now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	r.store.bookings[b.ID] = copyBooking(b)
	return b, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return copyBooking(b), nil
}

// ListByFieldAndDate получает бронирования поля на дату по времени начала.
// Пустой statuses - любой статус.
func (r *BookingRepository) ListByFieldAndDate(_ context.Context, fieldID uuid.UUID, date time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if b.FieldID != fieldID || !sameDay(b.Date, date) {
			continue
		}
		if len(statuses) > 0 && !hasStatus(statuses, b.Status) {
			continue
		}
		result = append(result, copyBooking(b))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})

	return result, nil
}

// List получает бронирования по фильтру: новые даты первыми, внутри даты по времени
func (r *BookingRepository) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.FieldID != nil && b.FieldID != *filter.FieldID {
			continue
		}
		if filter.Date != nil && !sameDay(b.Date, *filter.Date) {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, copyBooking(b))
	}

	sort.Slice(result, func(i, j int) bool {
		if !sameDay(result[i].Date, result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})

	return result, nil
}

// UpdateStatus меняет статус бронирования и возвращает обновлённую запись
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	unlock := r.store.lockWrite(ctx)
	defer unlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}

	b.Status = status
	b.UpdatedAt = r.store.now().UTC()

	return copyBooking(b), nil
}

func sameDay(a, b time.Time) bool {
	return a.Format(domain.DateFormat) == b.Format(domain.DateFormat)
}

func hasStatus(statuses []domain.BookingStatus, status domain.BookingStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	return &c
}

func copyField(f *domain.Field) *domain.Field {
	c := *f
	c.Amenities = append([]string(nil), f.Amenities...)
	return &c
}
