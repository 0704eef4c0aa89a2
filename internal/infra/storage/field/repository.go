package field

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
)

// amenitiesColumn удобства поля одной колонкой (пустой массив, если их нет)
const amenitiesColumn = "COALESCE(array_agg(fa.amenity ORDER BY fa.amenity) FILTER (WHERE fa.amenity IS NOT NULL), '{}') AS amenities"

// Repository репозиторий каталога полей (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория полей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"f.id",
		"f.name",
		"f.sport_type",
		"f.location",
		"f.description",
		"f.price_per_hour",
		"f.image_url",
		amenitiesColumn,
		"f.created_at",
		"f.updated_at",
	).
		From("fields f").
		LeftJoin("field_amenities fa ON fa.field_id = f.id").
		GroupBy("f.id")
}

// GetByID получает поле вместе с удобствами
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Field, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.baseSelect().
		Where(squirrel.Eq{"f.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	field, err := scanField(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFieldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan field: %v", ErrScanRow, err)
	}

	return field, nil
}

// List получает поля по фильтру, отсортированные по названию
func (r *Repository) List(ctx context.Context, filter domain.FieldsFilter) ([]*domain.Field, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.baseSelect().OrderBy("f.name ASC")

	if filter.SportType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"f.sport_type": *filter.SportType})
	}
	if filter.MinPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"f.price_per_hour": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"f.price_per_hour": *filter.MaxPrice})
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + q + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"f.name": pattern},
			squirrel.ILike{"f.location": pattern},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	fields := make([]*domain.Field, 0)
	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		fields = append(fields, field)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return fields, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanField(row rowScanner) (*domain.Field, error) {
	var field domain.Field
	var description, imageURL sql.NullString
	var amenities pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&field.ID,
		&field.Name,
		&field.SportType,
		&field.Location,
		&description,
		&field.PricePerHour,
		&imageURL,
		&amenities,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	field.Description = description.String
	field.ImageURL = imageURL.String
	field.Amenities = []string(amenities)
	field.CreatedAt = createdAt.Time
	field.UpdatedAt = updatedAt.Time

	return &field, nil
}
