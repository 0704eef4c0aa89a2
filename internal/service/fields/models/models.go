package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrInvalidFilter возвращается при некорректном фильтре
	ErrInvalidFilter = errors.New("invalid fields filter")
)

// ListFieldsRequest фильтры каталога; "all" и пустая строка означают любой вид спорта
type ListFieldsRequest struct {
	SportType string   `json:"sport,omitempty"`
	MinPrice  *float64 `json:"minPrice,omitempty"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	Query     string   `json:"q,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListFieldsRequest) ToDomainFilter() (domain.FieldsFilter, error) {
	var filter domain.FieldsFilter
	if r == nil {
		return filter, nil
	}

	sport := strings.ToLower(strings.TrimSpace(r.SportType))
	if sport != "" && sport != "all" {
		st := domain.SportType(sport)
		if !st.IsValid() {
			return filter, fmt.Errorf("%w: unknown sport type %q", ErrInvalidFilter, r.SportType)
		}
		filter.SportType = &st
	}

	if r.MinPrice != nil && *r.MinPrice < 0 {
		return filter, fmt.Errorf("%w: minPrice must not be negative", ErrInvalidFilter)
	}
	if r.MinPrice != nil && r.MaxPrice != nil && *r.MinPrice > *r.MaxPrice {
		return filter, fmt.Errorf("%w: minPrice is greater than maxPrice", ErrInvalidFilter)
	}

	filter.MinPrice = r.MinPrice
	filter.MaxPrice = r.MaxPrice
	filter.Query = strings.TrimSpace(r.Query)

	return filter, nil
}

// FieldResponse ответ с данными поля
type FieldResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	SportType    string    `json:"sport_type"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	PricePerHour float64   `json:"price_per_hour"`
	ImageURL     string    `json:"image_url,omitempty"`
	Amenities    []string  `json:"amenities"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FieldListResponse ответ со списком полей
type FieldListResponse struct {
	Fields []FieldResponse `json:"fields"`
}

// FromDomainField конвертирует domain модель в DTO
func FromDomainField(f *domain.Field) *FieldResponse {
	if f == nil {
		return nil
	}

	amenities := f.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return &FieldResponse{
		ID:           f.ID,
		Name:         f.Name,
		SportType:    string(f.SportType),
		Location:     f.Location,
		Description:  f.Description,
		PricePerHour: f.PricePerHour,
		ImageURL:     f.ImageURL,
		Amenities:    amenities,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// FromDomainFieldList конвертирует список domain моделей в DTO
func FromDomainFieldList(fields []*domain.Field) *FieldListResponse {
	resp := &FieldListResponse{
		Fields: make([]FieldResponse, 0, len(fields)),
	}

	for _, f := range fields {
		resp.Fields = append(resp.Fields, *FromDomainField(f))
	}

	return resp
}
