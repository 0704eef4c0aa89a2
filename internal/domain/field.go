package domain

import (
	"time"

	"github.com/google/uuid"
)

// SportType вид спорта поля
type SportType string

const (
	SportFootball   SportType = "football"
	SportBasketball SportType = "basketball"
	SportTennis     SportType = "tennis"
	SportBaseball   SportType = "baseball"
	SportVolleyball SportType = "volleyball"
	SportBadminton  SportType = "badminton"
)

// SportTypes все поддерживаемые виды спорта
var SportTypes = []SportType{
	SportFootball,
	SportBasketball,
	SportTennis,
	SportBaseball,
	SportVolleyball,
	SportBadminton,
}

// IsValid returns true for a known sport type
func (s SportType) IsValid() bool {
	for _, known := range SportTypes {
		if s == known {
			return true
		}
	}
	return false
}

// Field спортивная площадка, которую можно бронировать почасово
type Field struct {
	ID           uuid.UUID
	Name         string
	SportType    SportType
	Location     string
	Description  string
	PricePerHour float64
	ImageURL     string
	Amenities    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FieldsFilter фильтр каталога полей
type FieldsFilter struct {
	SportType *SportType
	MinPrice  *float64
	MaxPrice  *float64
	Query     string // поиск по названию и адресу, без учета регистра
}
