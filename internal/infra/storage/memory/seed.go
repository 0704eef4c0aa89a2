package memory

import "github.com/m04kA/SMC-FieldBookingService/internal/domain"

// SeedDemoFields наполняет каталог демонстрационными полями для локального запуска
func SeedDemoFields(s *Store) []*domain.Field {
	demo := []*domain.Field{
		{
			Name:         "Central Park Football Pitch",
			SportType:    domain.SportFootball,
			Location:     "12 Park Avenue",
			Description:  "Full-size artificial turf pitch",
			PricePerHour: 60,
			Amenities:    []string{"Changing Rooms", "Floodlights", "Parking"},
		},
		{
			Name:         "Riverside Tennis Court",
			SportType:    domain.SportTennis,
			Location:     "3 River Road",
			Description:  "Hard court with night lighting",
			PricePerHour: 35,
			Amenities:    []string{"Floodlights", "Showers"},
		},
		{
			Name:         "Downtown Basketball Arena",
			SportType:    domain.SportBasketball,
			Location:     "45 Main Street",
			Description:  "Indoor court with wooden floor",
			PricePerHour: 45,
			Amenities:    []string{"Changing Rooms", "Water Fountain"},
		},
	}

	result := make([]*domain.Field, 0, len(demo))
	for _, f := range demo {
		result = append(result, s.AddField(f))
	}
	return result
}
