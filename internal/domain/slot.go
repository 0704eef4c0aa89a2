package domain

import "github.com/m04kA/SMC-FieldBookingService/pkg/types"

// AvailableSlot слот сетки и признак доступности
type AvailableSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}
