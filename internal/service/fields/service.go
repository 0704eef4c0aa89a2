package fields

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields/models"
)

// Service сервис каталога полей
type Service struct {
	fieldRepo FieldRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса полей
func NewService(fieldRepo FieldRepository, logger Logger) *Service {
	return &Service{
		fieldRepo: fieldRepo,
		logger:    logger,
	}
}

// GetByID получает поле вместе с удобствами
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.FieldResponse, error) {
	field, err := s.fieldRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			s.logger.Warn("GetByID: field id=%s not found", id)
			return nil, ErrFieldNotFound
		}
		s.logger.Error("GetByID: repository error for field id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainField(field), nil
}

// List получает поля по фильтру: вид спорта, диапазон цены, поиск по названию и адресу
func (s *Service) List(ctx context.Context, req *models.ListFieldsRequest) (*models.FieldListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fields, err := s.fieldRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d fields", len(fields))
	return models.FromDomainFieldList(fields), nil
}
