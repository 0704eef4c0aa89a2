package list_fields

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields/models"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

const (
	msgInvalidFilter = "некорректные параметры фильтра"
)

type Handler struct {
	service FieldService
	logger  Logger
}

func NewHandler(service FieldService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/fields
// Query params: q, sport, minPrice, maxPrice; все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /fields - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, fields.ErrInvalidInput):
			h.logger.Warn("GET /fields - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /fields - Failed to list fields: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /fields - Fields retrieved successfully: count=%d", len(result.Fields))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(query url.Values) (*models.ListFieldsRequest, error) {
	req := &models.ListFieldsRequest{
		SportType: query.Get("sport"),
		Query:     query.Get("q"),
	}

	var err error
	if req.MinPrice, err = parsePrice(query, "minPrice"); err != nil {
		return nil, err
	}
	if req.MaxPrice, err = parsePrice(query, "maxPrice"); err != nil {
		return nil, err
	}

	return req, nil
}

func parsePrice(query url.Values, key string) (*float64, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return ptr.Ptr(value), nil
}
