package create_facility

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/service/facilities"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service FacilityService
	logger  Logger
}

func NewHandler(service FacilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/facilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateFacilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("POST /facilities - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /facilities - Failed to create facility: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities - Facility created: facility_id=%d, name=%s", created.ID, created.Name)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(created))
}
