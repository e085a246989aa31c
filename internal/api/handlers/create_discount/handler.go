package create_discount

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/service/pricing"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCodeExists         = "правило с таким кодом уже существует"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/discounts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /discounts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	rule, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /discounts - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	created, err := h.service.CreateRule(r.Context(), rule)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrCodeExists):
			h.logger.Warn("POST /discounts - Code already exists: code=%v", req.Code)
			handlers.RespondConflict(w, msgCodeExists)

		case errors.Is(err, pricing.ErrInvalidInput):
			h.logger.Warn("POST /discounts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /discounts - Failed to create rule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /discounts - Created rule: id=%d, title=%q", created.ID, created.Title)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(created))
}
