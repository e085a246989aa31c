package list_discounts

import (
	"net/http"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

const msgInvalidTarget = "некорректный тип транзакции, ожидается enrollment или turf"

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

// Handle GET /api/v1/discounts?applicableFor=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var target *domain.DiscountTarget
	if raw := r.URL.Query().Get("applicableFor"); raw != "" {
		t := domain.DiscountTarget(raw)
		if t != domain.TargetEnrollment && t != domain.TargetTurf {
			h.logger.Warn("GET /discounts - Invalid target filter: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidTarget)
			return
		}
		target = &t
	}

	rules, err := h.service.ListRules(r.Context(), target)
	if err != nil {
		h.logger.Error("GET /discounts - Failed to list rules: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /discounts - Listed %d rules", len(rules))
	handlers.RespondJSON(w, http.StatusOK, FromDomainList(rules))
}
