package preview_discount

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/internal/service/pricing"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTarget      = "некорректный тип транзакции, ожидается enrollment или turf"
	msgCodeNotFound       = "код скидки не найден"
	msgCodeNotApplicable  = "код скидки неприменим к этой транзакции"
	msgDuplicateCode      = "код скидки указан дважды"
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

// codeErrorResponse тело ошибки с отвергнутым кодом скидки
type codeErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Handle POST /api/v1/discounts/preview
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /discounts/preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	target := domain.DiscountTarget(req.ApplicableFor)
	if target != domain.TargetEnrollment && target != domain.TargetTurf {
		h.logger.Warn("POST /discounts/preview - Invalid target: %q", req.ApplicableFor)
		handlers.RespondBadRequest(w, msgInvalidTarget)
		return
	}

	breakdown, err := h.service.Preview(r.Context(), req.BaseAmount, target, req.ToPricingContext(), req.Codes)
	if err != nil {
		var codeErr *pricing.CodeError
		switch {
		case errors.As(err, &codeErr):
			msg := msgCodeNotFound
			status := http.StatusNotFound
			switch {
			case errors.Is(err, pricing.ErrCodeNotApplicable):
				msg = msgCodeNotApplicable
				status = http.StatusConflict
			case errors.Is(err, pricing.ErrDuplicateCode):
				msg = msgDuplicateCode
				status = http.StatusBadRequest
			}
			h.logger.Warn("POST /discounts/preview - Code rejected: code=%s, error=%v", codeErr.Code, err)
			handlers.RespondJSON(w, status, codeErrorResponse{Error: msg, Code: codeErr.Code})

		case errors.Is(err, pricing.ErrInvalidInput):
			h.logger.Warn("POST /discounts/preview - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /discounts/preview - Failed to preview: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /discounts/preview - Previewed: base=%.2f, final=%.2f, applied=%d",
		breakdown.BaseAmount, breakdown.FinalAmount, len(breakdown.Applied))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(breakdown))
}
