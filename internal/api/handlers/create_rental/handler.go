package create_rental

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/api/middleware"
	"github.com/m04kA/SMC-ArenaService/internal/service/pricing"
	createBooking "github.com/m04kA/SMC-ArenaService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgFacilityNotFound     = "площадка не найдена"
	msgFacilityUnavailable  = "площадка недоступна для бронирования"
	msgSportNotSupported    = "площадка не поддерживает этот вид спорта"
	msgInvalidSlots         = "запрошенные слоты отсутствуют в расписании площадки"
	msgSlotConflict         = "запрошенные слоты заняты или заблокированы"
	msgInvalidRentalDate    = "некорректная дата аренды"
	msgDiscountCodeRejected = "код скидки отклонен"
	msgPaymentGateway       = "платежный шлюз недоступен"
)

// slotsErrorResponse тело ошибки со списком проблемных слотов
type slotsErrorResponse struct {
	Error string   `json:"error"`
	Slots []string `json:"slots"`
}

// codeErrorResponse тело ошибки с отклоненным кодом скидки
type codeErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/turf-rentals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /turf-rentals - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRentalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /turf-rentals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /turf-rentals - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, req, userID, err)
		return
	}

	h.logger.Info("POST /turf-rentals - Booking created: booking_id=%d, user_id=%d, facility_id=%d",
		result.Booking.ID, userID, req.FacilityID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainBooking(result.Booking))
}

func (h *Handler) respondError(w http.ResponseWriter, req CreateRentalRequest, userID int64, err error) {
	var invalidSlots *createBooking.InvalidSlotsError
	var slotConflict *createBooking.SlotConflictError
	var codeErr *pricing.CodeError

	switch {
	case errors.As(err, &invalidSlots):
		h.logger.Warn("POST /turf-rentals - Invalid slots: user_id=%d, facility_id=%d", userID, req.FacilityID)
		handlers.RespondJSON(w, http.StatusBadRequest, slotsErrorResponse{
			Error: msgInvalidSlots,
			Slots: timesToStrings(invalidSlots.StartTimes),
		})

	case errors.As(err, &slotConflict):
		h.logger.Warn("POST /turf-rentals - Slot conflict: user_id=%d, facility_id=%d", userID, req.FacilityID)
		handlers.RespondJSON(w, http.StatusConflict, slotsErrorResponse{
			Error: msgSlotConflict,
			Slots: timesToStrings(slotConflict.StartTimes),
		})

	case errors.As(err, &codeErr):
		h.logger.Warn("POST /turf-rentals - Discount code rejected: user_id=%d, code=%s", userID, codeErr.Code)
		handlers.RespondJSON(w, http.StatusBadRequest, codeErrorResponse{
			Error: msgDiscountCodeRejected,
			Code:  codeErr.Code,
		})

	case errors.Is(err, createBooking.ErrFacilityNotFound):
		h.logger.Warn("POST /turf-rentals - Facility not found: facility_id=%d", req.FacilityID)
		handlers.RespondNotFound(w, msgFacilityNotFound)

	case errors.Is(err, createBooking.ErrFacilityUnavailable):
		h.logger.Warn("POST /turf-rentals - Facility unavailable: facility_id=%d", req.FacilityID)
		handlers.RespondConflict(w, msgFacilityUnavailable)

	case errors.Is(err, createBooking.ErrSportNotSupported):
		h.logger.Warn("POST /turf-rentals - Sport not supported: facility_id=%d, sport_id=%d", req.FacilityID, req.SportID)
		handlers.RespondBadRequest(w, msgSportNotSupported)

	case errors.Is(err, createBooking.ErrInvalidDate):
		h.logger.Warn("POST /turf-rentals - Invalid rental date: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgInvalidRentalDate)

	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /turf-rentals - Invalid input: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, createBooking.ErrPaymentGateway):
		h.logger.Error("POST /turf-rentals - Payment gateway error: user_id=%d, error=%v", userID, err)
		handlers.RespondError(w, http.StatusBadGateway, msgPaymentGateway)

	default:
		h.logger.Error("POST /turf-rentals - Failed to create booking: user_id=%d, facility_id=%d, error=%v",
			userID, req.FacilityID, err)
		handlers.RespondInternalError(w)
	}
}

func timesToStrings(times []types.TimeString) []string {
	result := make([]string, 0, len(times))
	for _, t := range times {
		result = append(result, t.String())
	}
	return result
}
