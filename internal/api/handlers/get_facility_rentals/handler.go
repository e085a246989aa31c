package get_facility_rentals

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/internal/service/bookings"
)

const (
	msgInvalidFacilityID = "некорректный ID площадки"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus     = "некорректный статус бронирования"
)

// RentalListResponse HTTP response model
type RentalListResponse struct {
	FacilityID int64                       `json:"facilityId"`
	Bookings   []*handlers.BookingResponse `json:"bookings"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/rentals
// Query params: startDate, endDate (YYYY-MM-DD), status, includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/rentals - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	filter := domain.FacilityBookingsFilter{FacilityID: facilityID}
	query := r.URL.Query()

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /facilities/{id}/rentals - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.StartDate = &startDate
	}
	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /facilities/{id}/rentals - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.EndDate = &endDate
	}
	if raw := query.Get("status"); raw != "" {
		status := domain.BookingStatus(raw)
		filter.Status = &status
	}
	filter.IncludeCancelled = query.Get("includeCancelled") == "true"

	result, err := h.service.GetFacilityBookings(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/rentals - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /facilities/{id}/rentals - Failed to list bookings: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/rentals - Listed %d bookings: facility_id=%d", len(result), facilityID)
	handlers.RespondJSON(w, http.StatusOK, RentalListResponse{
		FacilityID: facilityID,
		Bookings:   handlers.FromDomainBookingList(result),
	})
}
