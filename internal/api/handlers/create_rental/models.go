package create_rental

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	createBooking "github.com/m04kA/SMC-ArenaService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

// CreateRentalRequest HTTP request model
type CreateRentalRequest struct {
	FacilityID    int64    `json:"facilityId"`
	SportID       int64    `json:"sportId"`
	RentalDate    string   `json:"rentalDate"` // "2026-09-15"
	StartTimes    []string `json:"startTimes"` // ["07:00", "08:00"]
	DiscountCodes []string `json:"discountCodes,omitempty"`
	PaymentMode   string   `json:"paymentMode"` // cash | upi | gateway
	Notes         *string  `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRentalRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	rentalDate, err := time.Parse(domain.DateFormat, r.RentalDate)
	if err != nil {
		return nil, err
	}

	startTimes := make([]types.TimeString, 0, len(r.StartTimes))
	for _, s := range r.StartTimes {
		t, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, err
		}
		startTimes = append(startTimes, t)
	}

	return &createBooking.Request{
		UserID:        userID,
		FacilityID:    r.FacilityID,
		SportID:       r.SportID,
		Date:          rentalDate,
		StartTimes:    startTimes,
		DiscountCodes: r.DiscountCodes,
		PaymentMode:   domain.PaymentMode(r.PaymentMode),
		Notes:         r.Notes,
	}, nil
}
