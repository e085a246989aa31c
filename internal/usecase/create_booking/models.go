package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID        int64              // ID пользователя
	FacilityID    int64              // ID площадки
	SportID       int64              // ID вида спорта
	Date          time.Time          // Дата аренды (без времени)
	StartTimes    []types.TimeString // Времена начала запрошенных слотов
	DiscountCodes []string           // Явные коды скидок (опционально)
	PaymentMode   domain.PaymentMode // Способ оплаты: cash, upi, gateway
	Notes         *string            // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
