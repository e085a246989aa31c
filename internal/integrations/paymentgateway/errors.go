package paymentgateway

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")

	// ErrGatewayUnavailable возвращается, когда платежный шлюз недоступен.
	// Создание gateway-бронирования при этом невозможно: без order id
	// нечего подтверждать callback-ом
	ErrGatewayUnavailable = errors.New("paymentgateway client: gateway unavailable")
)
