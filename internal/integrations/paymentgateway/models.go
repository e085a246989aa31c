package paymentgateway

// Order созданный платежный ордер шлюза
type Order struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
	Status   string  `json:"status"`
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"` // в минимальных единицах валюты
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// ErrorResponse модель ошибки платежного шлюза
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
