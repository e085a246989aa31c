package paymentgateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	client := NewClient("http://gateway", "key", "secret", time.Second, nopLogger{})

	valid := sign("secret", "order_123", "pay_456")
	assert.True(t, client.VerifySignature("order_123", "pay_456", valid))

	assert.False(t, client.VerifySignature("order_123", "pay_456", "forged"))
	assert.False(t, client.VerifySignature("order_other", "pay_456", valid), "signature bound to order id")
	assert.False(t, client.VerifySignature("order_123", "pay_other", valid), "signature bound to payment id")

	otherKey := NewClient("http://gateway", "key", "other-secret", time.Second, nopLogger{})
	assert.False(t, otherKey.VerifySignature("order_123", "pay_456", valid))
}

func TestCreateOrder(t *testing.T) {
	var gotReq createOrderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Order{ID: "order_123", Amount: float64(gotReq.Amount), Currency: "INR", Status: "created"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "secret", time.Second, nopLogger{})

	order, err := client.CreateOrder(context.Background(), 1999.50, "TRF-1001")
	require.NoError(t, err)
	assert.Equal(t, "order_123", order.ID)

	// Сумма уходит шлюзу в пайсах
	assert.Equal(t, int64(199950), gotReq.Amount)
	assert.Equal(t, "INR", gotReq.Currency)
	assert.Equal(t, "TRF-1001", gotReq.Receipt)
}

func TestCreateOrder_GatewayDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "secret", time.Second, nopLogger{})

	_, err := client.CreateOrder(context.Background(), 1000, "TRF-1001")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	// Недоступный адрес: транспортная ошибка
	unreachable := NewClient("http://127.0.0.1:1", "key", "secret", 100*time.Millisecond, nopLogger{})
	_, err = unreachable.CreateOrder(context.Background(), 1000, "TRF-1001")
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestCreateOrder_BadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":""}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "secret", time.Second, nopLogger{})

	_, err := client.CreateOrder(context.Background(), 1000, "TRF-1001")
	assert.ErrorIs(t, err, ErrInvalidResponse, "empty order id rejected")
}
