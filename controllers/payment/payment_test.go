package paymentControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fit-nest-dev/fit-nest-api/mailer"
	"github.com/fit-nest-dev/fit-nest-api/models"
	"github.com/fit-nest-dev/fit-nest-api/payment"
	"github.com/fit-nest-dev/fit-nest-api/realtime"
)

type fakeGateway struct {
	validSig     string
	refunds      []float64
	createErr    error
	createdOrder *payment.GatewayOrder
}

func (f *fakeGateway) CreateOrder(amount float64, currency, receipt string) (*payment.GatewayOrder, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createdOrder != nil {
		return f.createdOrder, nil
	}
	return &payment.GatewayOrder{ID: "order_test", Amount: int64(amount * 100), Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func (f *fakeGateway) Refund(paymentID string, amount float64) (*payment.Refund, error) {
	f.refunds = append(f.refunds, amount)
	return &payment.Refund{ID: "rfnd_test", PaymentID: paymentID, Amount: int64(amount * 100), Status: "processed"}, nil
}

func (f *fakeGateway) FetchInvoice(invoiceID string) (*payment.Invoice, error) {
	return &payment.Invoice{ID: invoiceID}, nil
}

func (f *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == f.validSig
}

type noopMailer struct{}

func (noopMailer) SendOTP(string, string)                                        {}
func (noopMailer) SendOrderConfirmation(string, *models.Order)                   {}
func (noopMailer) SendOrderStatusUpdate(string, *models.Order)                   {}
func (noopMailer) SendTrainerAssigned(string, string, *models.TrainerAssignment) {}
func (noopMailer) SendTrainerRemoved(string, string, *models.TrainerAssignment)  {}

var _ mailer.Sender = noopMailer{}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

func TestVerifyPayment_TamperedSignatureCreatesNothing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, mock := newMockDB(t)
	gw := &fakeGateway{validSig: "good-signature"}
	hub := realtime.NewHub()

	r := gin.New()
	r.POST("/api/payment/verify", func(c *gin.Context) {
		c.Set("user_id", uint(7))
		VerifyPaymentHandler(db, gw, hub, noopMailer{})(c)
	})

	body, _ := json.Marshal(gin.H{
		"order_id":     "order_123",
		"payment_id":   "pay_456",
		"signature":    "tampered-signature",
		"total_amount": 500.0,
		"products": []gin.H{
			{"product_id": 1, "product_name": "Whey Protein", "quantity": 1, "price": 500.0},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payment/verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid payment signature")

	// No order insert, no cart delete, no lock confirm: the DB was never touched.
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A verified trainer payment against an assignment that was never quoted must
// come back 409, not a generic 500.
func TestVerifyTrainerPayment_NotAwaitingPaymentIsConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "trainer_assignments" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trainer_id", "user_id", "admin_actions", "paid_by_user"}).
			AddRow(4, 2, 7, "PENDING", false))
	mock.ExpectRollback()

	gw := &fakeGateway{validSig: "good-signature"}
	r := gin.New()
	r.POST("/api/payment/verify-trainer", VerifyTrainerPaymentHandler(db, gw, realtime.NewHub()))

	body, _ := json.Marshal(gin.H{
		"order_id":      "order_123",
		"payment_id":    "pay_456",
		"signature":     "good-signature",
		"assignment_id": 4,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payment/verify-trainer", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "not awaiting payment")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentOrderHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gw := &fakeGateway{}
	r := gin.New()
	r.POST("/api/payment/order", CreatePaymentOrderHandler(gw))

	body, _ := json.Marshal(gin.H{"amount": 1499.50})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payment/order", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "order_test", resp["order_id"])
	assert.Equal(t, "INR", resp["currency"]) // default currency
}

func TestCreatePaymentOrderHandler_RejectsBadAmount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/payment/order", CreatePaymentOrderHandler(&fakeGateway{}))

	body, _ := json.Marshal(gin.H{"amount": 0})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payment/order", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
