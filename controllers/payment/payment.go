package paymentControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	membershipControllers "github.com/fit-nest-dev/fit-nest-api/controllers/membership"
	orderControllers "github.com/fit-nest-dev/fit-nest-api/controllers/order"
	trainerControllers "github.com/fit-nest-dev/fit-nest-api/controllers/trainer"
	"github.com/fit-nest-dev/fit-nest-api/mailer"
	"github.com/fit-nest-dev/fit-nest-api/middleware"
	"github.com/fit-nest-dev/fit-nest-api/models"
	"github.com/fit-nest-dev/fit-nest-api/payment"
	"github.com/fit-nest-dev/fit-nest-api/realtime"
)

type CreatePaymentOrderInput struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency"`
}

// POST /api/payment/order
// Registers a gateway order the client pays against on the hosted page.
func CreatePaymentOrderHandler(gw payment.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreatePaymentOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Currency == "" {
			input.Currency = "INR"
		}

		receipt := "rcpt_" + uuid.NewString()
		order, err := gw.CreateOrder(input.Amount, input.Currency, receipt)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order_id": order.ID,
			"amount":   order.Amount,
			"currency": order.Currency,
			"receipt":  order.Receipt,
		})
	}
}

type VerifyPaymentInput struct {
	OrderID      string  `json:"order_id" binding:"required"`
	PaymentID    string  `json:"payment_id" binding:"required"`
	Signature    string  `json:"signature" binding:"required"`
	BuyerName    string  `json:"buyer_name"`
	BuyerEmail   string  `json:"buyer_email"`
	BuyerContact string  `json:"buyer_contact"`
	Address      string  `json:"address"`
	TotalAmount  float64 `json:"total_amount" binding:"required,gt=0"`
	Products     []struct {
		ProductID   uint    `json:"product_id" binding:"required"`
		ProductName string  `json:"product_name"`
		Quantity    int     `json:"quantity" binding:"required,min=1"`
		Price       float64 `json:"price"`
	} `json:"products" binding:"required,min=1,dive"`
}

// POST /api/payment/verify
// Verifies the callback signature; on success the order snapshot is created,
// purchased cart rows are deleted and the stock locks consumed. A signature
// mismatch creates nothing.
func VerifyPaymentHandler(db *gorm.DB, gw payment.Gateway, hub *realtime.Hub, mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input VerifyPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !gw.VerifySignature(input.OrderID, input.PaymentID, input.Signature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
			return
		}

		items := make([]models.OrderItem, 0, len(input.Products))
		for _, p := range input.Products {
			items = append(items, models.OrderItem{
				ProductID:   p.ProductID,
				ProductName: p.ProductName,
				Quantity:    p.Quantity,
				Price:       p.Price,
			})
		}

		order, err := orderControllers.CreateFromVerifiedPayment(db, orderControllers.VerifiedOrder{
			OrderID:      input.OrderID,
			PaymentID:    input.PaymentID,
			UserID:       userID,
			BuyerName:    input.BuyerName,
			BuyerEmail:   input.BuyerEmail,
			BuyerContact: input.BuyerContact,
			Address:      input.Address,
			TotalAmount:  input.TotalAmount,
			Items:        items,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		mail.SendOrderConfirmation(order.BuyerEmail, order)
		hub.Publish(realtime.TopicOrders, order)
		c.JSON(http.StatusOK, order)
	}
}

type VerifyTrainerPaymentInput struct {
	OrderID      string `json:"order_id" binding:"required"`
	PaymentID    string `json:"payment_id" binding:"required"`
	Signature    string `json:"signature" binding:"required"`
	AssignmentID uint   `json:"assignment_id" binding:"required"`
}

// POST /api/payment/verify-trainer
// Marks the assignment paid and stores the payment id. The status itself does
// not move here; assignment follows on admin approval.
func VerifyTrainerPaymentHandler(db *gorm.DB, gw payment.Gateway, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyTrainerPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !gw.VerifySignature(input.OrderID, input.PaymentID, input.Signature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
			return
		}

		assignment, err := trainerControllers.MarkAssignmentPaid(db, input.AssignmentID, input.PaymentID)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			case errors.Is(err, models.ErrInvalidTransition):
				c.JSON(http.StatusConflict, gin.H{"error": "Assignment is not awaiting payment"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
			}
			return
		}

		hub.Publish(realtime.TopicTrainers, assignment)
		c.JSON(http.StatusOK, assignment)
	}
}

type VerifyMembershipPaymentInput struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	PlanType  string `json:"plan_type" binding:"required"`
}

// POST /api/payment/verify-membership
// Activates the caller's membership: start now, end = start + plan offset.
func VerifyMembershipPaymentHandler(db *gorm.DB, gw payment.Gateway, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input VerifyMembershipPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !gw.VerifySignature(input.OrderID, input.PaymentID, input.Signature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
			return
		}

		user, err := membershipControllers.ActivateMembership(db, userID, input.PlanType, input.PaymentID, time.Now())
		if err != nil {
			if errors.Is(err, models.ErrUnknownPlanType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown membership plan"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate membership"})
			return
		}

		hub.Publish(realtime.TopicUsers, user)
		c.JSON(http.StatusOK, user)
	}
}

// GET /api/payment/invoice/:invoiceID
func FetchInvoiceHandler(gw payment.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		invoiceID := c.Param("invoiceID")
		if invoiceID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invoiceID is required"})
			return
		}

		invoice, err := gw.FetchInvoice(invoiceID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, invoice)
	}
}
