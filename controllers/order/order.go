package orderControllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fit-nest-dev/fit-nest-api/mailer"
	"github.com/fit-nest-dev/fit-nest-api/middleware"
	"github.com/fit-nest-dev/fit-nest-api/models"
	"github.com/fit-nest-dev/fit-nest-api/payment"
	"github.com/fit-nest-dev/fit-nest-api/realtime"
)

// VerifiedOrder is the snapshot material a successful payment verification
// carries: the gateway ids plus the client-submitted line items.
type VerifiedOrder struct {
	OrderID      string
	PaymentID    string
	UserID       uint
	BuyerName    string
	BuyerEmail   string
	BuyerContact string
	Address      string
	TotalAmount  float64
	Items        []models.OrderItem
}

// CreateFromVerifiedPayment persists the order snapshot, consumes the stock
// locks for its items, and clears the purchased cart rows — one transaction.
//
// The total and prices come from the client (the trust boundary the original
// system drew); the catalog total is recomputed only to log discrepancies.
func CreateFromVerifiedPayment(db *gorm.DB, v VerifiedOrder) (*models.Order, error) {
	order := models.Order{
		OrderID:      v.OrderID,
		PaymentID:    v.PaymentID,
		UserID:       v.UserID,
		BuyerName:    v.BuyerName,
		BuyerEmail:   v.BuyerEmail,
		BuyerContact: v.BuyerContact,
		Address:      v.Address,
		Items:        v.Items,
		TotalAmount:  v.TotalAmount,
		Status:       models.OrderStatusPaid,
		CreatedAt:    time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var catalogTotal float64
		for _, item := range v.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}
			catalogTotal += product.Price * float64(item.Quantity)

			if err := product.ConfirmConsumed(item.Quantity); err != nil {
				return err
			}
			if err := tx.Model(&product).Update("locked_count", product.LockedCount).Error; err != nil {
				return err
			}
		}

		if math.Abs(catalogTotal-v.TotalAmount) > 0.01 {
			log.Printf("⚠️ Order %s: client total %.2f differs from catalog total %.2f",
				v.OrderID, v.TotalAmount, catalogTotal)
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Only the purchased rows go; anything else in the cart stays.
		productIDs := make([]uint, 0, len(v.Items))
		for _, item := range v.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		return tx.Where("user_id = ? AND product_id IN ?", v.UserID, productIDs).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// byOrderParam matches the numeric row id or the gateway order id, whichever
// the path param is. Gateway ids are non-numeric strings, so binding them
// against the bigint id column would fail the cast on Postgres.
func byOrderParam(param string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id, err := strconv.ParseUint(param, 10, 64); err == nil {
			return db.Where("id = ?", id)
		}
		return db.Where("order_id = ?", param)
	}
}

// GET /api/orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/user/:userID
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		var orders []models.Order
		if err := db.Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:orderID — numeric row id or gateway order id.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := db.Preload("Items").
			Scopes(byOrderParam(id)).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/orders/:orderID/status (admin)
// Delivery states are free text by design; only CANCELLED is reserved for the
// refund path.
func UpdateOrderStatusHandler(db *gorm.DB, hub *realtime.Hub, mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Status == models.OrderStatusCancelled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Use the cancel endpoint to cancel an order"})
			return
		}

		var order models.Order
		if err := db.Scopes(byOrderParam(orderID)).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		if err := db.Model(&order).Update("status", req.Status).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		order.Status = req.Status

		mail.SendOrderStatusUpdate(order.BuyerEmail, &order)
		hub.Publish(realtime.TopicOrders, order)
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// POST /api/orders/:orderID/cancel
// Refunds 90% of the total through the gateway; the order keeps the remaining
// 10% and flips to CANCELLED. Orders are never physically deleted.
func CancelOrderHandler(db *gorm.DB, gw payment.Gateway, hub *realtime.Hub, mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		orderID := c.Param("orderID")

		var order models.Order
		if err := db.Scopes(byOrderParam(orderID)).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
			return
		}
		if order.Status == models.OrderStatusCancelled {
			c.JSON(http.StatusConflict, gin.H{"error": "Order already cancelled"})
			return
		}

		refundAmount, remainder := models.RefundSplit(order.TotalAmount)
		refund, err := gw.Refund(order.PaymentID, refundAmount)
		if err != nil {
			log.Printf("❌ Refund failed for order %s: %v", order.OrderID, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Refund failed"})
			return
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":        models.OrderStatusCancelled,
			"total_amount":  remainder,
			"refund_id":     refund.ID,
			"refund_amount": refundAmount,
			"refunded_at":   now,
		}
		if err := db.Model(&order).Updates(updates).Error; err != nil {
			// Refund already went through; surface the inconsistency loudly.
			log.Printf("❌ Order %s refunded (%s) but status update failed: %v", order.OrderID, refund.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Refund issued but order update failed"})
			return
		}
		order.Status = models.OrderStatusCancelled
		order.TotalAmount = remainder
		order.RefundID = refund.ID
		order.RefundAmount = refundAmount
		order.RefundedAt = &now

		mail.SendOrderStatusUpdate(order.BuyerEmail, &order)
		hub.Publish(realtime.TopicOrders, order)
		c.JSON(http.StatusOK, order)
	}
}
