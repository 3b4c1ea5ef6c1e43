package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fit-nest-dev/fit-nest-api/models"
	"github.com/fit-nest-dev/fit-nest-api/realtime"
)

type StockCountRequest struct {
	Count int `json:"count" binding:"required,min=1"`
}

// LockStock reserves units for an in-flight payment. The read-modify-write
// runs under a row lock so concurrent checkouts cannot oversell.
func LockStock(db *gorm.DB, productID uint, count int) (*models.Product, error) {
	var product models.Product
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", productID).Error; err != nil {
			return err
		}
		if err := product.Lock(count); err != nil {
			return err
		}
		return tx.Model(&product).Updates(map[string]interface{}{
			"stock_quantity": product.StockQuantity,
			"locked_count":   product.LockedCount,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ReleaseStock is the inverse of LockStock, called on payment failure or
// abandonment. There is no automatic expiry: a lock lives until this is
// called, so the admin surface also exposes it for manual cleanup.
func ReleaseStock(db *gorm.DB, productID uint, count int) (*models.Product, error) {
	var product models.Product
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", productID).Error; err != nil {
			return err
		}
		if err := product.Release(count); err != nil {
			return err
		}
		return tx.Model(&product).Updates(map[string]interface{}{
			"stock_quantity": product.StockQuantity,
			"locked_count":   product.LockedCount,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ConfirmConsumed finalizes a lock after the order row exists. Stock stays
// where the lock left it; only the locked counter drops.
func ConfirmConsumed(db *gorm.DB, productID uint, count int) (*models.Product, error) {
	var product models.Product
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", productID).Error; err != nil {
			return err
		}
		if err := product.ConfirmConsumed(count); err != nil {
			return err
		}
		return tx.Model(&product).Update("locked_count", product.LockedCount).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func stockHandler(db *gorm.DB, hub *realtime.Hub,
	op func(*gorm.DB, uint, int) (*models.Product, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var req StockCountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product, err := op(db, uint(id), req.Count)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			case errors.Is(err, models.ErrInsufficientStock):
				c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock"})
			case errors.Is(err, models.ErrLockUnderflow):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Count exceeds locked units"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			}
			return
		}

		hub.Publish(realtime.TopicProducts, product)
		c.JSON(http.StatusOK, product)
	}
}

// POST /api/products/:id/lock
func LockStockHandler(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return stockHandler(db, hub, LockStock)
}

// POST /api/products/:id/release
func ReleaseStockHandler(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return stockHandler(db, hub, ReleaseStock)
}

// POST /api/products/:id/confirm
func ConfirmConsumedHandler(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return stockHandler(db, hub, ConfirmConsumed)
}
