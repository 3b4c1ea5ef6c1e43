package cartControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-nest-dev/fit-nest-api/middleware"
	"github.com/fit-nest-dev/fit-nest-api/models"
	"github.com/fit-nest-dev/fit-nest-api/realtime"
)

type CartDeltaInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Delta     int  `json:"delta" binding:"required"`
}

// POST /api/cart
// Applies a quantity delta to the caller's (user, product) cart row. A row
// that would drop to zero or below is deleted.
func UpdateCartItem(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartDeltaInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if err == gorm.ErrRecordNotFound {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		var item models.CartItem
		err := db.Where("user_id = ? AND product_id = ?", userID, input.ProductID).First(&item).Error
		exists := err == nil
		if err != nil && err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		}

		next, action := models.ApplyCartDelta(exists, item.Count, input.Delta)
		switch action {
		case models.CartCreate:
			item = models.CartItem{
				UserID:      userID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Price:       product.Price,
				Count:       next,
				AddedAt:     time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
			hub.Publish(realtime.TopicCart, item)
			c.JSON(http.StatusCreated, item)

		case models.CartUpdate:
			item.Count = next
			item.AddedAt = time.Now()
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
				return
			}
			hub.Publish(realtime.TopicCart, item)
			c.JSON(http.StatusOK, item)

		case models.CartDelete:
			if exists {
				if err := db.Delete(&item).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
					return
				}
			}
			hub.Publish(realtime.TopicCart, gin.H{"user_id": userID, "product_id": input.ProductID, "deleted": true})
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
		}
	}
}

// GET /api/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var items []models.CartItem
		if err := db.Where("user_id = ?", userID).Order("added_at DESC").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// DELETE /api/cart/:product_id
func DeleteCartItem(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		result := db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		hub.Publish(realtime.TopicCart, gin.H{"user_id": userID, "product_id": productID, "deleted": true})
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /api/cart
func ClearUserCart(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		hub.Publish(realtime.TopicCart, gin.H{"user_id": userID, "cleared": true})
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

type ValidateCartInput struct {
	Items []struct {
		ProductID uint `json:"product_id" binding:"required"`
		Count     int  `json:"count" binding:"required,min=1"`
	} `json:"items" binding:"required,dive"`
}

type ValidationResult struct {
	ProductID uint   `json:"product_id"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
	OK        bool   `json:"ok"`
	Reason    string `json:"reason,omitempty"`
}

// POST /api/cart/validate
// Per-item stock sufficiency check run before checkout. This check and the
// later lock are separate round trips; the lock re-validates under a row lock.
func ValidateCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ValidateCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		results := make([]ValidationResult, 0, len(input.Items))
		allOK := true
		for _, item := range input.Items {
			res := ValidationResult{ProductID: item.ProductID, Requested: item.Count}

			var product models.Product
			if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
				res.Reason = "Product not found"
				allOK = false
				results = append(results, res)
				continue
			}

			res.Available = product.StockQuantity
			if product.StockQuantity >= item.Count {
				res.OK = true
			} else {
				res.Reason = "Insufficient stock"
				allOK = false
			}
			results = append(results, res)
		}

		c.JSON(http.StatusOK, gin.H{"ok": allOK, "items": results})
	}
}

// GET /api/admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var items []models.CartItem
		if err := db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
