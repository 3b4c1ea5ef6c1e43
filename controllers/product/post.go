package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-nest-dev/fit-nest-api/models"
	"github.com/fit-nest-dev/fit-nest-api/realtime"
)

type CreateProductInput struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	MRP           float64 `json:"mrp"`
	StockQuantity int     `json:"stock_quantity" binding:"min=0"`
	Image         string  `json:"image"`
}

// CreateProduct adds a catalog item (admin).
func CreateProduct(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.MRP == 0 {
			input.MRP = input.Price
		}

		product := models.Product{
			Name:          input.Name,
			Description:   input.Description,
			Price:         input.Price,
			MRP:           input.MRP,
			StockQuantity: input.StockQuantity,
			Image:         input.Image,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		hub.Publish(realtime.TopicProducts, product)
		c.JSON(http.StatusCreated, product)
	}
}
