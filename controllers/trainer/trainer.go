package trainerControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-nest-dev/fit-nest-api/models"
	"github.com/fit-nest-dev/fit-nest-api/realtime"
)

type TrainerInput struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Contact     string  `json:"contact"`
	Speciality  string  `json:"speciality"`
	MonthlyFee  float64 `json:"monthly_fee"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// GET /api/trainers
func GetTrainers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var trainers []models.Trainer
		if err := db.Order("name ASC").Find(&trainers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trainers"})
			return
		}
		c.JSON(http.StatusOK, trainers)
	}
}

// GET /api/trainers/:id
func GetTrainerByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
			return
		}

		var trainer models.Trainer
		if err := db.First(&trainer, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trainer"})
			}
			return
		}
		c.JSON(http.StatusOK, trainer)
	}
}

// POST /api/admin/trainers
func CreateTrainer(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TrainerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		trainer := models.Trainer{
			Name:        input.Name,
			Email:       input.Email,
			Contact:     input.Contact,
			Speciality:  input.Speciality,
			MonthlyFee:  input.MonthlyFee,
			Image:       input.Image,
			Description: input.Description,
		}
		if err := db.Create(&trainer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trainer"})
			return
		}

		hub.Publish(realtime.TopicTrainers, trainer)
		c.JSON(http.StatusCreated, trainer)
	}
}

// PUT /api/admin/trainers/:id
func UpdateTrainer(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
			return
		}

		var trainer models.Trainer
		if err := db.First(&trainer, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
			return
		}

		var input TrainerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{
			"name":        input.Name,
			"email":       input.Email,
			"contact":     input.Contact,
			"speciality":  input.Speciality,
			"monthly_fee": input.MonthlyFee,
			"image":       input.Image,
			"description": input.Description,
		}
		if err := db.Model(&trainer).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trainer"})
			return
		}

		hub.Publish(realtime.TopicTrainers, trainer)
		c.JSON(http.StatusOK, trainer)
	}
}

// DELETE /api/admin/trainers/:id
func DeleteTrainer(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
			return
		}

		result := db.Delete(&models.Trainer{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trainer"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
			return
		}

		hub.Publish(realtime.TopicTrainers, gin.H{"deleted": id})
		c.JSON(http.StatusOK, gin.H{"message": "Trainer deleted"})
	}
}
