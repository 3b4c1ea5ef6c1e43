package userControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-nest-dev/fit-nest-api/middleware"
	"github.com/fit-nest-dev/fit-nest-api/models"
	"github.com/fit-nest-dev/fit-nest-api/realtime"
)

type ChangeRequestInput struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
	Address *string `json:"address"`
}

// POST /api/users/change-request
// A member proposes profile edits; an admin applies or rejects them. Only one
// pending request per user: the pre-check gives a friendly error, the unique
// index on user_id makes the rule hold under races.
func CreateChangeRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input ChangeRequestInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Name == nil && input.Contact == nil && input.Address == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No changes proposed"})
			return
		}

		var existing models.ChangeRequest
		if err := db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A pending request already exists"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		request := models.ChangeRequest{
			UserID:  userID,
			Name:    input.Name,
			Contact: input.Contact,
			Address: input.Address,
		}
		if err := db.Create(&request).Error; err != nil {
			// Unique index on user_id: a concurrent create loses here.
			c.JSON(http.StatusConflict, gin.H{"error": "A pending request already exists"})
			return
		}

		c.JSON(http.StatusCreated, request)
	}
}

// GET /api/admin/change-requests
func ListChangeRequests(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var requests []models.ChangeRequest
		if err := db.Order("created_at ASC").Find(&requests).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch change requests"})
			return
		}
		c.JSON(http.StatusOK, requests)
	}
}

// POST /api/admin/change-requests/:id/approve
// Applies the proposed edits to the user record and removes the request.
func ApproveChangeRequest(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
			return
		}

		var request models.ChangeRequest
		if err := db.First(&request, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Change request not found"})
			return
		}

		var user models.User
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&user, "id = ?", request.UserID).Error; err != nil {
				return err
			}

			updates := make(map[string]interface{})
			if request.Name != nil {
				updates["name"] = *request.Name
			}
			if request.Contact != nil {
				updates["contact"] = *request.Contact
			}
			if request.Address != nil {
				updates["address"] = *request.Address
			}
			if len(updates) > 0 {
				if err := tx.Model(&user).Updates(updates).Error; err != nil {
					return err
				}
			}

			return tx.Delete(&request).Error
		})
		if txErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply change request"})
			return
		}

		hub.Publish(realtime.TopicUsers, user)
		c.JSON(http.StatusOK, gin.H{"message": "Change request applied"})
	}
}

// POST /api/admin/change-requests/:id/reject
func RejectChangeRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
			return
		}

		result := db.Delete(&models.ChangeRequest{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject change request"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Change request not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Change request rejected"})
	}
}
