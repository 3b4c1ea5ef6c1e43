package membershipControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-nest-dev/fit-nest-api/models"
	"github.com/fit-nest-dev/fit-nest-api/realtime"
)

type PlanInput struct {
	Type        string  `json:"type" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
}

// GET /api/memberships/plans
func GetPlans(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var plans []models.MembershipPlan
		if err := db.Order("duration_days ASC").Find(&plans).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plans"})
			return
		}
		c.JSON(http.StatusOK, plans)
	}
}

// POST /api/admin/plans
// The duration comes from the fixed offset table, never from the request.
func CreatePlan(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PlanInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		days, err := models.PlanOffsetDays(input.Type)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown membership plan type"})
			return
		}

		plan := models.MembershipPlan{
			Type:         input.Type,
			DurationDays: days,
			Price:        input.Price,
			Description:  input.Description,
		}
		if err := db.Create(&plan).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan"})
			return
		}

		hub.Publish(realtime.TopicPlans, plan)
		c.JSON(http.StatusCreated, plan)
	}
}

// PUT /api/admin/plans/:id
func UpdatePlan(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
			return
		}

		var plan models.MembershipPlan
		if err := db.First(&plan, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}

		var input struct {
			Price       *float64 `json:"price"`
			Description *string  `json:"description"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Price != nil {
			if *input.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
				return
			}
			updates["price"] = *input.Price
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}

		if len(updates) > 0 {
			if err := db.Model(&plan).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
				return
			}
		}

		hub.Publish(realtime.TopicPlans, plan)
		c.JSON(http.StatusOK, plan)
	}
}

// DELETE /api/admin/plans/:id
func DeletePlan(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
			return
		}

		result := db.Delete(&models.MembershipPlan{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plan"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}

		hub.Publish(realtime.TopicPlans, gin.H{"deleted": id})
		c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
	}
}

// ActivateMembership sets the user's embedded membership: start now, end at
// start + the plan's fixed offset.
func ActivateMembership(db *gorm.DB, userID uint, planType, paymentID string, start time.Time) (*models.User, error) {
	end, err := models.MembershipEndDate(planType, start)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"membership_type":         planType,
		"membership_start_date":   start,
		"membership_end_date":     end,
		"membership_status":       models.MembershipActive,
		"membership_paid_by_user": true,
		"membership_payment_id":   paymentID,
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}

	user.Membership = models.MembershipDetails{
		Type:       planType,
		StartDate:  &start,
		EndDate:    &end,
		Status:     models.MembershipActive,
		PaidByUser: true,
		PaymentID:  paymentID,
	}
	return &user, nil
}

// ExpireStale flips Active memberships whose end date has passed to Expired.
// One conditional batch UPDATE: running it again immediately matches nothing,
// so the daily sweep is idempotent. Admin accounts are skipped.
func ExpireStale(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.User{}).
		Where("is_admin = ? AND membership_status = ? AND membership_end_date < ?",
			false, models.MembershipActive, now).
		Update("membership_status", models.MembershipExpired)
	return result.RowsAffected, result.Error
}

// POST /api/admin/membership/expire-sweep
// Manual trigger for the same sweep the daily cron runs.
func ExpireSweepHandler(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := ExpireStale(db, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Sweep failed"})
			return
		}
		if count > 0 {
			hub.Publish(realtime.TopicUsers, gin.H{"expired": count})
		}
		c.JSON(http.StatusOK, gin.H{"expired": count})
	}
}
