package trainerControllers

import (
	"errors"
	"fmt"
	"log"
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

// loadAssignmentForUpdate fetches the assignment row under a row lock so a
// transition cannot interleave with a concurrent admin edit.
func loadAssignmentForUpdate(tx *gorm.DB, id uint) (*models.TrainerAssignment, error) {
	var a models.TrainerAssignment
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

type RequestTrainerInput struct {
	TrainerID uint `json:"trainer_id" binding:"required"`
}

// POST /api/trainers/request
// A member asks for a trainer: PENDING, unpaid, no dates yet.
func RequestTrainer(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input RequestTrainerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var trainer models.Trainer
		if err := db.First(&trainer, "id = ?", input.TrainerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		// One live relationship per (member, trainer).
		var existing models.TrainerAssignment
		err := db.Where("user_id = ? AND trainer_id = ?", userID, input.TrainerID).
			First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Request already exists for this trainer"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		assignment := models.TrainerAssignment{
			TrainerID:     trainer.ID,
			UserID:        userID,
			MemberName:    user.Name,
			MemberEmail:   user.Email,
			MemberContact: user.Contact,
			AdminActions:  models.ActionPending,
		}
		if err := db.Create(&assignment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
			return
		}

		hub.Publish(realtime.TopicTrainers, assignment)
		c.JSON(http.StatusCreated, assignment)
	}
}

type QuoteAssignmentInput struct {
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
	ExtraPayment float64   `json:"extra_payment" binding:"required,gt=0"`
}

// PUT /api/admin/assignments/:id/quote
// Admin prices the request: PENDING -> REQUEST-TO-PAY with a date range.
func QuoteAssignment(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
			return
		}

		var input QuoteAssignmentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !input.EndDate.After(input.StartDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be after start_date"})
			return
		}

		var assignment *models.TrainerAssignment
		txErr := db.Transaction(func(tx *gorm.DB) error {
			a, err := loadAssignmentForUpdate(tx, uint(id))
			if err != nil {
				return err
			}
			if err := a.Transition(models.ActionRequestToPay); err != nil {
				return err
			}
			a.StartDate = &input.StartDate
			a.EndDate = &input.EndDate
			a.ExtraPayment = input.ExtraPayment
			assignment = a
			return tx.Save(a).Error
		})
		if txErr != nil {
			respondTransitionError(c, txErr)
			return
		}

		hub.Publish(realtime.TopicTrainers, assignment)
		c.JSON(http.StatusOK, assignment)
	}
}

// MarkAssignmentPaid records a verified payment on the assignment. It only
// flips the paid flag and stores the payment id; the status moves when the
// admin approves.
func MarkAssignmentPaid(db *gorm.DB, id uint, paymentID string) (*models.TrainerAssignment, error) {
	var assignment *models.TrainerAssignment
	err := db.Transaction(func(tx *gorm.DB) error {
		a, err := loadAssignmentForUpdate(tx, id)
		if err != nil {
			return err
		}
		if a.AdminActions != models.ActionRequestToPay {
			return fmt.Errorf("%w: payment recorded in %s", models.ErrInvalidTransition, a.AdminActions)
		}
		a.PaidByUser = true
		a.PaymentID = paymentID
		assignment = a
		return tx.Save(a).Error
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// PUT /api/admin/assignments/:id/approve
// REQUEST-TO-PAY + paid -> ASSIGNED; both parties are notified best-effort.
func ApproveAssignment(db *gorm.DB, hub *realtime.Hub, mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
			return
		}

		var assignment *models.TrainerAssignment
		txErr := db.Transaction(func(tx *gorm.DB) error {
			a, err := loadAssignmentForUpdate(tx, uint(id))
			if err != nil {
				return err
			}
			if err := a.Transition(models.ActionAssigned); err != nil {
				return err
			}
			assignment = a
			return tx.Save(a).Error
		})
		if txErr != nil {
			respondTransitionError(c, txErr)
			return
		}

		var trainer models.Trainer
		if err := db.First(&trainer, "id = ?", assignment.TrainerID).Error; err == nil {
			mail.SendTrainerAssigned(trainer.Email, assignment.MemberEmail, assignment)
		}

		hub.Publish(realtime.TopicTrainers, assignment)
		c.JSON(http.StatusOK, assignment)
	}
}

// DELETE /api/admin/assignments/:id/with-refund
// Refunds 100% of the extra payment, then removes the record. The record is
// only removed after the gateway reports success; refund and removal are
// still two steps with no compensating action (see DESIGN.md).
func RemoveAssignmentWithRefund(db *gorm.DB, gw payment.Gateway, hub *realtime.Hub, mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
			return
		}

		var assignment models.TrainerAssignment
		if err := db.First(&assignment, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			return
		}
		if !assignment.PaidByUser || assignment.PaymentID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assignment has no payment to refund"})
			return
		}

		refund, err := gw.Refund(assignment.PaymentID, assignment.ExtraPayment)
		if err != nil {
			log.Printf("❌ Refund failed for assignment %d: %v", assignment.ID, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Refund failed"})
			return
		}

		if err := db.Delete(&assignment).Error; err != nil {
			log.Printf("❌ Assignment %d refunded (%s) but removal failed: %v", assignment.ID, refund.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Refund issued but removal failed"})
			return
		}

		var trainer models.Trainer
		if err := db.First(&trainer, "id = ?", assignment.TrainerID).Error; err == nil {
			mail.SendTrainerRemoved(trainer.Email, assignment.MemberEmail, &assignment)
		}

		hub.Publish(realtime.TopicTrainers, gin.H{"deleted": assignment.ID, "refund_id": refund.ID})
		c.JSON(http.StatusOK, gin.H{"message": "Assignment removed and payment refunded", "refund_id": refund.ID})
	}
}

// DELETE /api/admin/assignments/:id/without-refund
// Direct removal for assignments whose period has already elapsed.
func RemoveAssignmentWithoutRefund(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
			return
		}

		var assignment models.TrainerAssignment
		if err := db.First(&assignment, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			return
		}
		if assignment.PaidByUser && !assignment.Elapsed(time.Now()) {
			c.JSON(http.StatusConflict, gin.H{"error": "Assignment period still active; remove with refund"})
			return
		}

		if err := db.Delete(&assignment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove assignment"})
			return
		}

		hub.Publish(realtime.TopicTrainers, gin.H{"deleted": assignment.ID})
		c.JSON(http.StatusOK, gin.H{"message": "Assignment removed"})
	}
}

// GET /api/admin/assignments
func GetAllAssignments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var assignments []models.TrainerAssignment
		if err := db.Preload("Trainer").Order("created_at DESC").Find(&assignments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
			return
		}
		c.JSON(http.StatusOK, assignments)
	}
}

// GET /api/trainers/assignments (caller's own)
func GetUserAssignments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var assignments []models.TrainerAssignment
		if err := db.Preload("Trainer").Where("user_id = ?", userID).
			Order("created_at DESC").Find(&assignments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
			return
		}
		c.JSON(http.StatusOK, assignments)
	}
}

func respondTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update assignment"})
	}
}
