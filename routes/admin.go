package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/fit-nest-dev/fit-nest-api/controllers/cart"
	membershipControllers "github.com/fit-nest-dev/fit-nest-api/controllers/membership"
	orderControllers "github.com/fit-nest-dev/fit-nest-api/controllers/order"
	productControllers "github.com/fit-nest-dev/fit-nest-api/controllers/product"
	resourceControllers "github.com/fit-nest-dev/fit-nest-api/controllers/resource"
	trainerControllers "github.com/fit-nest-dev/fit-nest-api/controllers/trainer"
	userControllers "github.com/fit-nest-dev/fit-nest-api/controllers/user"
	"github.com/fit-nest-dev/fit-nest-api/mailer"
	"github.com/fit-nest-dev/fit-nest-api/middleware"
	"github.com/fit-nest-dev/fit-nest-api/payment"
	"github.com/fit-nest-dev/fit-nest-api/realtime"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints. Requires the
// API-key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, gw payment.Gateway, mail mailer.Sender, hub *realtime.Hub) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── User management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(db))

		changeReqs := adminGroup.Group("/change-requests")
		{
			changeReqs.GET("", userControllers.ListChangeRequests(db))
			changeReqs.POST("/:id/approve", userControllers.ApproveChangeRequest(db, hub))
			changeReqs.POST("/:id/reject", userControllers.RejectChangeRequest(db))
		}

		// ─────────── Catalog management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(db, hub))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db, hub))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db, hub))
			productAdmin.POST("/:id/release", productControllers.ReleaseStockHandler(db, hub))
			productAdmin.POST("/:id/confirm", productControllers.ConfirmConsumedHandler(db, hub))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}

		// ─────────── Orders ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db, hub, mail))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
		}

		// ─────────── Trainer management ───────────
		trainerAdmin := adminGroup.Group("/trainers")
		{
			trainerAdmin.POST("", trainerControllers.CreateTrainer(db, hub))
			trainerAdmin.PUT("/:id", trainerControllers.UpdateTrainer(db, hub))
			trainerAdmin.DELETE("/:id", trainerControllers.DeleteTrainer(db, hub))
		}

		assignmentAdmin := adminGroup.Group("/assignments")
		{
			assignmentAdmin.GET("", trainerControllers.GetAllAssignments(db))
			assignmentAdmin.PUT("/:id/quote", trainerControllers.QuoteAssignment(db, hub))
			assignmentAdmin.PUT("/:id/approve", trainerControllers.ApproveAssignment(db, hub, mail))
			assignmentAdmin.DELETE("/:id/with-refund", trainerControllers.RemoveAssignmentWithRefund(db, gw, hub, mail))
			assignmentAdmin.DELETE("/:id/without-refund", trainerControllers.RemoveAssignmentWithoutRefund(db, hub))
		}

		// ─────────── Membership plans ───────────
		planAdmin := adminGroup.Group("/plans")
		{
			planAdmin.POST("", membershipControllers.CreatePlan(db, hub))
			planAdmin.PUT("/:id", membershipControllers.UpdatePlan(db, hub))
			planAdmin.DELETE("/:id", membershipControllers.DeletePlan(db, hub))
		}
		adminGroup.POST("/membership/expire-sweep", membershipControllers.ExpireSweepHandler(db, hub))

		// ─────────── Resources ───────────
		resourceAdmin := adminGroup.Group("/resources")
		{
			resourceAdmin.POST("", resourceControllers.UploadResource(db))
			resourceAdmin.DELETE("/:id", resourceControllers.DeleteResource(db))
		}
	}
}
