package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/fit-nest-dev/fit-nest-api/controllers/cart"
	membershipControllers "github.com/fit-nest-dev/fit-nest-api/controllers/membership"
	orderControllers "github.com/fit-nest-dev/fit-nest-api/controllers/order"
	paymentControllers "github.com/fit-nest-dev/fit-nest-api/controllers/payment"
	productControllers "github.com/fit-nest-dev/fit-nest-api/controllers/product"
	resourceControllers "github.com/fit-nest-dev/fit-nest-api/controllers/resource"
	trainerControllers "github.com/fit-nest-dev/fit-nest-api/controllers/trainer"
	userControllers "github.com/fit-nest-dev/fit-nest-api/controllers/user"
	"github.com/fit-nest-dev/fit-nest-api/mailer"
	"github.com/fit-nest-dev/fit-nest-api/middleware"
	"github.com/fit-nest-dev/fit-nest-api/payment"
	"github.com/fit-nest-dev/fit-nest-api/realtime"
)

// SetupUserRoutes registers the member-facing endpoints. Requires JWT.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, gw payment.Gateway, mail mailer.Sender, hub *realtime.Hub) {
	// ──────────────── Public browsing ────────────────
	r.GET("/api/products", productControllers.GetProducts(db))
	r.GET("/api/products/:id", productControllers.GetProductByID(db))
	r.GET("/api/trainers", trainerControllers.GetTrainers(db))
	r.GET("/api/trainers/:id", trainerControllers.GetTrainerByID(db))
	r.GET("/api/memberships/plans", membershipControllers.GetPlans(db))
	r.GET("/api/resources", resourceControllers.GetResources(db))

	userGroup := r.Group("/api")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Profile ────────────────
		userGroup.GET("/users/me", userControllers.GetUser(db))
		userGroup.POST("/users/change-request", userControllers.CreateChangeRequest(db))

		// ──────────────── Shopping cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.POST("/", cartControllers.UpdateCartItem(db, hub))
			cartGroup.POST("/validate", cartControllers.ValidateCart(db))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db, hub))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db, hub))
		}

		// ──────────────── Inventory locks (checkout flow) ────────────────
		userGroup.POST("/products/:id/lock", productControllers.LockStockHandler(db, hub))
		userGroup.POST("/products/:id/release", productControllers.ReleaseStockHandler(db, hub))

		// ──────────────── Orders ────────────────
		userGroup.GET("/orders/user/:userID", orderControllers.GetUserOrdersHandler(db))
		userGroup.GET("/orders/:orderID", orderControllers.GetOrderByIDHandler(db))
		userGroup.POST("/orders/:orderID/cancel", orderControllers.CancelOrderHandler(db, gw, hub, mail))

		// ──────────────── Trainer requests ────────────────
		userGroup.POST("/trainers/request", trainerControllers.RequestTrainer(db, hub))
		userGroup.GET("/trainers/assignments/mine", trainerControllers.GetUserAssignments(db))

		// ──────────────── Payments ────────────────
		payGroup := userGroup.Group("/payment")
		{
			payGroup.POST("/order", paymentControllers.CreatePaymentOrderHandler(gw))
			payGroup.POST("/verify", paymentControllers.VerifyPaymentHandler(db, gw, hub, mail))
			payGroup.POST("/verify-trainer", paymentControllers.VerifyTrainerPaymentHandler(db, gw, hub))
			payGroup.POST("/verify-membership", paymentControllers.VerifyMembershipPaymentHandler(db, gw, hub))
			payGroup.GET("/invoice/:invoiceID", paymentControllers.FetchInvoiceHandler(gw))
		}
	}
}
