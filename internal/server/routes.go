package server

import (
	"github.com/labstack/echo/v4"

	"example.com/mil-eventos/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	proposalHandler *handlers.ProposalHandler,
	agendaHandler *handlers.AgendaHandler,
	eventHandler *handlers.EventHandler,
	transactionHandler *handlers.TransactionHandler,
	clientHandler *handlers.ClientHandler,
	supplierHandler *handlers.SupplierHandler,
	serviceHandler *handlers.ServiceHandler,
	profileHandler *handlers.ProfileHandler,
	dashboardHandler *handlers.DashboardHandler,
	aiHandler *handlers.AIHandler,
	messageHandler *handlers.MessageHandler,
	notificationHandler *handlers.NotificationHandler,
	authMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	proposals := api.Group("/proposals", authMiddleware)
	proposals.GET("", proposalHandler.List)
	proposals.GET("/board", proposalHandler.Board)
	proposals.POST("", proposalHandler.Create)
	proposals.PATCH("/:id/stage", proposalHandler.UpdateStage)
	proposals.POST("/:id/message", messageHandler.ForProposal)

	agenda := api.Group("/agenda", authMiddleware)
	agenda.GET("", agendaHandler.List)

	events := api.Group("/events", authMiddleware)
	events.GET("", eventHandler.List)
	events.POST("", eventHandler.Create)
	events.GET("/:id", eventHandler.Get)
	events.PUT("/:id", eventHandler.Update)
	events.DELETE("/:id", eventHandler.Delete)
	events.POST("/:id/checklist", eventHandler.AddChecklistItem)
	events.PATCH("/:id/checklist/:itemId/toggle", eventHandler.ToggleChecklistItem)
	events.DELETE("/:id/checklist/:itemId", eventHandler.DeleteChecklistItem)
	events.POST("/:id/timeline", eventHandler.AddTimelineItem)
	events.DELETE("/:id/timeline/:itemId", eventHandler.DeleteTimelineItem)
	events.GET("/:id/costs", eventHandler.ListCosts)
	events.POST("/:id/costs", eventHandler.AddCost)
	events.DELETE("/:id/costs/:itemId", eventHandler.DeleteCost)
	events.GET("/:id/messages/:kind", messageHandler.ForEvent)

	transactions := api.Group("/transactions", authMiddleware)
	transactions.GET("", transactionHandler.List)
	transactions.POST("", transactionHandler.Create)
	transactions.PATCH("/:id/status", transactionHandler.UpdateStatus)
	transactions.GET("/export/csv", transactionHandler.ExportCSV)

	clients := api.Group("/clients", authMiddleware)
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Create)

	suppliers := api.Group("/suppliers", authMiddleware)
	suppliers.GET("", supplierHandler.List)
	suppliers.POST("", supplierHandler.Create)
	suppliers.DELETE("/:id", supplierHandler.Delete)

	services := api.Group("/services", authMiddleware)
	services.GET("", serviceHandler.List)
	services.POST("", serviceHandler.Create)
	services.DELETE("/:id", serviceHandler.Delete)

	profile := api.Group("/profile", authMiddleware)
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)
	profile.PATCH("/goal", profileHandler.UpdateGoal)

	dashboard := api.Group("/dashboard", authMiddleware)
	dashboard.GET("/summary", dashboardHandler.Summary)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)

	aiGroup := api.Group("/ai", authMiddleware, aiRateLimiter)
	aiGroup.POST("/extract", aiHandler.Extract)
	aiGroup.POST("/describe", aiHandler.Describe)
}
