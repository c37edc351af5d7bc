package routes

import (
	"github.com/Toston-App/lake-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Register mounts the public and owner scoped routes under /api.
func Register(router *gin.Engine, h *Handler, limiter *middleware.RateLimiter) {
	router.Use(middleware.CORSMiddleware())

	public := router.Group("/api")
	public.Use(middleware.RateLimitByOwner(limiter))
	{
		public.POST("/users", h.Registration)
	}

	private := router.Group("/api")
	private.Use(middleware.RequireOwner())
	private.Use(middleware.RateLimitByOwner(limiter))
	{
		private.GET("/users/me", h.GetMe)

		accounts := private.Group("/accounts")
		{
			accounts.POST("", h.CreateAccount)
			accounts.GET("", h.ListAccounts)
			accounts.GET("/:id", h.GetAccount)
			accounts.PATCH("/:id", h.UpdateAccount)
			accounts.DELETE("/:id", h.DeleteAccount)
		}

		categories := private.Group("/categories")
		{
			categories.POST("", h.CreateCategory)
			categories.GET("", h.ListCategories)
			categories.GET("/:id", h.GetCategory)
			categories.DELETE("/:id", h.DeleteCategory)
			categories.POST("/:id/subcategories", h.CreateSubcategory)
		}

		places := private.Group("/places")
		{
			places.POST("", h.CreatePlace)
			places.GET("", h.ListPlaces)
		}

		goals := private.Group("/goals")
		{
			goals.POST("", h.CreateGoal)
			goals.GET("", h.ListGoals)
			goals.GET("/:id", h.GetGoal)
			goals.GET("/:id/progress", h.GetGoalProgress)
			goals.PATCH("/:id", h.UpdateGoal)
			goals.DELETE("/:id", h.DeleteGoal)
		}

		expenses := private.Group("/expenses")
		{
			expenses.POST("", h.CreateExpense)
			expenses.POST("/bulk", h.BulkCreateExpenses)
			expenses.POST("/bulk-delete", h.BulkDeleteExpenses)
			expenses.PATCH("/:id", h.UpdateExpense)
			expenses.DELETE("/:id", h.DeleteExpense)
		}

		incomes := private.Group("/incomes")
		{
			incomes.POST("", h.CreateIncome)
			incomes.POST("/bulk", h.BulkCreateIncomes)
			incomes.POST("/bulk-delete", h.BulkDeleteIncomes)
			incomes.PATCH("/:id", h.UpdateIncome)
			incomes.DELETE("/:id", h.DeleteIncome)
		}

		transfers := private.Group("/transfers")
		{
			transfers.POST("", h.CreateTransfer)
			transfers.POST("/bulk", h.BulkCreateTransfers)
			transfers.POST("/bulk-delete", h.BulkDeleteTransfers)
			transfers.PATCH("/:id", h.UpdateTransfer)
			transfers.DELETE("/:id", h.DeleteTransfer)
		}

		private.GET("/transactions", h.ListTransactions)
		private.POST("/reconcile", h.Reconcile)
	}
}
