package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	RegisterUser(c *ginext.Context)
	GetUser(c *ginext.Context)
	AdjustCredits(c *ginext.Context)
	GetUserBookings(c *ginext.Context)
	EvaluateBooking(c *ginext.Context)
	CreateBooking(c *ginext.Context)
	CancelBooking(c *ginext.Context)
	GetStats(c *ginext.Context)
	ListUsers(c *ginext.Context)
}

func InitRouter(mode string, h Handler, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Users
		api.POST("/users", h.RegisterUser)
		api.GET("/users/:id", h.GetUser)
		api.POST("/users/:id/credits", h.AdjustCredits)
		api.GET("/users/:id/bookings", h.GetUserBookings)

		// Bookings
		api.POST("/bookings/evaluate", h.EvaluateBooking)
		api.POST("/bookings", h.CreateBooking)
		api.DELETE("/bookings/:id", h.CancelBooking)

		// Admin
		api.GET("/admin/stats", h.GetStats)
		api.GET("/admin/users", h.ListUsers)
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	return router
}
