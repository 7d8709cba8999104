package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JavierAQR/backend-luaspets/internal/handlers"
	"github.com/JavierAQR/backend-luaspets/internal/middleware/auth"
)

type Deps struct {
	DB                 *gorm.DB
	Auth               *auth.JWT
	ProductHandler     *handlers.ProductHandler
	SearchHandler      *handlers.SearchHandler
	CartHandler        *handlers.CartHandler
	OrderHandler       *handlers.OrderHandler
	PetHandler         *handlers.PetHandler
	ServiceHandler     *handlers.ClinicServiceHandler
	AppointmentHandler *handlers.AppointmentHandler
	UserHandler        *handlers.UserHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error {
		if sqlDB, err := d.DB.DB(); err != nil || sqlDB.Ping() != nil {
			return c.NoContent(503)
		}
		return c.NoContent(200)
	})

	v1 := e.Group("/api/v1")

	v1.GET("/search", d.SearchHandler.Search)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	services := v1.Group("/services")
	services.GET("", d.ServiceHandler.GetServices)
	services.GET("/:id", d.ServiceHandler.GetService)

	me := v1.Group("/users/me", d.Auth.RequireUser)
	me.GET("", d.UserHandler.GetProfile)
	me.PUT("", d.UserHandler.UpdateProfile)

	cart := v1.Group("/cart", d.Auth.RequireUser)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddItem)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.PUT("/items/:id", d.CartHandler.UpdateItem)
	cart.DELETE("/items/:id", d.CartHandler.RemoveItem)

	orders := v1.Group("/orders", d.Auth.RequireUser)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.GetMyOrders)
	orders.GET("/:id", d.OrderHandler.GetOrderByID)
	orders.POST("/:id/complete", d.OrderHandler.CompleteOrder)

	pets := v1.Group("/pets", d.Auth.RequireUser)
	pets.POST("", d.PetHandler.CreatePet)
	pets.GET("", d.PetHandler.GetMyPets)
	pets.GET("/:id", d.PetHandler.GetPet)
	pets.PUT("/:id", d.PetHandler.UpdatePet)
	pets.DELETE("/:id", d.PetHandler.DeletePet)

	appointments := v1.Group("/appointments", d.Auth.RequireUser)
	appointments.POST("", d.AppointmentHandler.CreateAppointment)
	appointments.GET("", d.AppointmentHandler.GetMyAppointments)
	appointments.GET("/:id", d.AppointmentHandler.GetAppointment)
	appointments.POST("/:id/cancel", d.AppointmentHandler.CancelAppointment)

	admin := v1.Group("/admin", d.Auth.RequireAdmin)

	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	admin.POST("/services", d.ServiceHandler.CreateService)
	admin.PATCH("/services/:id", d.ServiceHandler.PatchService)
	admin.DELETE("/services/:id", d.ServiceHandler.DeleteService)

	admin.GET("/orders", d.OrderHandler.GetAllOrders)

	admin.GET("/appointments", d.AppointmentHandler.GetAllAppointments)
	admin.PATCH("/appointments/:id/status", d.AppointmentHandler.UpdateStatus)

	admin.GET("/users", d.UserHandler.GetUsers)
}
