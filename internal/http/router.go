package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"

	intconfig "busbooking/internal/config"
	h "busbooking/internal/http/handlers"
	"busbooking/internal/http/middleware"
	"busbooking/internal/identity"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

// Deps are the process-owned collaborators handed to every handler.
type Deps struct {
	Env      intconfig.Env
	DB       *sql.DB
	Provider identity.Provider
	Tokens   *identity.Tokens
}

func NewRouter(d Deps) *gin.Engine {
	hd := &h.Handler{
		DB:           d.DB,
		Provider:     d.Provider,
		Tokens:       d.Tokens,
		CookieSecure: d.Env.CookieSecure,
	}
	sessions := services.AuthService{DB: d.DB, Provider: d.Provider, Tokens: d.Tokens}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(d.Env.CORS.AllowedOrigins),
		middleware.RequireSession(sessions),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, h.ErrorResponse{
			Error:     "not_found",
			Message:   "route not found",
			RequestID: middleware.GetRequestID(c),
			Detail:    gin.H{"path": c.Request.URL.Path, "method": c.Request.Method},
		})
	})

	admin := middleware.RequireRoles("admin")

	r.GET("/health", hd.Health)

	// Auth
	r.POST("/signup", hd.SignUp)
	r.POST("/login", hd.Login)
	r.DELETE("/logout", hd.Logout)
	r.GET("/current_user", hd.CurrentUser)
	r.GET("/check_session", hd.CheckSession)

	// Users
	users := r.Group("/users")
	users.GET("", admin, hd.ListUsers)
	users.POST("", admin, hd.CreateUser)
	users.GET("/:id", hd.GetUser)
	users.PATCH("/:id", hd.UpdateUser)
	users.DELETE("/:id", admin, hd.DeleteUser)

	// Drivers & admins
	drivers := r.Group("/drivers", admin)
	drivers.GET("", hd.ListDrivers)
	drivers.POST("", hd.CreateDriver)
	drivers.GET("/:id", hd.GetDriver)
	drivers.PATCH("/:id", hd.UpdateDriver)
	drivers.DELETE("/:id", hd.DeleteDriver)

	admins := r.Group("/admins", admin)
	admins.GET("", hd.ListAdmins)
	admins.POST("", hd.CreateAdmin)
	admins.GET("/:id", hd.GetAdmin)
	admins.PATCH("/:id", hd.UpdateAdmin)
	admins.DELETE("/:id", hd.DeleteAdmin)

	// Catalog
	buses := r.Group("/buses")
	buses.GET("", hd.ListBuses)
	buses.GET("/:id", hd.GetBus)
	buses.POST("", admin, hd.CreateBus)
	buses.PATCH("/:id", admin, hd.UpdateBus)
	buses.DELETE("/:id", admin, hd.DeleteBus)

	routes := r.Group("/routes")
	routes.GET("", hd.ListRoutes)
	routes.GET("/:id", hd.GetRoute)
	routes.POST("", admin, hd.CreateRoute)
	routes.PATCH("/:id", admin, hd.UpdateRoute)
	routes.DELETE("/:id", admin, hd.DeleteRoute)

	seats := r.Group("/seats")
	seats.GET("", hd.ListSeats)
	seats.GET("/:id", hd.GetSeat)
	seats.POST("", admin, hd.CreateSeat)
	seats.PATCH("/:id", admin, hd.UpdateSeat)
	seats.DELETE("/:id", admin, hd.DeleteSeat)

	// Bookings
	bookings := r.Group("/bookings")
	bookings.GET("", hd.ListBookings)
	bookings.POST("", hd.CreateBooking)
	bookings.GET("/:id", hd.GetBooking)
	bookings.PATCH("/:id", hd.UpdateBooking)
	bookings.DELETE("/:id", hd.DeleteBooking)
	bookings.GET("/:id/ticket", hd.GetBookingTicket)

	counter := r.Group("/adminbookings", admin)
	counter.GET("", hd.ListCounterBookings)
	counter.POST("", hd.CreateCounterBooking)
	counter.GET("/:id", hd.GetBooking)
	counter.PATCH("/:id", hd.UpdateBooking)
	counter.DELETE("/:id", hd.DeleteBooking)

	// Feedback
	reviews := r.Group("/reviews")
	reviews.GET("", hd.ListReviews)
	reviews.GET("/:id", hd.GetReview)
	reviews.POST("", hd.CreateReview)
	reviews.PATCH("/:id", admin, hd.UpdateReview)
	reviews.DELETE("/:id", admin, hd.DeleteReview)

	contact := r.Group("/contact")
	contact.POST("", hd.CreateContactMessage)
	contact.GET("", admin, hd.ListContactMessages)
	contact.GET("/:id", admin, hd.GetContactMessage)
	contact.PATCH("/:id", admin, hd.UpdateContactMessage)
	contact.DELETE("/:id", admin, hd.DeleteContactMessage)

	return r
}
