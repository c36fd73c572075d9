package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger"

	"AIRESCAPE_BACK-END/internal/handlers"
	"AIRESCAPE_BACK-END/internal/middleware"
	"AIRESCAPE_BACK-END/internal/utils"
)

// Handlers groups every HTTP handler the router serves
type Handlers struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	ForgotPassword *handlers.ForgotPasswordHandler
	GoogleAuth     *handlers.GoogleAuthHandler
	Users          *handlers.UsersHandler
	Flights        *handlers.FlightsHandler
	Hotels         *handlers.HotelsHandler
	UserTrips      *handlers.UserTripsHandler
	Bookings       *handlers.BookingsHandler
	Payments       *handlers.PaymentsHandler
}

// SetupRoutes configures all application routes. Every route is bound to an
// access rule here; handlers do not check credentials themselves.
func SetupRoutes(h Handlers, policy *middleware.AccessPolicy, limiter *middleware.RateLimiter) *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(notFound)
	router.MethodNotAllowed = http.HandlerFunc(methodNotAllowed)

	public := func(next httprouter.Handle) httprouter.Handle { return policy.Guard(middleware.Public, next) }
	authed := func(next httprouter.Handle) httprouter.Handle { return policy.Guard(middleware.Authenticated, next) }
	admin := func(next httprouter.Handle) httprouter.Handle { return policy.Guard(middleware.Admin, next) }
	selfOrAdmin := func(next httprouter.Handle) httprouter.Handle { return policy.Guard(middleware.SelfOrAdmin, next) }

	// Root and health check routes
	router.GET("/", h.Health.Index)
	router.GET("/healthz", h.Health.HealthCheck)
	router.GET("/livez", h.Health.LivenessCheck)
	router.GET("/readyz", h.Health.ReadinessCheck)

	// Swagger documentation
	router.Handler(http.MethodGet, "/swagger/*any", httpSwagger.WrapHandler)

	// Authentication routes
	router.POST("/users", public(h.Auth.Register))
	router.POST("/login/email", limiter.Limit(public(h.Auth.Login)))
	router.GET("/auth/profile", authed(h.Auth.GetProfile))
	router.POST("/auth/forgot-password", limiter.Limit(public(h.ForgotPassword.ForgotPassword)))
	router.POST("/auth/verify-otp", limiter.Limit(public(h.ForgotPassword.VerifyOTP)))
	router.POST("/auth/reset-password", limiter.Limit(public(h.ForgotPassword.ResetPassword)))
	router.GET("/auth/google/login", public(h.GoogleAuth.GoogleLogin))
	router.GET("/auth/google/callback", public(h.GoogleAuth.GoogleCallback))

	// Users
	router.GET("/users", admin(h.Users.ListUsers))
	router.GET("/users/:id", selfOrAdmin(h.Users.GetUser))
	router.PATCH("/users/:id", selfOrAdmin(h.Users.UpdateUser))
	router.DELETE("/users/:id", selfOrAdmin(h.Users.DeleteUser))

	// Flight catalog and itinerary search
	router.GET("/flights", public(h.Flights.ListFlights))
	router.GET("/flights/:id", public(h.Flights.GetFlight))
	router.POST("/flights", admin(h.Flights.CreateFlight))
	router.PATCH("/flights/:id", admin(h.Flights.UpdateFlight))
	router.DELETE("/flights/:id", admin(h.Flights.DeleteFlight))

	// Hotels
	router.GET("/hotels", public(h.Hotels.ListHotels))
	router.GET("/hotels/:id", public(h.Hotels.GetHotel))
	router.POST("/hotels", admin(h.Hotels.CreateHotel))
	router.PATCH("/hotels/:id", admin(h.Hotels.UpdateHotel))
	router.DELETE("/hotels/:id", admin(h.Hotels.DeleteHotel))

	// Saved flights and hotels
	router.GET("/user/flights", authed(h.UserTrips.ListUserFlights))
	router.POST("/user/flights", authed(h.UserTrips.CreateUserFlight))
	router.GET("/user/flights/:id", authed(h.UserTrips.GetUserFlight))
	router.DELETE("/user/flights/:id", authed(h.UserTrips.DeleteUserFlight))
	router.GET("/user/hotels", authed(h.UserTrips.ListUserHotels))
	router.POST("/user/hotels", authed(h.UserTrips.CreateUserHotel))
	router.GET("/user/hotels/:id", authed(h.UserTrips.GetUserHotel))
	router.DELETE("/user/hotels/:id", authed(h.UserTrips.DeleteUserHotel))

	// Bookings
	router.GET("/bookings", authed(h.Bookings.ListBookings))
	router.POST("/bookings", authed(h.Bookings.CreateBooking))
	router.GET("/bookings/:id", authed(h.Bookings.GetBooking))
	router.PATCH("/bookings/:id", authed(h.Bookings.UpdateBooking))
	router.DELETE("/bookings/:id", authed(h.Bookings.DeleteBooking))
	router.GET("/bookings/:id/ticket", authed(h.Bookings.DownloadTicket))

	// Payments
	router.POST("/stkpush", limiter.Limit(authed(h.Payments.STKPush)))

	return router
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "The requested resource does not exist")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "This method is not supported for the requested resource")
}
