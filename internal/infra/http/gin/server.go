package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"fleetrent/internal/infra/config"
	"fleetrent/internal/infra/obs"
)

type BookingHTTP interface {
	Reserve(c *gin.Context)
	Start(c *gin.Context)
	Complete(c *gin.Context)
	Cancel(c *gin.Context)
	Get(c *gin.Context)
}

type VehicleHTTP interface {
	Register(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	UpdateRates(c *gin.Context)
	ScheduleService(c *gin.Context)
	CompleteService(c *gin.Context)
}

type PricingHTTP interface {
	Quote(c *gin.Context)
}

type AvailabilityHTTP interface {
	Check(c *gin.Context)
	Schedule(c *gin.Context)
}

type CustomerHTTP interface {
	Register(c *gin.Context)
	ListBookings(c *gin.Context)
}

type Handlers struct {
	Booking      BookingHTTP
	Vehicle      VehicleHTTP
	Pricing      PricingHTTP
	Availability AvailabilityHTTP
	Customer     CustomerHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Reserve)
		api.GET("/bookings/:id", h.Booking.Get)
		api.POST("/bookings/:id/start", h.Booking.Start)
		api.POST("/bookings/:id/complete", h.Booking.Complete)
		api.POST("/bookings/:id/cancel", h.Booking.Cancel)
	}
	if h.Vehicle != nil {
		api.GET("/vehicles", h.Vehicle.List)
		api.POST("/vehicles", h.Vehicle.Register)
		api.GET("/vehicles/:id", h.Vehicle.Get)
		api.PUT("/vehicles/:id/rates", h.Vehicle.UpdateRates)
		api.POST("/vehicles/:id/service-orders", h.Vehicle.ScheduleService)
		api.POST("/service-orders/:id/complete", h.Vehicle.CompleteService)
	}
	if h.Pricing != nil {
		api.POST("/quotes", h.Pricing.Quote)
	}
	if h.Availability != nil {
		api.GET("/vehicles/:id/availability", h.Availability.Check)
		api.GET("/vehicles/:id/schedule", h.Availability.Schedule)
	}
	if h.Customer != nil {
		api.POST("/customers", h.Customer.Register)
		api.GET("/customers/:id/bookings", h.Customer.ListBookings)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
