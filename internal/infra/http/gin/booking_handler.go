package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleetrent/internal/app/commands"
	"fleetrent/internal/app/dto"
	bookingapp "fleetrent/internal/app/handlers/booking"
	"fleetrent/internal/app/queries"
	domainbooking "fleetrent/internal/domain/booking"
	domaincustomer "fleetrent/internal/domain/customer"
	domainpricing "fleetrent/internal/domain/pricing"
	"fleetrent/internal/domain/shared/timespan"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type reserveBookingRequest struct {
	VehicleID       string    `json:"vehicle_id"`
	CustomerID      string    `json:"customer_id"`
	PickupAt        time.Time `json:"pickup_at"`
	ScheduledDropAt time.Time `json:"scheduled_drop_at"`
}

func (h BookingHandler) Reserve(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req reserveBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.ReserveBookingCommand{
		CommandID:       generateCommandID(),
		VehicleID:       req.VehicleID,
		CustomerID:      req.CustomerID,
		PickupAt:        req.PickupAt,
		ScheduledDropAt: req.ScheduledDropAt,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.ReserveBookingCommand, *bookingapp.ReserveBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type startRentalRequest struct {
	Odometer int64 `json:"odometer"`
}

func (h BookingHandler) Start(c *gin.Context) {
	var req startRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.StartRentalCommand{
		BookingID: c.Param("id"),
		Odometer:  req.Odometer,
	}
	result, err := commands.Dispatch[bookingapp.StartRentalCommand, *bookingapp.StartRentalResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type completeRentalRequest struct {
	ActualDropAt    time.Time `json:"actual_drop_at"`
	StartOdometer   *int64    `json:"start_odometer"`
	EndOdometer     *int64    `json:"end_odometer"`
	FuelLevelStart  *float64  `json:"fuel_level_start"`
	FuelLevelEnd    *float64  `json:"fuel_level_end"`
	DamageCharge    int64     `json:"damage_charge"`
	SecurityDeposit int64     `json:"security_deposit"`
	PaymentMethod   string    `json:"payment_method"`
}

func (h BookingHandler) Complete(c *gin.Context) {
	var req completeRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.CompleteRentalCommand{
		CommandID:       generateCommandID(),
		BookingID:       c.Param("id"),
		ActualDropAt:    req.ActualDropAt,
		StartOdometer:   req.StartOdometer,
		EndOdometer:     req.EndOdometer,
		FuelLevelStart:  req.FuelLevelStart,
		FuelLevelEnd:    req.FuelLevelEnd,
		DamageCharge:    req.DamageCharge,
		SecurityDeposit: req.SecurityDeposit,
		PaymentMethod:   req.PaymentMethod,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.CompleteRentalCommand, *bookingapp.CompleteRentalResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

func (h BookingHandler) Cancel(c *gin.Context) {
	var req cancelBookingRequest
	// reason is optional; an empty body is fine
	_ = c.ShouldBindJSON(&req)
	cmd := bookingapp.CancelBookingCommand{
		BookingID: c.Param("id"),
		Reason:    req.Reason,
	}
	result, err := commands.Dispatch[bookingapp.CancelBookingCommand, *bookingapp.CancelBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Get(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	q := bookingapp.GetBookingQuery{BookingID: c.Param("id")}
	result, err := queries.Ask[bookingapp.GetBookingQuery, dto.Booking](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func generateCommandID() string {
	return uuid.NewString()
}

// respondError maps domain sentinels onto HTTP statuses; everything
// unrecognized is treated as a bad request.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainbooking.ErrBookingNotFound),
		errors.Is(err, domainvehicle.ErrVehicleNotFound),
		errors.Is(err, domaincustomer.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domainbooking.ErrVehicleBusy),
		errors.Is(err, domainbooking.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, timespan.ErrInvalidSpan),
		errors.Is(err, domainpricing.ErrInvalidUsageMetrics),
		errors.Is(err, domainpricing.ErrMissingRate):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

var _ BookingHTTP = BookingHandler{}
