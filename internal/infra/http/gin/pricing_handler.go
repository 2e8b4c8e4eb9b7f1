package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"fleetrent/internal/app/dto"
	pricingapp "fleetrent/internal/app/handlers/pricing"
	"fleetrent/internal/app/queries"
)

type PricingHandler struct {
	Queries queries.Bus
}

type quoteRequest struct {
	VehicleID       string    `json:"vehicle_id"`
	PickupAt        time.Time `json:"pickup_at"`
	ScheduledDropAt time.Time `json:"scheduled_drop_at"`
	ActualDropAt    time.Time `json:"actual_drop_at"`
	StartOdometer   *int64    `json:"start_odometer"`
	EndOdometer     *int64    `json:"end_odometer"`
	FuelLevelStart  *float64  `json:"fuel_level_start"`
	FuelLevelEnd    *float64  `json:"fuel_level_end"`
	DamageCharge    int64     `json:"damage_charge"`
	SecurityDeposit int64     `json:"security_deposit"`
}

// Quote prices a rental window without creating a booking.
func (h PricingHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q := pricingapp.QuoteQuery{
		VehicleID:       req.VehicleID,
		PickupAt:        req.PickupAt,
		ScheduledDropAt: req.ScheduledDropAt,
		ActualDropAt:    req.ActualDropAt,
		StartOdometer:   req.StartOdometer,
		EndOdometer:     req.EndOdometer,
		FuelLevelStart:  req.FuelLevelStart,
		FuelLevelEnd:    req.FuelLevelEnd,
		DamageCharge:    req.DamageCharge,
		SecurityDeposit: req.SecurityDeposit,
	}
	result, err := queries.Ask[pricingapp.QuoteQuery, dto.ChargeBreakdown](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PricingHTTP = PricingHandler{}
