package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"fleetrent/internal/app/dto"
	availabilityapp "fleetrent/internal/app/handlers/availability"
	"fleetrent/internal/app/queries"
)

type AvailabilityHandler struct {
	Queries queries.Bus
}

// Check answers GET /vehicles/:id/availability?pickup_at=...&drop_at=...
func (h AvailabilityHandler) Check(c *gin.Context) {
	pickupAt, err := time.Parse(time.RFC3339, c.Query("pickup_at"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pickup_at must be RFC3339"})
		return
	}
	dropAt, err := time.Parse(time.RFC3339, c.Query("drop_at"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "drop_at must be RFC3339"})
		return
	}
	q := availabilityapp.CheckQuery{
		VehicleID: c.Param("id"),
		PickupAt:  pickupAt,
		DropAt:    dropAt,
	}
	result, err := queries.Ask[availabilityapp.CheckQuery, dto.AvailabilityResult](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AvailabilityHandler) Schedule(c *gin.Context) {
	q := availabilityapp.GetScheduleQuery{VehicleID: c.Param("id")}
	result, err := queries.Ask[availabilityapp.GetScheduleQuery, dto.Schedule](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
