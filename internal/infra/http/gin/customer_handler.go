package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"fleetrent/internal/app/commands"
	"fleetrent/internal/app/dto"
	bookingapp "fleetrent/internal/app/handlers/booking"
	customersapp "fleetrent/internal/app/handlers/customers"
	"fleetrent/internal/app/queries"
)

type CustomerHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type registerCustomerRequest struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	LicenceNumber string    `json:"licence_number"`
	LicenceExpiry time.Time `json:"licence_expiry"`
}

func (h CustomerHandler) Register(c *gin.Context) {
	var req registerCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := customersapp.RegisterCustomerCommand{
		CommandID:     generateCommandID(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		LicenceNumber: req.LicenceNumber,
		LicenceExpiry: req.LicenceExpiry,
	}
	result, err := commands.Dispatch[customersapp.RegisterCustomerCommand, *customersapp.RegisterCustomerResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h CustomerHandler) ListBookings(c *gin.Context) {
	q := bookingapp.ListCustomerBookingsQuery{CustomerID: c.Param("id")}
	result, err := queries.Ask[bookingapp.ListCustomerBookingsQuery, []dto.Booking](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ CustomerHTTP = CustomerHandler{}
