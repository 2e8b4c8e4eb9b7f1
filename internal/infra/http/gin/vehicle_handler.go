package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"fleetrent/internal/app/commands"
	"fleetrent/internal/app/dto"
	vehiclesapp "fleetrent/internal/app/handlers/vehicles"
	"fleetrent/internal/app/queries"
)

type VehicleHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type registerVehicleRequest struct {
	Plate                string `json:"plate"`
	Make                 string `json:"make"`
	Model                string `json:"model"`
	Year                 int    `json:"year"`
	Class                string `json:"class"`
	Odometer             int64  `json:"odometer"`
	Currency             string `json:"currency"`
	HourlyRate           int64  `json:"hourly_rate"`
	DailyRate            int64  `json:"daily_rate"`
	WeeklyRate           int64  `json:"weekly_rate"`
	LateReturnPerHour    int64  `json:"late_return_per_hour"`
	ExtraDistancePerUnit int64  `json:"extra_distance_per_unit"`
}

func (h VehicleHandler) Register(c *gin.Context) {
	var req registerVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := vehiclesapp.RegisterVehicleCommand{
		CommandID:            generateCommandID(),
		Plate:                req.Plate,
		Make:                 req.Make,
		Model:                req.Model,
		Year:                 req.Year,
		Class:                req.Class,
		Odometer:             req.Odometer,
		Currency:             req.Currency,
		HourlyRate:           req.HourlyRate,
		DailyRate:            req.DailyRate,
		WeeklyRate:           req.WeeklyRate,
		LateReturnPerHour:    req.LateReturnPerHour,
		ExtraDistancePerUnit: req.ExtraDistancePerUnit,
	}
	result, err := commands.Dispatch[vehiclesapp.RegisterVehicleCommand, *vehiclesapp.RegisterVehicleResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h VehicleHandler) List(c *gin.Context) {
	result, err := queries.Ask[vehiclesapp.ListVehiclesQuery, []dto.Vehicle](c.Request.Context(), h.Queries, vehiclesapp.ListVehiclesQuery{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h VehicleHandler) Get(c *gin.Context) {
	q := vehiclesapp.GetVehicleQuery{VehicleID: c.Param("id")}
	result, err := queries.Ask[vehiclesapp.GetVehicleQuery, dto.Vehicle](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type updateRatesRequest struct {
	Currency             string `json:"currency"`
	HourlyRate           int64  `json:"hourly_rate"`
	DailyRate            int64  `json:"daily_rate"`
	WeeklyRate           int64  `json:"weekly_rate"`
	LateReturnPerHour    int64  `json:"late_return_per_hour"`
	ExtraDistancePerUnit int64  `json:"extra_distance_per_unit"`
}

func (h VehicleHandler) UpdateRates(c *gin.Context) {
	var req updateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := vehiclesapp.UpdateRatesCommand{
		VehicleID:            c.Param("id"),
		Currency:             req.Currency,
		HourlyRate:           req.HourlyRate,
		DailyRate:            req.DailyRate,
		WeeklyRate:           req.WeeklyRate,
		LateReturnPerHour:    req.LateReturnPerHour,
		ExtraDistancePerUnit: req.ExtraDistancePerUnit,
	}
	result, err := commands.Dispatch[vehiclesapp.UpdateRatesCommand, *vehiclesapp.UpdateRatesResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type scheduleServiceRequest struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	WorkType string    `json:"work_type"`
	Notes    string    `json:"notes"`
}

func (h VehicleHandler) ScheduleService(c *gin.Context) {
	var req scheduleServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := vehiclesapp.ScheduleServiceCommand{
		CommandID: generateCommandID(),
		VehicleID: c.Param("id"),
		From:      req.From,
		To:        req.To,
		WorkType:  req.WorkType,
		Notes:     req.Notes,
	}
	result, err := commands.Dispatch[vehiclesapp.ScheduleServiceCommand, *vehiclesapp.ScheduleServiceResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type completeServiceRequest struct {
	Cost     int64  `json:"cost"`
	Currency string `json:"currency"`
}

func (h VehicleHandler) CompleteService(c *gin.Context) {
	var req completeServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := vehiclesapp.CompleteServiceCommand{
		OrderID:  c.Param("id"),
		Cost:     req.Cost,
		Currency: req.Currency,
	}
	result, err := commands.Dispatch[vehiclesapp.CompleteServiceCommand, *vehiclesapp.CompleteServiceResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ VehicleHTTP = VehicleHandler{}
