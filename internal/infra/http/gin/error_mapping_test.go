package ginserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	gin "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	domainbooking "fleetrent/internal/domain/booking"
	domainpricing "fleetrent/internal/domain/pricing"
	"fleetrent/internal/domain/shared/timespan"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

func TestInvalidWindowMatchesInvalidSpan(t *testing.T) {
	assert.ErrorIs(t, domainpricing.ErrInvalidWindow, timespan.ErrInvalidSpan)
}

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "booking missing", err: domainbooking.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "vehicle missing", err: domainvehicle.ErrVehicleNotFound, want: http.StatusNotFound},
		{name: "vehicle busy", err: domainbooking.ErrVehicleBusy, want: http.StatusConflict},
		{name: "bad transition", err: domainbooking.ErrInvalidState, want: http.StatusConflict},
		{name: "pricing window", err: domainpricing.ErrInvalidWindow, want: http.StatusUnprocessableEntity},
		{name: "availability span", err: timespan.ErrInvalidSpan, want: http.StatusUnprocessableEntity},
		{name: "wrapped span", err: fmt.Errorf("check: %w", timespan.ErrInvalidSpan), want: http.StatusUnprocessableEntity},
		{name: "usage metrics", err: domainpricing.ErrInvalidUsageMetrics, want: http.StatusUnprocessableEntity},
		{name: "missing rate", err: domainpricing.ErrMissingRate, want: http.StatusUnprocessableEntity},
		{name: "anything else", err: errors.New("nope"), want: http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			respondError(c, tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
