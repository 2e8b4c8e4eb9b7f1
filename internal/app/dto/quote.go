package dto

import (
	domainpricing "fleetrent/internal/domain/pricing"
)

// ChargeBreakdown is the wire representation of a pricing result. Amounts
// are integer minor units.
type ChargeBreakdown struct {
	Hours               int64  `json:"hours"`
	Days                int64  `json:"days"`
	Currency            string `json:"currency"`
	BaseRate            int64  `json:"base_rate"`
	ExtraDistanceCharge int64  `json:"extra_distance_charge"`
	LateReturnCharge    int64  `json:"late_return_charge"`
	FuelRefillCharge    int64  `json:"fuel_refill_charge"`
	DamageCharge        int64  `json:"damage_charge"`
	SecurityDeposit     int64  `json:"security_deposit"`
	Tax                 int64  `json:"tax"`
	Total               int64  `json:"total"`
}

func ChargeBreakdownFromDomain(b domainpricing.ChargeBreakdown) ChargeBreakdown {
	return ChargeBreakdown{
		Hours:               b.Hours,
		Days:                b.Days,
		Currency:            b.Total.Currency,
		BaseRate:            b.BaseRate.Amount,
		ExtraDistanceCharge: b.ExtraDistanceCharge.Amount,
		LateReturnCharge:    b.LateReturnCharge.Amount,
		FuelRefillCharge:    b.FuelRefillCharge.Amount,
		DamageCharge:        b.DamageCharge.Amount,
		SecurityDeposit:     b.SecurityDeposit.Amount,
		Tax:                 b.Tax.Amount,
		Total:               b.Total.Amount,
	}
}
