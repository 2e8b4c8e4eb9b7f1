package payment

import (
	"context"
	"errors"
	"time"

	"fleetrent/internal/domain/shared/money"
)

var (
	ErrInvalidState    = errors.New("payment: invalid status transition")
	ErrAmountRequired  = errors.New("payment: amount must be positive")
	ErrPaymentNotFound = errors.New("payment: not found")
)

type PaymentID string

type Method string

const (
	MethodCard     Method = "CARD"
	MethodCash     Method = "CASH"
	MethodTransfer Method = "TRANSFER"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusCaptured Status = "CAPTURED"
	StatusRefunded Status = "REFUNDED"
)

type Payment struct {
	ID         PaymentID
	BookingID  string
	Amount     money.Money
	Method     Method
	Status     Status
	CapturedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int64
}

type Repository interface {
	ByID(ctx context.Context, id PaymentID) (*Payment, error)
	ByBooking(ctx context.Context, bookingID string) ([]*Payment, error)
	Save(ctx context.Context, p *Payment) error
}

func New(id PaymentID, bookingID string, amount money.Money, method Method, now time.Time) (*Payment, error) {
	if amount.Amount <= 0 {
		return nil, ErrAmountRequired
	}
	created := now.UTC()
	return &Payment{
		ID:        id,
		BookingID: bookingID,
		Amount:    amount,
		Method:    method,
		Status:    StatusPending,
		CreatedAt: created,
		UpdatedAt: created,
	}, nil
}

func (p *Payment) Capture(now time.Time) error {
	if p.Status != StatusPending {
		return ErrInvalidState
	}
	p.Status = StatusCaptured
	p.CapturedAt = now.UTC()
	p.UpdatedAt = p.CapturedAt
	return nil
}

func (p *Payment) Refund(now time.Time) error {
	if p.Status != StatusCaptured {
		return ErrInvalidState
	}
	p.Status = StatusRefunded
	p.UpdatedAt = now.UTC()
	return nil
}
