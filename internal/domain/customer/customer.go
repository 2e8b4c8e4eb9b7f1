package customer

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrIDRequired      = errors.New("customer: id is required")
	ErrNameRequired    = errors.New("customer: name is required")
	ErrEmailRequired   = errors.New("customer: email is required")
	ErrLicenceRequired = errors.New("customer: driving licence number is required")
	ErrLicenceExpired  = errors.New("customer: driving licence expired")
	ErrNotFound        = errors.New("customer: not found")
	ErrSuspended       = errors.New("customer: account suspended")
)

type ID string

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

type Customer struct {
	ID            ID
	Name          string
	Email         string
	Phone         string
	LicenceNumber string
	LicenceExpiry time.Time
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Customer, error)
	ByEmail(ctx context.Context, email string) (*Customer, error)
	Save(ctx context.Context, customer *Customer) error
}

type CreateParams struct {
	ID            ID
	Name          string
	Email         string
	Phone         string
	LicenceNumber string
	LicenceExpiry time.Time
	CreatedAt     time.Time
}

func New(params CreateParams) (*Customer, error) {
	id := strings.TrimSpace(string(params.ID))
	if id == "" {
		return nil, ErrIDRequired
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	licence := strings.TrimSpace(params.LicenceNumber)
	if licence == "" {
		return nil, ErrLicenceRequired
	}
	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return &Customer{
		ID:            ID(id),
		Name:          name,
		Email:         email,
		Phone:         strings.TrimSpace(params.Phone),
		LicenceNumber: licence,
		LicenceExpiry: params.LicenceExpiry.UTC(),
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// CanRentAt checks that the customer may pick up a vehicle at the given
// instant: active account and a licence valid through pickup.
func (c *Customer) CanRentAt(pickupAt time.Time) error {
	if c.Status == StatusSuspended {
		return ErrSuspended
	}
	if !c.LicenceExpiry.IsZero() && c.LicenceExpiry.Before(pickupAt) {
		return ErrLicenceExpired
	}
	return nil
}

func (c *Customer) Suspend(now time.Time) {
	c.Status = StatusSuspended
	c.UpdatedAt = now.UTC()
}

func (c *Customer) Reinstate(now time.Time) {
	c.Status = StatusActive
	c.UpdatedAt = now.UTC()
}
