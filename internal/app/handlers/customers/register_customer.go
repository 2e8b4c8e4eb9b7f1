package customers

import (
	"context"
	"time"

	"fleetrent/internal/app/commands"
	"fleetrent/internal/app/handlers/support"
	"fleetrent/internal/app/uow"
	domaincustomer "fleetrent/internal/domain/customer"
)

const registerCustomerKey = "customer.register"

type RegisterCustomerCommand struct {
	CommandID     string
	Name          string
	Email         string
	Phone         string
	LicenceNumber string
	LicenceExpiry time.Time
}

func (c RegisterCustomerCommand) Key() string { return registerCustomerKey }

type RegisterCustomerResult struct {
	CustomerID string `json:"customer_id"`
}

type RegisterCustomerHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *RegisterCustomerHandler) Handle(ctx context.Context, cmd RegisterCustomerCommand) (_ *RegisterCustomerResult, err error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { err = done(err) }()

	cust, err := domaincustomer.New(domaincustomer.CreateParams{
		ID:            domaincustomer.ID(cmd.CommandID),
		Name:          cmd.Name,
		Email:         cmd.Email,
		Phone:         cmd.Phone,
		LicenceNumber: cmd.LicenceNumber,
		LicenceExpiry: cmd.LicenceExpiry,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if existing, lookupErr := unit.Customers().ByEmail(ctx, cust.Email); lookupErr == nil && existing != nil {
		return &RegisterCustomerResult{CustomerID: string(existing.ID)}, nil
	}
	if err := unit.Customers().Save(ctx, cust); err != nil {
		return nil, err
	}
	return &RegisterCustomerResult{CustomerID: string(cust.ID)}, nil
}

var _ commands.Handler[RegisterCustomerCommand, *RegisterCustomerResult] = (*RegisterCustomerHandler)(nil)
