package schedule

import (
	"context"
	"log/slog"
	"time"

	"fleetrent/internal/app/outbox"
	"fleetrent/internal/app/policies"
	"fleetrent/internal/app/uow"
)

// OverdueSweep flags active rentals past their scheduled drop. It runs on
// a cron cadence and emits one overdue event per booking; repeated runs
// are harmless because flagging is idempotent.
type OverdueSweep struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Notifier   policies.Notifier
	Logger     *slog.Logger
	Now        func() time.Time
}

func (s *OverdueSweep) Run(ctx context.Context) error {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	unit, err := s.UoWFactory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return err
	}
	ctx = uow.ContextWithUnitOfWork(ctx, unit)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	due, err := unit.Bookings().ListActiveDueBefore(ctx, now)
	if err != nil {
		return err
	}
	type notice struct {
		bookingID string
		email     string
		dueAt     time.Time
	}
	var notices []notice
	for _, bkg := range due {
		if !bkg.FlagOverdue(now) {
			continue
		}
		if err := unit.Bookings().Save(ctx, bkg); err != nil {
			return err
		}
		pending := bkg.PendingEvents()
		bkg.ClearEvents()
		if err := outbox.RecordDomainEvents(ctx, s.Outbox, s.Encoder, pending); err != nil {
			return err
		}
		n := notice{bookingID: string(bkg.ID), dueAt: bkg.Window.ScheduledDropAt}
		if cust, err := unit.Customers().ByID(ctx, bkg.CustomerID); err == nil {
			n.email = cust.Email
		}
		notices = append(notices, n)
	}
	if err := unit.Commit(ctx); err != nil {
		return err
	}
	committed = true

	// Reminders are best effort and go out only after the flags land.
	if s.Notifier != nil {
		for _, n := range notices {
			if n.email == "" {
				continue
			}
			if err := s.Notifier.Send(ctx, n.email, "rental_overdue", map[string]any{
				"booking_id": n.bookingID,
				"due_at":     n.dueAt,
			}); err != nil && s.Logger != nil {
				s.Logger.Warn("overdue reminder failed", "booking_id", n.bookingID, "error", err)
			}
		}
	}
	if s.Logger != nil && len(notices) > 0 {
		s.Logger.Info("overdue sweep finished", "flagged", len(notices))
	}
	return nil
}
