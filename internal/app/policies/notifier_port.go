package policies

import "context"

// Notifier delivers out-of-band messages (overdue reminders, receipts).
type Notifier interface {
	Send(ctx context.Context, to string, template string, data any) error
}
