package memory

import (
	"context"
	"sync"

	appoutbox "fleetrent/internal/app/outbox"
)

// Outbox keeps staged events in memory until a flush sink drains them.
// With a nil sink Flush simply discards, which suits tests and demos.
type Outbox struct {
	mu      sync.Mutex
	records []appoutbox.EventRecord
	Sink    func(ctx context.Context, records []appoutbox.EventRecord) error
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	records := o.records
	o.records = nil
	sink := o.Sink
	o.mu.Unlock()
	if sink == nil || len(records) == 0 {
		return nil
	}
	return sink(ctx, records)
}

// Pending returns a snapshot of staged records; used by tests.
func (o *Outbox) Pending() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]appoutbox.EventRecord, len(o.records))
	copy(out, o.records)
	return out
}

var _ appoutbox.Outbox = (*Outbox)(nil)
