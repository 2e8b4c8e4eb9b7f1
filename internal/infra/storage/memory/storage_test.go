package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrent/internal/app/middleware"
	appoutbox "fleetrent/internal/app/outbox"
	"fleetrent/internal/domain/shared/money"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

func TestVehicleRepositoryBumpsVersionOnSave(t *testing.T) {
	repo := NewVehicleRepository()
	ctx := context.Background()

	veh, err := domainvehicle.Register(domainvehicle.RegisterParams{
		ID:    "veh-1",
		Plate: "KA-01-HH-1234",
		Make:  "Maruti",
		Model: "Swift",
		Year:  2023,
		Rates: domainvehicle.RateSchedule{Daily: money.Must(2000, "INR")},
	})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, veh))
	require.NoError(t, repo.Save(ctx, veh))

	stored, err := repo.ByID(ctx, "veh-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Version)
}

func TestVehicleRepositoryMissingID(t *testing.T) {
	repo := NewVehicleRepository()
	_, err := repo.ByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domainvehicle.ErrVehicleNotFound)
}

func TestOutboxFlushDrainsIntoSink(t *testing.T) {
	box := NewOutbox()
	ctx := context.Background()

	var delivered []appoutbox.EventRecord
	box.Sink = func(ctx context.Context, records []appoutbox.EventRecord) error {
		delivered = append(delivered, records...)
		return nil
	}

	require.NoError(t, box.Add(ctx, appoutbox.EventRecord{ID: "ev-1", Name: "booking.reserved"}))
	require.NoError(t, box.Add(ctx, appoutbox.EventRecord{ID: "ev-2", Name: "booking.cancelled"}))
	require.Len(t, box.Pending(), 2)

	require.NoError(t, box.Flush(ctx))
	assert.Len(t, delivered, 2)
	assert.Empty(t, box.Pending())

	// a second flush has nothing left to hand over
	require.NoError(t, box.Flush(ctx))
	assert.Len(t, delivered, 2)
}

func TestIdempotencyStoreExpiresRecords(t *testing.T) {
	store := NewIdempotencyStore()
	store.TTL = time.Minute
	ctx := context.Background()

	fresh := middleware.IdempotencyRecord{Key: "k1", Payload: []byte("{}"), OccurredAt: time.Now()}
	stale := middleware.IdempotencyRecord{Key: "k2", Payload: []byte("{}"), OccurredAt: time.Now().Add(-2 * time.Minute)}
	require.NoError(t, store.Save(ctx, fresh))
	require.NoError(t, store.Save(ctx, stale))

	_, ok, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = store.Get(ctx, "k2")
	require.NoError(t, err)
	assert.False(t, ok, "expired record must read as a miss")
}
