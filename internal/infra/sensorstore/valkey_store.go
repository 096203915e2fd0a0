package sensorstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/skylens/photogenic-sky/internal/domain/sensor"
)

// ValkeyStore persists snapshots in a Valkey-compatible database so several
// instances can share the latest readings.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "photogenic"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Save(ctx context.Context, snap sensor.Snapshot, ttl time.Duration) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key(snap.LocationID)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) Get(ctx context.Context, locationID string) (sensor.Snapshot, bool, error) {
	result := s.client.Do(ctx, s.client.B().Get().Key(s.key(locationID)).Build())
	payload, err := result.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return sensor.Snapshot{}, false, nil
		}
		return sensor.Snapshot{}, false, err
	}
	var snap sensor.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return sensor.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *ValkeyStore) Delete(ctx context.Context, locationID string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.key(locationID)).Build()).Error()
}

func (s *ValkeyStore) key(locationID string) string {
	return s.prefix + ":snapshot:" + locationID
}

var _ sensor.SnapshotStore = (*ValkeyStore)(nil)
