package audit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rewards_admin/internal/models"
)

type memorySink struct {
	mu      sync.Mutex
	entries []*models.AdminLog
	err     error
}

func (s *memorySink) Insert(ctx context.Context, entry *models.AdminLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memorySink) all() []*models.AdminLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.AdminLog, len(s.entries))
	copy(out, s.entries)
	return out
}

func TestRecorderDrainsOnStop(t *testing.T) {
	sink := &memorySink{}
	rec := NewRecorder(sink, zap.NewNop(), Config{BufferSize: 16, WorkerCount: 2})
	require.NoError(t, rec.Start())

	rec.Record("u1", "rules.create", "rule", "r1", "created rule", "127.0.0.1",
		nil, map[string]string{"name": "double points"})
	rec.Record("u1", "rules.delete", "rule", "r1", "deleted rule", "127.0.0.1",
		map[string]string{"name": "double points"}, nil)
	rec.Record("u2", "variables.create", "variable", "v1", "created variable", "127.0.0.1",
		nil, nil)

	require.NoError(t, rec.Stop(time.Second))

	entries := sink.all()
	require.Len(t, entries, 3)

	first := entries[0]
	if first.Action != "rules.create" {
		// Two workers race on delivery order; find the create entry.
		for _, e := range entries {
			if e.Action == "rules.create" {
				first = e
			}
		}
	}
	assert.Equal(t, "u1", first.UserID)
	assert.Equal(t, "rule", first.Entity)
	assert.Nil(t, first.OldData)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(first.NewData, &payload))
	assert.Equal(t, "double points", payload["name"])
}

func TestRecorderRejectsDoubleStart(t *testing.T) {
	rec := NewRecorder(&memorySink{}, zap.NewNop(), DefaultConfig())
	require.NoError(t, rec.Start())
	assert.Error(t, rec.Start())
	require.NoError(t, rec.Stop(time.Second))
}

func TestRecordAfterStopIsIgnored(t *testing.T) {
	sink := &memorySink{}
	rec := NewRecorder(sink, zap.NewNop(), DefaultConfig())
	require.NoError(t, rec.Start())
	require.NoError(t, rec.Stop(time.Second))

	// Must not panic on the closed channel, just drop the entry.
	rec.Record("u1", "rules.create", "rule", "r1", "late entry", "", nil, nil)
	assert.Empty(t, sink.all())
}

func TestStopWithoutStartErrors(t *testing.T) {
	rec := NewRecorder(&memorySink{}, zap.NewNop(), DefaultConfig())
	assert.Error(t, rec.Stop(time.Second))
}

func TestSinkFailureDoesNotStopWorkers(t *testing.T) {
	sink := &memorySink{err: errors.New("insert failed")}
	rec := NewRecorder(sink, zap.NewNop(), Config{BufferSize: 4, WorkerCount: 1})
	require.NoError(t, rec.Start())

	rec.Record("u1", "rules.create", "rule", "r1", "", "", nil, nil)
	rec.Record("u1", "rules.update", "rule", "r1", "", "", nil, nil)

	// Both inserts fail; Stop still drains without hanging.
	assert.NoError(t, rec.Stop(time.Second))
}
