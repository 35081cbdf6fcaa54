package client

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"clinicdesk/cmd/internal/triage"
	"clinicdesk/cmd/internal/utils"
)

// QueueCache holds the in-memory mirror of the remote appointment set and
// mediates every mutation against the remote store. Mutations apply to the
// mirror first so the view stays responsive, then confirm remotely inside the
// same call; a failed confirmation rolls the mirror back. There is no retry:
// a failed confirmation is terminal for that attempt.
type QueueCache struct {
	store  RemoteStore
	policy triage.WeightPolicy
	state  func() triage.MutationState

	mu     sync.Mutex
	mirror []triage.Appointment
}

// NewQueueCache builds a cache over the given store. policy may be nil for
// the default ordering; state supplies the current surge flags to the policy
// and may be nil.
func NewQueueCache(store RemoteStore, policy triage.WeightPolicy, state func() triage.MutationState) *QueueCache {
	return &QueueCache{store: store, policy: policy, state: state}
}

// Refresh replaces the whole mirror with the remote contents. No merge, last
// full read wins. On failure the prior mirror stays usable and the error is
// returned to the caller.
func (q *QueueCache) Refresh(ctx context.Context) error {
	appts, err := q.store.List(ctx)
	if err != nil {
		log.Errorf("failed to refresh appointments: %v", err)
		return err
	}

	q.mu.Lock()
	q.mirror = appts
	q.mu.Unlock()
	return nil
}

// Add synthesizes the identifier and registration timestamp, inserts the
// record into the mirror, then confirms the creation remotely. On failure the
// record is evicted again and the zero appointment is returned with the error.
// The id is generated client-side, so concurrent Adds never collide and a
// rollback always finds its own record.
func (q *QueueCache) Add(ctx context.Context, appt triage.Appointment) (triage.Appointment, error) {
	appt.ID = uuid.NewString()
	appt.RegisteredAt = utils.NowRFC3339()

	q.mu.Lock()
	q.mirror = append(q.mirror, appt)
	q.mu.Unlock()

	if err := q.store.Create(ctx, appt); err != nil {
		log.Errorf("failed to save appointment %s, rolling back: %v", appt.ID, err)
		q.evict(appt.ID)
		return triage.Appointment{}, err
	}
	return appt, nil
}

// Remove evicts the record from the mirror, then confirms the deletion
// remotely. On failure the evicted record is re-inserted, keeping the mirror
// honest about what the remote store still holds. An id absent from the
// mirror is still deleted remotely.
func (q *QueueCache) Remove(ctx context.Context, id string) error {
	removed, had := q.evict(id)

	if err := q.store.Delete(ctx, id); err != nil {
		log.Errorf("failed to delete appointment %s, restoring: %v", id, err)
		if had {
			q.mu.Lock()
			q.mirror = append(q.mirror, removed)
			q.mu.Unlock()
		}
		return err
	}
	return nil
}

// All returns a snapshot of the mirror in insertion order.
func (q *QueueCache) All() []triage.Appointment {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]triage.Appointment, len(q.mirror))
	copy(out, q.mirror)
	return out
}

// Ordered returns a snapshot of the mirror in dispatch order. The mirror
// itself is never reordered.
func (q *QueueCache) Ordered() []triage.Appointment {
	state := triage.MutationState{}
	if q.state != nil {
		state = q.state()
	}
	return triage.SortedBy(q.All(), q.policy, state)
}

func (q *QueueCache) evict(id string) (triage.Appointment, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, a := range q.mirror {
		if a.ID == id {
			q.mirror = append(q.mirror[:i], q.mirror[i+1:]...)
			return a, true
		}
	}
	return triage.Appointment{}, false
}
