package pacman

import (
	"sort"
	"time"
)

type timerKind int

const (
	timerPowerExpiry timerKind = iota
	timerRespawn
	timerGameOverReset
)

func (k timerKind) String() string {
	switch k {
	case timerPowerExpiry:
		return "power_expiry"
	case timerRespawn:
		return "respawn"
	case timerGameOverReset:
		return "game_over_reset"
	default:
		return "unknown"
	}
}

// timerEvent fires once game time reaches due. Events scheduled before
// the last full reset carry an older epoch and are dropped when they fire.
type timerEvent struct {
	due   time.Duration
	seq   uint64
	epoch uint64
	kind  timerKind
	ghost int
}

// timerQueue holds pending events ordered by due time, then scheduling order.
type timerQueue struct {
	events []timerEvent
	seq    uint64
}

func (q *timerQueue) schedule(ev timerEvent) {
	q.seq++
	ev.seq = q.seq
	i := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].due > ev.due
	})
	q.events = append(q.events, timerEvent{})
	copy(q.events[i+1:], q.events[i:])
	q.events[i] = ev
}

// popDue removes and returns every event due at or before now.
func (q *timerQueue) popDue(now time.Duration) []timerEvent {
	n := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].due > now
	})
	if n == 0 {
		return nil
	}
	due := make([]timerEvent, n)
	copy(due, q.events[:n])
	q.events = append(q.events[:0], q.events[n:]...)
	return due
}

func (q *timerQueue) len() int {
	return len(q.events)
}
