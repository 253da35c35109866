package event

import (
	"sync/atomic"

	"github.com/lixenwraith/tubby-terrors/constant"
)

// EventQueueSize must stay a power of two
const queueMask = constant.EventQueueSize - 1

type slot struct {
	ready atomic.Bool
	ev    GameEvent
}

// Queue hands events from background goroutines to the frame loop
// Any number of goroutines may Push; only the frame loop calls Consume
// A full queue rejects new events; a slot is reused only after Consume released it
type Queue struct {
	slots [constant.EventQueueSize]slot
	tail  atomic.Uint64 // next sequence to reserve
	head  atomic.Uint64 // next sequence to read; slots below it are free
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push reserves a sequence number and publishes ev into its slot
// It returns false without blocking when the queue is full
func (q *Queue) Push(ev GameEvent) bool {
	for {
		seq := q.tail.Load()
		if seq-q.head.Load() >= constant.EventQueueSize {
			return false
		}
		if q.tail.CompareAndSwap(seq, seq+1) {
			s := &q.slots[seq&queueMask]
			s.ev = ev
			s.ready.Store(true)
			return true
		}
	}
}

// Consume returns published events in sequence order
// It stops at the first slot whose writer has not finished; the rest are returned next frame
func (q *Queue) Consume() []GameEvent {
	head := q.head.Load()
	tail := q.tail.Load()
	if head == tail {
		return nil
	}

	var out []GameEvent
	seq := head
	for ; seq < tail; seq++ {
		s := &q.slots[seq&queueMask]
		if !s.ready.Load() {
			break
		}
		out = append(out, s.ev)
		s.ev = GameEvent{}
		s.ready.Store(false)
	}
	// Publishing head hands the drained slots back to producers
	q.head.Store(seq)
	return out
}

// Len reports how many events are reserved or waiting
func (q *Queue) Len() int {
	return int(q.tail.Load() - q.head.Load())
}
