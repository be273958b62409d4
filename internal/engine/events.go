package engine

import "container/heap"

// NotificationKind is the kind of player-facing message a step produced
type NotificationKind int

const (
	NoteShortage NotificationKind = iota
	NoteImagined
	NoteDiscovered
	NoteEffect
	NoteRejected
)

// String returns a string representation of the notification kind
func (k NotificationKind) String() string {
	switch k {
	case NoteShortage:
		return "Shortage"
	case NoteImagined:
		return "Imagined"
	case NoteDiscovered:
		return "Discovered"
	case NoteEffect:
		return "Effect"
	case NoteRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// Priority orders notifications raised in the same tick.
// Lower priority = shown first.
func (k NotificationKind) Priority() int {
	switch k {
	case NoteShortage:
		return 0 // the game just paused
	case NoteImagined:
		return 1
	case NoteDiscovered:
		return 2
	case NoteEffect:
		return 3 // follows the discovery that fired it
	case NoteRejected:
		return 10
	default:
		return 99
	}
}

// Notification is an opaque message for the renderer
type Notification struct {
	Tick     int
	Kind     NotificationKind
	CardID   string
	Message  string
	Sequence int64 // insertion order for stable sorting
}

// notificationHeap implements heap.Interface for a min-heap of Notifications
type notificationHeap []Notification

func (h notificationHeap) Len() int { return len(h) }

func (h notificationHeap) Less(i, j int) bool {
	if h[i].Tick != h[j].Tick {
		return h[i].Tick < h[j].Tick
	}
	if h[i].Kind.Priority() != h[j].Kind.Priority() {
		return h[i].Kind.Priority() < h[j].Kind.Priority()
	}
	return h[i].Sequence < h[j].Sequence
}

func (h notificationHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *notificationHeap) Push(x any) {
	*h = append(*h, x.(Notification))
}

func (h *notificationHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// NotificationQueue orders notifications by (Tick, Priority, Sequence).
// It is not safe for concurrent use.
type NotificationQueue struct {
	h   notificationHeap
	seq int64
}

// NewNotificationQueue creates an empty queue
func NewNotificationQueue() *NotificationQueue {
	q := &NotificationQueue{h: make(notificationHeap, 0)}
	heap.Init(&q.h)
	return q
}

// Push adds a notification with automatic sequence assignment
func (q *NotificationQueue) Push(n Notification) {
	q.seq++
	n.Sequence = q.seq
	heap.Push(&q.h, n)
}

// Pop removes and returns the first notification
func (q *NotificationQueue) Pop() (Notification, bool) {
	if len(q.h) == 0 {
		return Notification{}, false
	}
	return heap.Pop(&q.h).(Notification), true
}

// Peek returns the first notification without removing it
func (q *NotificationQueue) Peek() (Notification, bool) {
	if len(q.h) == 0 {
		return Notification{}, false
	}
	return q.h[0], true
}

// Drain pops every notification in order
func (q *NotificationQueue) Drain() []Notification {
	out := make([]Notification, 0, len(q.h))
	for len(q.h) > 0 {
		out = append(out, heap.Pop(&q.h).(Notification))
	}
	return out
}

// Len returns the number of queued notifications
func (q *NotificationQueue) Len() int {
	return len(q.h)
}

// Empty returns true if the queue has no notifications
func (q *NotificationQueue) Empty() bool {
	return len(q.h) == 0
}
