package notice

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Tone string

const (
	ToneSuccess Tone = "success"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
)

type Notice struct {
	ID        string    `json:"id"`
	Tone      Tone      `json:"tone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Bus collects ephemeral user-facing messages. Fire and forget: callers never
// learn whether anyone read a notice, and expired entries are pruned lazily
// whenever the bus is touched.
type Bus struct {
	mu      sync.Mutex
	ttl     time.Duration
	notices []Notice
	now     func() time.Time
}

func NewBus(ttl time.Duration) *Bus {
	return &Bus{ttl: ttl, now: time.Now}
}

func (b *Bus) Notify(tone Tone, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	b.prune(now)
	b.notices = append(b.notices, Notice{
		ID:        uuid.New().String(),
		Tone:      tone,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(b.ttl),
	})
}

// Active returns the not-yet-expired notices, oldest first.
func (b *Bus) Active() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prune(b.now())
	out := make([]Notice, len(b.notices))
	copy(out, b.notices)
	return out
}

func (b *Bus) prune(now time.Time) {
	kept := b.notices[:0]
	for _, n := range b.notices {
		if n.ExpiresAt.After(now) {
			kept = append(kept, n)
		}
	}
	b.notices = kept
}
