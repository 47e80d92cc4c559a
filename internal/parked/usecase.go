package parked

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-sale-terminal/internal/model"
)

// Mode is the authoritative-store state machine. It moves from Unknown to
// exactly one of Remote or Local at probe time, and from Remote to Local at
// most once more when a remote write fails. Never back.
type Mode string

const (
	ModeUnknown Mode = "unknown"
	ModeRemote  Mode = "remote"
	ModeLocal   Mode = "local"
)

var (
	ErrEmptyCart    = errors.New("cannot park an empty cart")
	ErrSlotNotFound = errors.New("parked cart not found")
)

type UseCase interface {
	// Probe decides the authoritative store. Called once at session start.
	Probe(ctx context.Context)

	// Park freezes the active cart under a note and clears the ledger.
	Park(ctx context.Context, note string) (*model.ParkedCart, error)
	// Resume restores a slot into the active cart and deletes it. Returns
	// the slot's note for the compose field.
	Resume(ctx context.Context, id string) (string, error)
	Discard(ctx context.Context, id string) error

	List() []model.ParkedCart
	Mode() Mode
}
