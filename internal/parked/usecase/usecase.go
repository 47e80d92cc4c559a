package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/omnipos-sale-terminal/internal/cart"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/fekuna/omnipos-sale-terminal/internal/notice"
	"github.com/fekuna/omnipos-sale-terminal/internal/parked"
	"github.com/fekuna/omnipos-sale-terminal/internal/payment"
	"github.com/fekuna/omnipos-sale-terminal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type parkedUseCase struct {
	remote     parked.RemoteStore
	local      parked.LocalStore
	ledger     cart.UseCase
	selector   payment.UseCase
	notices    *notice.Bus
	merchantID string
	logger     logger.ZapLogger

	mu      sync.Mutex
	mode    parked.Mode
	slots   []model.ParkedCart
	parkSeq int
}

func NewParkedUseCase(remote parked.RemoteStore, local parked.LocalStore, ledger cart.UseCase, selector payment.UseCase, notices *notice.Bus, merchantID string, log logger.ZapLogger) parked.UseCase {
	return &parkedUseCase{
		remote:     remote,
		local:      local,
		ledger:     ledger,
		selector:   selector,
		notices:    notices,
		merchantID: merchantID,
		mode:       parked.ModeUnknown,
		logger:     log,
	}
}

func (uc *parkedUseCase) Probe(ctx context.Context) {
	slots, err := uc.remote.List(ctx, uc.merchantID)
	if ctx.Err() != nil {
		// Session ended mid-probe; discard whatever came back.
		return
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.mode != parked.ModeUnknown {
		return
	}

	if err == nil {
		// An empty remote list still makes the remote store authoritative.
		uc.mode = parked.ModeRemote
		uc.slots = slots
		uc.logger.Info("parked-cart store: remote", zap.Int("slots", len(slots)))
		return
	}

	uc.mode = parked.ModeLocal
	uc.logger.Warn("parked-cart store unavailable, using local fallback", zap.Error(err))
	local, loadErr := uc.local.Load(ctx, uc.merchantID)
	if loadErr != nil {
		uc.logger.Warn("failed to load local parked carts", zap.Error(loadErr))
		return
	}
	uc.slots = local
}

func (uc *parkedUseCase) Park(ctx context.Context, note string) (*model.ParkedCart, error) {
	items := uc.ledger.Lines()
	if len(items) == 0 {
		uc.notices.Notify(notice.ToneWarning, "cannot park an empty cart")
		return nil, parked.ErrEmptyCart
	}

	uc.mu.Lock()
	uc.parkSeq++
	if note == "" {
		note = fmt.Sprintf("Parked sale #%d", uc.parkSeq)
	}
	slot := model.ParkedCart{
		ID:        uuid.New().String(),
		Note:      note,
		CreatedAt: time.Now(),
		Items:     items,
	}

	if uc.mode == parked.ModeRemote {
		created, err := uc.remote.Create(ctx, uc.merchantID, slot)
		if err != nil {
			uc.degradeLocked(ctx, err)
		} else if created != nil && created.ID != "" {
			slot = *created
		}
	}

	uc.slots = append([]model.ParkedCart{slot}, uc.slots...)
	if uc.mode == parked.ModeLocal {
		uc.persistLocalLocked(ctx)
	}
	uc.mu.Unlock()

	uc.ledger.Clear(ctx)
	uc.selector.ResetCash()
	return &slot, nil
}

func (uc *parkedUseCase) Resume(ctx context.Context, id string) (string, error) {
	uc.mu.Lock()
	idx := uc.indexOfLocked(id)
	if idx < 0 {
		uc.mu.Unlock()
		uc.notices.Notify(notice.ToneWarning, "parked cart not found")
		return "", parked.ErrSlotNotFound
	}
	slot := uc.slots[idx]
	uc.removeSlotLocked(ctx, idx)
	uc.mu.Unlock()

	uc.ledger.Replace(ctx, slot.Items)
	return slot.Note, nil
}

func (uc *parkedUseCase) Discard(ctx context.Context, id string) error {
	uc.mu.Lock()
	idx := uc.indexOfLocked(id)
	if idx < 0 {
		uc.mu.Unlock()
		uc.notices.Notify(notice.ToneWarning, "parked cart not found")
		return parked.ErrSlotNotFound
	}
	slot := uc.slots[idx]
	uc.removeSlotLocked(ctx, idx)
	uc.mu.Unlock()

	uc.notices.Notify(notice.ToneInfo, fmt.Sprintf("discarded parked cart %q", slot.Note))
	return nil
}

// removeSlotLocked drops a slot from the in-memory list and the
// authoritative store. A remote delete failure degrades the session to the
// local store without surfacing an error: the slot is gone from the visible
// list either way.
func (uc *parkedUseCase) removeSlotLocked(ctx context.Context, idx int) {
	slot := uc.slots[idx]
	uc.slots = append(uc.slots[:idx], uc.slots[idx+1:]...)

	if uc.mode == parked.ModeRemote {
		if err := uc.remote.Delete(ctx, uc.merchantID, slot.ID); err != nil {
			uc.degradeLocked(ctx, err)
		}
		return
	}
	uc.persistLocalLocked(ctx)
}

// degradeLocked is the one-way Remote -> Local transition. The surviving
// slots are written through so the local store actually holds them.
func (uc *parkedUseCase) degradeLocked(ctx context.Context, cause error) {
	if uc.mode != parked.ModeRemote {
		return
	}
	uc.mode = parked.ModeLocal
	uc.logger.Warn("remote parked-cart write failed, degrading to local store", zap.Error(cause))
	uc.persistLocalLocked(ctx)
}

func (uc *parkedUseCase) persistLocalLocked(ctx context.Context) {
	if err := uc.local.Save(ctx, uc.merchantID, uc.slots); err != nil {
		uc.logger.Warn("failed to persist local parked carts", zap.Error(err))
	}
}

func (uc *parkedUseCase) indexOfLocked(id string) int {
	for i := range uc.slots {
		if uc.slots[i].ID == id {
			return i
		}
	}
	return -1
}

func (uc *parkedUseCase) List() []model.ParkedCart {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]model.ParkedCart, len(uc.slots))
	copy(out, uc.slots)
	return out
}

func (uc *parkedUseCase) Mode() parked.Mode {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.mode
}
