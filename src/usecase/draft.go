package usecase

import (
	"context"
	"sync"
	"time"

	"diary-app/src/domain"

	"github.com/sirupsen/logrus"
)

// DraftAutosaver debounces draft writes while a new entry is being
// composed. 入力のたびに Queue が呼ばれ、一定時間入力が止まったときに
// だけ永続化する（デバウンス。スロットリングではない）。
type DraftAutosaver struct {
	draftRepo domain.DraftRepository
	logger    *logrus.Logger
	delay     time.Duration

	mu      sync.Mutex
	pending *domain.Draft
	timer   *time.Timer
}

// NewDraftAutosaver creates a new draft autosaver
func NewDraftAutosaver(draftRepo domain.DraftRepository, logger *logrus.Logger, delay time.Duration) *DraftAutosaver {
	return &DraftAutosaver{
		draftRepo: draftRepo,
		logger:    logger,
		delay:     delay,
	}
}

// Queue replaces the pending draft and re-arms the debounce timer.
// 直前の編集でセットされたタイマーはキャンセルされる。
func (a *DraftAutosaver) Queue(draft domain.Draft) {
	a.mu.Lock()
	defer a.mu.Unlock()

	draft.SavedAt = time.Now()
	if draft.Tags == nil {
		draft.Tags = []string{}
	}
	a.pending = &draft

	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, func() {
		if err := a.Flush(context.Background()); err != nil {
			a.logger.WithError(err).Error("下書きの自動保存に失敗")
		}
	})
}

// Flush persists the pending draft immediately. Used by the debounce
// timer, the page-unload path and process shutdown; a no-op when nothing
// is pending.
func (a *DraftAutosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	pending := a.pending
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	if pending == nil {
		return nil
	}

	if err := a.draftRepo.Save(ctx, pending); err != nil {
		return err
	}
	a.logger.Debug("下書きを自動保存しました")
	return nil
}

// Discard drops the pending draft and clears the stored slot.
// 日記の保存成功時と明示的な破棄の両方から呼ばれる。
func (a *DraftAutosaver) Discard(ctx context.Context) {
	a.mu.Lock()
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	if err := a.draftRepo.Clear(ctx); err != nil {
		a.logger.WithError(err).Error("下書きの破棄に失敗")
	}
}

// Load returns the stored draft, or nil when none exists.
func (a *DraftAutosaver) Load(ctx context.Context) (*domain.Draft, error) {
	return a.draftRepo.Load(ctx)
}
