package sync

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/iudanet/gymkeeper/internal/client/storage"
	"github.com/iudanet/gymkeeper/internal/clock"
	"github.com/iudanet/gymkeeper/internal/models"
)

const (
	// DefaultBaseBackoff базовая задержка повтора
	DefaultBaseBackoff = time.Second
	// backoffFactor множитель экспоненты
	backoffFactor = 4
	// maxDelay предел задержки, защищает от переполнения time.Duration
	maxDelay = 24 * time.Hour
)

// Scheduler решает, когда неудачный элемент очереди можно повторить и когда сдаться.
// Время берется из clock.Clock, Scheduler никогда не спит.
type Scheduler struct {
	clock      clock.Clock
	store      storage.OutboxStorage
	base       time.Duration
	maxRetries int
}

// NewScheduler создает планировщик повторов.
// base <= 0 и maxRetries <= 0 заменяются значениями по умолчанию.
func NewScheduler(store storage.OutboxStorage, clk clock.Clock, base time.Duration, maxRetries int) *Scheduler {
	if base <= 0 {
		base = DefaultBaseBackoff
	}
	if maxRetries <= 0 {
		maxRetries = models.DefaultMaxRetries
	}
	if clk == nil {
		clk = clock.System{}
	}

	return &Scheduler{
		clock:      clk,
		store:      store,
		base:       base,
		maxRetries: maxRetries,
	}
}

// Delay возвращает base * 4^retryCount
func (s *Scheduler) Delay(retryCount int) time.Duration {
	if retryCount < 0 {
		retryCount = 0
	}

	d := float64(s.base) * math.Pow(backoffFactor, float64(retryCount))
	if d > float64(maxDelay) {
		return maxDelay
	}
	return time.Duration(d)
}

// MaxRetries возвращает лимит попыток для элемента
func (s *Scheduler) MaxRetries(item *models.OutboxItem) int {
	if item.MaxRetries > 0 {
		return item.MaxRetries
	}
	return s.maxRetries
}

// Fail регистрирует неудачную попытку in_progress элемента.
// Счетчик увеличивается; при исчерпании лимита элемент становится failed,
// иначе возвращается в pending с next_attempt_at = now + Delay(новый счетчик).
// Возвращает true, если элемент помечен failed.
func (s *Scheduler) Fail(ctx context.Context, item *models.OutboxItem, errMsg string) (bool, error) {
	retryCount := item.RetryCount + 1

	if retryCount >= s.MaxRetries(item) {
		if errMsg == "" {
			errMsg = "max retries exceeded"
		}
		if err := s.store.Fail(ctx, item.ID, retryCount, errMsg); err != nil {
			return false, fmt.Errorf("failed to mark item %d failed: %w", item.ID, err)
		}
		return true, nil
	}

	next := s.clock.Now().Add(s.Delay(retryCount))
	if err := s.store.Reschedule(ctx, item.ID, retryCount, next, errMsg); err != nil {
		return false, fmt.Errorf("failed to reschedule item %d: %w", item.ID, err)
	}
	return false, nil
}

// NextAttempt возвращает ближайшее next_attempt_at среди pending элементов.
// ok=false, если ждать нечего (нет pending или все уже доступны).
func (s *Scheduler) NextAttempt(ctx context.Context) (time.Time, bool, error) {
	pending, err := s.store.DequeuePending(ctx, "")
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to list pending items: %w", err)
	}

	now := s.clock.Now()
	var earliest time.Time
	for _, item := range pending {
		if item.NextAttemptAt == nil || !item.NextAttemptAt.After(now) {
			continue
		}
		if earliest.IsZero() || item.NextAttemptAt.Before(earliest) {
			earliest = *item.NextAttemptAt
		}
	}

	return earliest, !earliest.IsZero(), nil
}
