package middleware

import (
	"sync"
	"time"
)

// Как часто чистим стампы пользователей, которые перестали писать.
const cleanupInterval = 5 * time.Minute

// RateLimiter ограничивает частоту команд на пользователя скользящим окном.
// Каждая команда (!расход, !доход, !прогресс...) — один стамп; лимит общий,
// чтобы спам записями не превращался в спам поздравлениями.
type RateLimiter struct {
	mu     sync.Mutex
	stamps map[int64][]time.Time
	limit  int
	window time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		stamps: make(map[int64][]time.Time),
		limit:  limit,
		window: window,
		stopCh: make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Close останавливает фоновую горутину очистки.
// Его надо вызывать на shutdown (иначе cleanup будет жить вечно).
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Allow регистрирует команду пользователя.
// false — лимит исчерпан, команда не обрабатывается.
func (rl *RateLimiter) Allow(userID int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	recent := rl.withinWindow(userID, now)
	if len(recent) >= rl.limit {
		rl.stamps[userID] = recent
		return false
	}

	rl.stamps[userID] = append(recent, now)
	return true
}

// RetryAfter — через сколько у пользователя освободится слот.
// Ноль, если слот уже есть. Нужен для ответа «подождите N секунд».
func (rl *RateLimiter) RetryAfter(userID int64) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	recent := rl.withinWindow(userID, now)
	if len(recent) < rl.limit {
		return 0
	}
	// Слот освободится, когда самый старый стамп выйдет из окна
	return recent[0].Add(rl.window).Sub(now)
}

// withinWindow возвращает стампы пользователя не старше окна. Держать mu.
func (rl *RateLimiter) withinWindow(userID int64, now time.Time) []time.Time {
	cutoff := now.Add(-rl.window)
	var recent []time.Time
	for _, t := range rl.stamps[userID] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	return recent
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for userID := range rl.stamps {
				recent := rl.withinWindow(userID, now)
				if len(recent) == 0 {
					delete(rl.stamps, userID)
				} else {
					rl.stamps[userID] = recent
				}
			}
			rl.mu.Unlock()
		}
	}
}
