package discord

import (
	"sync"
	"time"
)

// userLimiter: una acción por usuario por ventana. Suficiente para frenar
// spam de /afk set sin molestar el uso normal.
type userLimiter struct {
	mu   sync.Mutex
	next map[string]time.Time
	win  time.Duration
}

func newUserLimiter(window time.Duration) *userLimiter {
	return &userLimiter{next: map[string]time.Time{}, win: window}
}

// Allow devuelve cuánto falta para el próximo intento cuando el usuario
// todavía está dentro de la ventana.
func (l *userLimiter) Allow(userID string) (time.Duration, bool) {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if until, ok := l.next[userID]; ok && now.Before(until) {
		return until.Sub(now), false
	}
	l.next[userID] = now.Add(l.win)
	return 0, true
}
