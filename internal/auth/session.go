package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"borsa-dashboard-go/internal/models"
)

// Session is a client's view of who is signed in. It caches the account
// behind a token and notifies subscribers whenever Refresh changes it, so
// views pick up a tier change without signing in again.
type Session struct {
	svc   *Service
	token string

	mu      sync.RWMutex
	account *models.Account
	nextID  int
	subs    map[int]func(*models.Account)
}

// NewSession creates a session for token. An empty token is signed out.
func NewSession(svc *Service, token string) *Session {
	return &Session{svc: svc, token: token, subs: make(map[int]func(*models.Account))}
}

// Current returns the cached account or nil when signed out.
func (s *Session) Current() *models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

// Tier is the cached account tier; free when signed out.
func (s *Session) Tier() models.Tier {
	acc := s.Current()
	if acc == nil {
		return models.TierFree
	}
	return acc.Tier
}

// Refresh reloads the account. If the token is no longer valid the session
// becomes signed out.
func (s *Session) Refresh(ctx context.Context) error {
	var acc *models.Account
	if s.token != "" {
		var err error
		acc, err = s.svc.Authenticate(ctx, s.token)
		if err != nil && !errors.Is(err, ErrUnauthenticated) {
			return err
		}
	}

	s.mu.Lock()
	changed := !sameAccount(s.account, acc)
	s.account = acc
	subs := make([]func(*models.Account), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if changed {
		for _, fn := range subs {
			fn(acc)
		}
	}
	return nil
}

// Subscribe registers fn for account changes and returns a function that
// removes it.
func (s *Session) Subscribe(fn func(*models.Account)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func sameAccount(a, b *models.Account) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID &&
		a.Tier == b.Tier &&
		a.IsAdmin == b.IsAdmin &&
		a.Lifetime == b.Lifetime &&
		equalTime(a.PlanExpiresAt, b.PlanExpiresAt)
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
