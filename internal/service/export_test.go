package service

import "time"

func (a *Auth) SetClock(now func() time.Time) {
	a.now = now
}

func (s *CartStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = now
}
