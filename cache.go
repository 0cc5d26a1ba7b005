package ntt

import "sync"

// SessionCache builds each length's Session once and hands out the same one afterwards.
type SessionCache struct {
	sync.Locker
	opts     []Option
	sessions map[int]*Session
}

// NewSessionCache applies opts to every session it builds. WithModulus only makes sense
// when all requested lengths divide p-1.
func NewSessionCache(opts ...Option) *SessionCache {
	return &SessionCache{
		Locker:   &sync.Mutex{},
		opts:     opts,
		sessions: make(map[int]*Session),
	}
}

func (c *SessionCache) Load(n int) (*Session, error) {
	c.Lock()
	defer c.Unlock()

	if s, ok := c.sessions[n]; ok {
		return s, nil
	}

	s, err := NewSession(n, c.opts...)
	if err != nil {
		return nil, err
	}

	c.sessions[n] = s

	return s, nil
}

func (c *SessionCache) Len() int {
	c.Lock()
	defer c.Unlock()

	return len(c.sessions)
}
