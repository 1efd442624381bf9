package service

import (
	"sync"
	"time"
)

// Clock accumulates the thinking time of one side. It only runs while that
// side is to move.
type Clock struct {
	mu          sync.Mutex
	elapsed     time.Duration
	lastStarted time.Time // When the clock was last started
	isRunning   bool
	now         func() time.Time
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = c.now()
		c.isRunning = true
	}
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.elapsed += c.now().Sub(c.lastStarted)
		c.isRunning = false
	}
}

func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.elapsed = 0
	c.isRunning = false
}

func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		return c.elapsed + c.now().Sub(c.lastStarted)
	}
	return c.elapsed
}

func (c *Clock) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isRunning
}
