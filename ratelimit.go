package main

import (
	"context"
	"sync"
	"time"
)

// ipRateLimiter tracks last connection time per IP to prevent reconnect spam.
// A zero cooldown allows everything.
type ipRateLimiter struct {
	mu       sync.Mutex
	cooldown time.Duration
	times    map[string]time.Time
	now      func() time.Time
}

func newIPRateLimiter(cooldown time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		cooldown: cooldown,
		times:    make(map[string]time.Time),
		now:      time.Now,
	}
}

// allow returns true if this IP can connect, and records the attempt
func (rl *ipRateLimiter) allow(ip string) bool {
	if rl.cooldown <= 0 {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	if last, ok := rl.times[ip]; ok && now.Sub(last) < rl.cooldown {
		return false
	}
	rl.times[ip] = now
	return true
}

// prune forgets IPs whose cooldown has expired
func (rl *ipRateLimiter) prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-rl.cooldown)
	for ip, t := range rl.times {
		if t.Before(cutoff) {
			delete(rl.times, ip)
		}
	}
}

// Run prunes stale entries every minute until ctx is cancelled
func (rl *ipRateLimiter) Run(ctx context.Context) {
	if rl.cooldown <= 0 {
		return
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.prune()
		}
	}
}
