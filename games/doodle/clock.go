/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package doodle

import "time"

// Clock hands out tickers, so countdowns can be driven by hand in tests.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realClock struct{}

func (realClock) NewTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func RealClock() Clock {
	return realClock{}
}
