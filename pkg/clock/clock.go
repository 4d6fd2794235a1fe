// Package clock provides the time source used for poll intervals and retry
// backoff, so that tests can observe sleeps without actually waiting.
package clock

import "time"

// Clock abstracts the two time operations the retry core performs.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Real is a Clock backed by the system clock.
type Real struct{}

func (Real) Now() time.Time        { return time.Now() }
func (Real) Sleep(d time.Duration) { time.Sleep(d) }
