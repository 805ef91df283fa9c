package animation

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Scheduler runs fn once after delay on some goroutine.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// TimerScheduler schedules with time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}
