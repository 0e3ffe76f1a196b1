package engine

import (
	"time"

	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
)

// Clock abstracts time.Now() so "today" can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today is the Ethiopic date of the clock's local calendar day. The wall
// date is taken as is: the local day decides, not UTC.
func Today(c Clock) ethiopic.EthiopicDate {
	return ethiopic.GregorianFromTime(c.Now()).Ethiopic()
}
