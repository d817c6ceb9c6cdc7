// Package gates answers the market-state questions asked before every scan:
// is the exchange closed, is high-impact news imminent, and is sentiment at
// an extreme.
package gates

import "time"

// Closed reports whether now falls inside the weekly maintenance window,
// Friday 17:00 through Sunday 18:00 exchange-local time. The comparison uses
// the exchange's civil calendar, not UTC.
func Closed(now time.Time, loc *time.Location) bool {
	local := now.In(loc)
	switch local.Weekday() {
	case time.Friday:
		return local.Hour() >= 17
	case time.Saturday:
		return true
	case time.Sunday:
		return local.Hour() < 18
	default:
		return false
	}
}

// InRegularHours reports whether now is inside the 09:30–16:00 Monday–Friday
// cash session. The repeating timer only scans during these hours; manual
// triggers are not gated by it.
func InRegularHours(now time.Time, loc *time.Location) bool {
	local := now.In(loc)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	minutes := local.Hour()*60 + local.Minute()
	return minutes >= 9*60+30 && minutes < 16*60
}
