package transit

import "time"

// DepartureHour is the reference departure hour for estimates.
const DepartureHour = 18

// NextDeparture returns 18:00 on the next day, or on the following Monday
// when now falls on a Friday or a Saturday. The result is in now's location.
func NextDeparture(now time.Time) time.Time {
	days := 1
	switch now.Weekday() {
	case time.Friday:
		days = 3
	case time.Saturday:
		days = 2
	}
	d := now.AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), DepartureHour, 0, 0, 0, now.Location())
}
