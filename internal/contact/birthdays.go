package contact

import "time"

// DefaultWindowDays is the look-ahead used by the birthdays command.
const DefaultWindowDays = 7

// CongratulationLayout formats the date a contact should be congratulated on.
const CongratulationLayout = "2006.01.02"

// Upcoming is a contact whose birthday falls inside the look-ahead window.
type Upcoming struct {
	Name               string
	CongratulationDate string
}

// UpcomingBirthdays returns every contact whose birthday, moved into today's
// year, falls within [today, today+windowDays]. Birthdays that already passed
// this year are not rolled into next year. A Feb 29 birthday lands on Mar 1
// in non-leap years. Results follow book order.
func (b *Book) UpcomingBirthdays(today time.Time, windowDays int) []Upcoming {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, windowDays)

	var out []Upcoming
	for _, r := range b.records {
		bd, ok := r.Birthday()
		if !ok {
			continue
		}
		occurrence := time.Date(start.Year(), bd.Month(), bd.Day(), 0, 0, 0, 0, time.UTC)
		if occurrence.Before(start) || occurrence.After(end) {
			continue
		}
		out = append(out, Upcoming{
			Name:               r.name,
			CongratulationDate: occurrence.Format(CongratulationLayout),
		})
	}
	return out
}
