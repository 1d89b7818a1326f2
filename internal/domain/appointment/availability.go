package appointment

import "time"

const slotLayout = "15:04"

// DefaultSlots is the shop's daily template. The 12:00-14:00 gap is lunch.
var DefaultSlots = []string{
	"09:00", "10:00", "11:00", "12:00",
	"14:00", "15:00", "16:00", "17:00", "18:00",
}

type AvailabilityInput struct {
	BarberID uint
	Date     time.Time
}

// AvailableSlots filters template for one calendar day. When day is today,
// only slots whose hour is strictly after now's hour survive. Any slot equal
// to the wall-clock time of a booked appointment is removed. Template order
// is preserved.
func AvailableSlots(template []string, day, now time.Time, booked []time.Time) []string {
	loc := day.Location()
	now = now.In(loc)

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b.In(loc).Format(slotLayout)] = struct{}{}
	}

	today := SameDay(day, now)

	out := make([]string, 0, len(template))
	for _, slot := range template {
		t, err := time.Parse(slotLayout, slot)
		if err != nil {
			continue
		}

		if today && t.Hour() <= now.Hour() {
			continue
		}

		if _, ok := taken[slot]; ok {
			continue
		}

		out = append(out, slot)
	}

	return out
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayBounds returns [00:00, next 00:00) of date's calendar day in loc.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
