package timetable

import (
	"fmt"

	"hms-service/pkg/response"
)

// HoursInDay is the fixed length of every timetable.
const HoursInDay = 24

const (
	StatusFree        = "Free"
	StatusWork        = "Work"
	StatusAppointment = "Appointment"
)

// Timetable is a per-staff daily calendar of 24 hourly slots. Each slot
// holds a free-text status; Free, Work and Appointment are the well-known
// values, but operators may write any non-empty label. Booking only cares
// about Work.
type Timetable struct {
	slots [HoursInDay]string
}

func New() *Timetable {
	t := &Timetable{}
	for i := range t.slots {
		t.slots[i] = StatusFree
	}

	return t
}

// SetRange sets every slot in [startHour, endHour] to status. Hours outside
// [0,23] are skipped silently, and startHour > endHour mutates nothing.
// Clamping instead of erroring is the documented policy for range edits.
func (t *Timetable) SetRange(startHour, endHour int, status string) {
	if status == "" {
		status = StatusFree
	}

	for h := startHour; h <= endHour; h++ {
		if h >= 0 && h < HoursInDay {
			t.slots[h] = status
		}
	}
}

// Book sets slot hour to newStatus only if the slot currently reads Work.
// On failure the slot is left untouched.
func (t *Timetable) Book(hour int, newStatus string) error {
	const op = "timetable.Book"

	if hour < 0 || hour >= HoursInDay {
		return fmt.Errorf("%s: hour %d: %w", op, hour, response.ErrSlotNotAvailable)
	}

	if t.slots[hour] != StatusWork {
		return fmt.Errorf("%s: hour %d is %q: %w", op, hour, t.slots[hour], response.ErrSlotNotAvailable)
	}

	t.slots[hour] = newStatus

	return nil
}

// Clone returns an independent copy of the timetable.
func (t *Timetable) Clone() *Timetable {
	c := *t

	return &c
}

// At returns the status of slot hour; hours outside [0,23] read as Free.
func (t *Timetable) At(hour int) string {
	if hour < 0 || hour >= HoursInDay {
		return StatusFree
	}

	return t.slots[hour]
}

// Hours returns all 24 slot statuses in hour order.
func (t *Timetable) Hours() []string {
	out := make([]string, HoursInDay)
	copy(out, t.slots[:])

	return out
}

// Summary renders the compact one-row view: "#" for a Free slot, "X" for
// anything else, one mark per hour.
func (t *Timetable) Summary() string {
	marks := make([]byte, HoursInDay)
	for i, status := range t.slots {
		if status == StatusFree {
			marks[i] = '#'
		} else {
			marks[i] = 'X'
		}
	}

	return string(marks)
}
