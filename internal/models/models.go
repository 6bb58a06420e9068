package models

import "hms-service/internal/timetable"

type Role string

const (
	ROLE_DOCTOR     Role = "DOCTOR"
	ROLE_NURSE      Role = "NURSE"
	ROLE_TECHNICIAN Role = "TECHNICIAN"
)

// Label is the display form of a role.
func (r Role) Label() string {
	switch r {
	case ROLE_DOCTOR:
		return "Doctor"
	case ROLE_NURSE:
		return "Nurse"
	case ROLE_TECHNICIAN:
		return "Technician"
	default:
		return string(r)
	}
}

// Staff carries a role tag instead of role subtypes; regrouping staff into
// role-specific listings never needs a runtime type check. ID is assigned by
// the directory on insert and never changes; names and listing positions are
// not unique.
type Staff struct {
	ID         int
	Name       string
	Department string
	Role       Role
	Timetable  *timetable.Timetable
}

func NewStaff(role Role, name, department string) *Staff {
	return &Staff{
		Name:       name,
		Department: department,
		Role:       role,
		Timetable:  timetable.New(),
	}
}

// Room is one room-type entry. Entries are positional: configuring the same
// type name twice yields two independent entries.
type Room struct {
	Type          string
	TotalRooms    int
	OccupiedRooms int
}

func (r *Room) Available() int {
	return r.TotalRooms - r.OccupiedRooms
}

// Service groups sub-departments under a named category.
type Service struct {
	Category       string
	SubDepartments []string
}

// Patient holds a record and its lifecycle state. RoomType and
// HospitalizationDate are meaningful only while Hospitalized is true.
// History is append-only and never reordered.
type Patient struct {
	ID                  string
	Name                string
	Age                 int
	ReasonForVisit      string
	Department          string
	Hospitalized        bool
	RoomType            string
	HospitalizationDate string
	DischargeDate       string
	History             []string
}

func (p *Patient) AddHistory(event string) {
	p.History = append(p.History, event)
}
