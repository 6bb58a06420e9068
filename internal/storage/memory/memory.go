package memory

import (
	"context"
	"fmt"
	"sync"

	"hms-service/api"
	"hms-service/internal/models"
	"hms-service/internal/timetable"
	"hms-service/pkg/response"
)

// Storage holds every registry for the lifetime of the process: the
// department catalog, service groupings, staff directory, room inventory and
// patient registry. Nothing is persisted and nothing is ever deleted.
//
// A single mutex guards each method's full read-modify-write span. Methods
// never hand out live records: reads return deep copies, and every staff or
// patient mutation is a store method that runs under the mutex, so concurrent
// requests can never observe a record mid-write.
type Storage struct {
	mu sync.RWMutex

	departments []string
	services    []models.Service

	staffSeq    int
	doctors     []*models.Staff
	nurses      []*models.Staff
	technicians []*models.Staff

	rooms    []*models.Room
	patients []*models.Patient
}

func New() *Storage {
	return &Storage{}
}

func (s *Storage) Close() error {
	return nil
}

// #### departments ####

// AddDepartment appends unconditionally: no dedup, no normalization. The
// catalog only grows for the life of the session. Returns the 1-based index
// of the new entry.
func (s *Storage) AddDepartment(ctx context.Context, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.departments = append(s.departments, name)

	return len(s.departments), nil
}

func (s *Storage) ListDepartments(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.departments))
	copy(out, s.departments)

	return out, nil
}

// GetDepartment resolves a 1-based index as shown to operators.
func (s *Storage) GetDepartment(ctx context.Context, index int) (string, error) {
	const op = "storage.memory.GetDepartment"

	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 1 || index > len(s.departments) {
		return "", fmt.Errorf("%s: index %d: %w", op, index, response.ErrOutOfRange)
	}

	return s.departments[index-1], nil
}

// #### services ####

// AddService records a category grouping and appends every sub-department to
// the flat catalog.
func (s *Storage) AddService(ctx context.Context, category string, subDepartments []string) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc := models.Service{
		Category:       category,
		SubDepartments: append([]string(nil), subDepartments...),
	}

	s.services = append(s.services, svc)
	s.departments = append(s.departments, subDepartments...)

	return &svc, nil
}

func (s *Storage) ListServices(ctx context.Context) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Service, len(s.services))
	copy(out, s.services)

	return out, nil
}

// #### staff ####

// AddStaff registers a staff member with an all-Free timetable, assigns the
// directory's next id and returns a snapshot plus the 1-based position in the
// combined listing.
func (s *Storage) AddStaff(ctx context.Context, role models.Role, name, department string) (models.Staff, int, error) {
	const op = "storage.memory.AddStaff"

	s.mu.Lock()
	defer s.mu.Unlock()

	staff := models.NewStaff(role, name, department)

	var index int
	switch role {
	case models.ROLE_DOCTOR:
		s.doctors = append(s.doctors, staff)
		index = len(s.doctors)
	case models.ROLE_NURSE:
		s.nurses = append(s.nurses, staff)
		index = len(s.doctors) + len(s.nurses)
	case models.ROLE_TECHNICIAN:
		s.technicians = append(s.technicians, staff)
		index = len(s.doctors) + len(s.nurses) + len(s.technicians)
	default:
		return models.Staff{}, 0, fmt.Errorf("%s: role %q: %w", op, role, response.ErrBadRequest)
	}

	s.staffSeq++
	staff.ID = s.staffSeq

	return copyStaff(staff), index, nil
}

// ListStaff merges all role groups into one addressable sequence: doctors,
// then nurses, then technicians, insertion order within each group. Every
// staff index the API accepts points into this order.
func (s *Storage) ListStaff(ctx context.Context) ([]models.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.combined()
	out := make([]models.Staff, 0, len(all))
	for _, staff := range all {
		out = append(out, copyStaff(staff))
	}

	return out, nil
}

func (s *Storage) combined() []*models.Staff {
	all := make([]*models.Staff, 0, len(s.doctors)+len(s.nurses)+len(s.technicians))
	all = append(all, s.doctors...)
	all = append(all, s.nurses...)
	all = append(all, s.technicians...)

	return all
}

// GetStaff resolves a 1-based index into the combined listing.
func (s *Storage) GetStaff(ctx context.Context, index int) (models.Staff, error) {
	const op = "storage.memory.GetStaff"

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.combined()
	if index < 1 || index > len(all) {
		return models.Staff{}, fmt.Errorf("%s: index %d: %w", op, index, response.ErrOutOfRange)
	}

	return copyStaff(all[index-1]), nil
}

// FindStaffByDepartment returns staff of any role whose department equals
// department, in combined-listing order.
func (s *Storage) FindStaffByDepartment(ctx context.Context, department string) ([]models.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Staff
	for _, staff := range s.combined() {
		if staff.Department == department {
			matched = append(matched, copyStaff(staff))
		}
	}

	return matched, nil
}

// SetStaffSchedule applies range edits to the staff member at a 1-based
// combined-listing index, all under one lock hold. Hours outside [0,23] clamp
// silently and start > end edits mutate nothing.
func (s *Storage) SetStaffSchedule(ctx context.Context, index int, edits []api.ScheduleEdit) (models.Staff, error) {
	const op = "storage.memory.SetStaffSchedule"

	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.combined()
	if index < 1 || index > len(all) {
		return models.Staff{}, fmt.Errorf("%s: index %d: %w", op, index, response.ErrOutOfRange)
	}

	staff := all[index-1]
	for _, edit := range edits {
		staff.Timetable.SetRange(edit.StartHour, edit.EndHour, edit.Status)
	}

	return copyStaff(staff), nil
}

// BookStaffSlot flips the hour slot of the staff member with the given id
// from Work to Appointment. The state check and the write are one atomic
// span; a losing concurrent booking gets ErrSlotNotAvailable, never a double
// write.
func (s *Storage) BookStaffSlot(ctx context.Context, staffID, hour int) (models.Staff, error) {
	const op = "storage.memory.BookStaffSlot"

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, staff := range s.combined() {
		if staff.ID != staffID {
			continue
		}

		if err := staff.Timetable.Book(hour, timetable.StatusAppointment); err != nil {
			return models.Staff{}, fmt.Errorf("%s: %w", op, err)
		}

		return copyStaff(staff), nil
	}

	return models.Staff{}, fmt.Errorf("%s: staff %d: %w", op, staffID, response.ErrNotFound)
}

func copyStaff(staff *models.Staff) models.Staff {
	c := *staff
	c.Timetable = staff.Timetable.Clone()

	return c
}

// #### rooms ####

// ConfigureRoom appends a new room-type entry. Entries with the same type
// name are deliberately not merged; each configure call adds its own entry.
func (s *Storage) ConfigureRoom(ctx context.Context, roomType string, total, occupied int) (models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := &models.Room{
		Type:          roomType,
		TotalRooms:    total,
		OccupiedRooms: occupied,
	}

	s.rooms = append(s.rooms, room)

	return *room, nil
}

func (s *Storage) ListRooms(ctx context.Context) ([]models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Room, len(s.rooms))
	for i, room := range s.rooms {
		out[i] = *room
	}

	return out, nil
}

func (s *Storage) GetRoom(ctx context.Context, index int) (models.Room, error) {
	const op = "storage.memory.GetRoom"

	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 1 || index > len(s.rooms) {
		return models.Room{}, fmt.Errorf("%s: index %d: %w", op, index, response.ErrOutOfRange)
	}

	return *s.rooms[index-1], nil
}

// AllocateRoom increments the occupied count of the entry at a 1-based index
// if a room is available. The availability check and the increment are one
// atomic span; a failed allocation mutates nothing.
func (s *Storage) AllocateRoom(ctx context.Context, index int) (models.Room, error) {
	const op = "storage.memory.AllocateRoom"

	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.allocateRoomLocked(index)
	if err != nil {
		return models.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	return *room, nil
}

func (s *Storage) allocateRoomLocked(index int) (*models.Room, error) {
	if index < 1 || index > len(s.rooms) {
		return nil, fmt.Errorf("index %d: %w", index, response.ErrOutOfRange)
	}

	room := s.rooms[index-1]
	if room.Available() <= 0 {
		return nil, fmt.Errorf("%q: %w", room.Type, response.ErrRoomNotAvailable)
	}

	room.OccupiedRooms++

	return room, nil
}

// ReleaseRoom decrements the occupied count, floored at zero.
func (s *Storage) ReleaseRoom(ctx context.Context, index int) (models.Room, error) {
	const op = "storage.memory.ReleaseRoom"

	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 1 || index > len(s.rooms) {
		return models.Room{}, fmt.Errorf("%s: index %d: %w", op, index, response.ErrOutOfRange)
	}

	room := s.rooms[index-1]
	if room.OccupiedRooms > 0 {
		room.OccupiedRooms--
	}

	return *room, nil
}

// UpdateRoom is an operator-driven correction of both counters. Occupied is
// not checked against total here; the original accepted any numbers and the
// looseness is kept on purpose.
func (s *Storage) UpdateRoom(ctx context.Context, index, total, occupied int) (models.Room, error) {
	const op = "storage.memory.UpdateRoom"

	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 1 || index > len(s.rooms) {
		return models.Room{}, fmt.Errorf("%s: index %d: %w", op, index, response.ErrOutOfRange)
	}

	room := s.rooms[index-1]
	room.TotalRooms = total
	room.OccupiedRooms = occupied

	return *room, nil
}

// #### patients ####

// CreatePatient appends unconditionally. ID uniqueness is assumed by lookups
// but not enforced here, matching the source behavior.
func (s *Storage) CreatePatient(ctx context.Context, patient models.Patient) (models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := patient
	stored.History = append([]string(nil), patient.History...)
	s.patients = append(s.patients, &stored)

	return copyPatient(&stored), nil
}

func (s *Storage) ListPatients(ctx context.Context) ([]models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Patient, 0, len(s.patients))
	for _, patient := range s.patients {
		out = append(out, copyPatient(patient))
	}

	return out, nil
}

// GetPatientByID returns the first patient with a matching id.
func (s *Storage) GetPatientByID(ctx context.Context, id string) (models.Patient, error) {
	const op = "storage.memory.GetPatientByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	patient := s.findByIDLocked(id)
	if patient == nil {
		return models.Patient{}, fmt.Errorf("%s: id %q: %w", op, id, response.ErrPatientNotFound)
	}

	return copyPatient(patient), nil
}

// FindPatientByName returns the first patient with a matching name; discharge
// selects patients this way.
func (s *Storage) FindPatientByName(ctx context.Context, name string) (models.Patient, error) {
	const op = "storage.memory.FindPatientByName"

	s.mu.RLock()
	defer s.mu.RUnlock()

	patient := s.findByNameLocked(name)
	if patient == nil {
		return models.Patient{}, fmt.Errorf("%s: name %q: %w", op, name, response.ErrPatientNotFound)
	}

	return copyPatient(patient), nil
}

// SetPatientDepartment overwrites the department of the first patient with a
// matching id. No history entry is written.
func (s *Storage) SetPatientDepartment(ctx context.Context, id, department string) (models.Patient, error) {
	const op = "storage.memory.SetPatientDepartment"

	s.mu.Lock()
	defer s.mu.Unlock()

	patient := s.findByIDLocked(id)
	if patient == nil {
		return models.Patient{}, fmt.Errorf("%s: id %q: %w", op, id, response.ErrPatientNotFound)
	}

	patient.Department = department

	return copyPatient(patient), nil
}

// AppendPatientHistory appends one entry to the history of the first patient
// with a matching id. History is append-only; nothing else is touched.
func (s *Storage) AppendPatientHistory(ctx context.Context, id, entry string) (models.Patient, error) {
	const op = "storage.memory.AppendPatientHistory"

	s.mu.Lock()
	defer s.mu.Unlock()

	patient := s.findByIDLocked(id)
	if patient == nil {
		return models.Patient{}, fmt.Errorf("%s: id %q: %w", op, id, response.ErrPatientNotFound)
	}

	patient.AddHistory(entry)

	return copyPatient(patient), nil
}

// AdmitPatient runs the whole admission span atomically: the hospitalized
// check, the room availability check, the occupancy increment, the patient
// field writes and the history entry all happen under one lock hold, so a
// failed admission mutates nothing.
func (s *Storage) AdmitPatient(ctx context.Context, id string, roomIndex int, date string) (models.Patient, models.Room, error) {
	const op = "storage.memory.AdmitPatient"

	s.mu.Lock()
	defer s.mu.Unlock()

	patient := s.findByIDLocked(id)
	if patient == nil {
		return models.Patient{}, models.Room{}, fmt.Errorf("%s: id %q: %w", op, id, response.ErrPatientNotFound)
	}

	if patient.Hospitalized {
		return models.Patient{}, models.Room{}, fmt.Errorf("%s: id %q: %w", op, id, response.ErrAlreadyHospitalized)
	}

	room, err := s.allocateRoomLocked(roomIndex)
	if err != nil {
		return models.Patient{}, models.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	patient.Hospitalized = true
	patient.RoomType = room.Type
	patient.HospitalizationDate = date
	patient.AddHistory(fmt.Sprintf("Hospitalized in %s on %s", room.Type, date))

	return copyPatient(patient), *room, nil
}

// RecordDischarge stamps the discharge date, clears the hospitalized flag and
// appends the history entry for the first patient with a matching name. Room
// occupancy is left untouched, and a never-hospitalized patient may be
// discharged; both match the source behavior.
func (s *Storage) RecordDischarge(ctx context.Context, name, date string) (models.Patient, error) {
	const op = "storage.memory.RecordDischarge"

	s.mu.Lock()
	defer s.mu.Unlock()

	patient := s.findByNameLocked(name)
	if patient == nil {
		return models.Patient{}, fmt.Errorf("%s: name %q: %w", op, name, response.ErrPatientNotFound)
	}

	patient.DischargeDate = date
	patient.Hospitalized = false
	patient.AddHistory(fmt.Sprintf("Discharged on %s", date))

	return copyPatient(patient), nil
}

func (s *Storage) findByIDLocked(id string) *models.Patient {
	for _, patient := range s.patients {
		if patient.ID == id {
			return patient
		}
	}

	return nil
}

func (s *Storage) findByNameLocked(name string) *models.Patient {
	for _, patient := range s.patients {
		if patient.Name == name {
			return patient
		}
	}

	return nil
}

func copyPatient(patient *models.Patient) models.Patient {
	c := *patient
	c.History = append(make([]string, 0, len(patient.History)), patient.History...)

	return c
}
