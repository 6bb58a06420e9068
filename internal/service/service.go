package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hms-service/api"
	"hms-service/internal/lock"
	"hms-service/internal/models"
	"hms-service/pkg/response"
)

// Service coordinates operations that span the registries: it enforces the
// cross-entity preconditions (department match, slot state, room
// availability) and translates failures into the sentinel errors handlers
// report. It holds no state of its own beyond the store and locker.
type Service struct {
	store  Store
	locker lock.Locker
}

func NewService(store Store, locker lock.Locker) *Service {
	return &Service{store: store, locker: locker}
}

// Store hands out snapshots, never live records; every mutation is a store
// method so the store can run the whole span under its own lock.
type Store interface {
	// Departments
	AddDepartment(ctx context.Context, name string) (int, error)
	ListDepartments(ctx context.Context) ([]string, error)
	GetDepartment(ctx context.Context, index int) (string, error)

	// Services
	AddService(ctx context.Context, category string, subDepartments []string) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)

	// Staff
	AddStaff(ctx context.Context, role models.Role, name, department string) (models.Staff, int, error)
	ListStaff(ctx context.Context) ([]models.Staff, error)
	GetStaff(ctx context.Context, index int) (models.Staff, error)
	FindStaffByDepartment(ctx context.Context, department string) ([]models.Staff, error)
	SetStaffSchedule(ctx context.Context, index int, edits []api.ScheduleEdit) (models.Staff, error)
	BookStaffSlot(ctx context.Context, staffID, hour int) (models.Staff, error)

	// Rooms
	ConfigureRoom(ctx context.Context, roomType string, total, occupied int) (models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	GetRoom(ctx context.Context, index int) (models.Room, error)
	AllocateRoom(ctx context.Context, index int) (models.Room, error)
	ReleaseRoom(ctx context.Context, index int) (models.Room, error)
	UpdateRoom(ctx context.Context, index, total, occupied int) (models.Room, error)

	// Patients
	CreatePatient(ctx context.Context, patient models.Patient) (models.Patient, error)
	ListPatients(ctx context.Context) ([]models.Patient, error)
	GetPatientByID(ctx context.Context, id string) (models.Patient, error)
	FindPatientByName(ctx context.Context, name string) (models.Patient, error)
	SetPatientDepartment(ctx context.Context, id, department string) (models.Patient, error)
	AppendPatientHistory(ctx context.Context, id, entry string) (models.Patient, error)
	AdmitPatient(ctx context.Context, id string, roomIndex int, date string) (models.Patient, models.Room, error)
	RecordDischarge(ctx context.Context, name, date string) (models.Patient, error)
}

const dateTimeLayout = "2006-01-02 15:04:05"

func currentDateTime() string {
	return time.Now().Format(dateTimeLayout)
}

// Departments

func (s *Service) AddDepartment(ctx context.Context, req *api.DepartmentRequest) (*api.DepartmentResponse, error) {
	const op = "service.AddDepartment"

	index, err := s.store.AddDepartment(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.DepartmentResponse{Index: index, Name: req.Name}, nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]*api.DepartmentResponse, error) {
	const op = "service.ListDepartments"

	departments, err := s.store.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.DepartmentResponse, 0, len(departments))
	for i, name := range departments {
		result = append(result, &api.DepartmentResponse{Index: i + 1, Name: name})
	}

	return result, nil
}

// Hospital services

func (s *Service) ConfigureService(ctx context.Context, req *api.ServiceRequest) (*api.ServiceResponse, error) {
	const op = "service.ConfigureService"

	svc, err := s.store.AddService(ctx, req.Category, req.SubDepartments)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.ServiceResponse{
		Category:       svc.Category,
		SubDepartments: svc.SubDepartments,
	}, nil
}

func (s *Service) ListServices(ctx context.Context) ([]*api.ServiceResponse, error) {
	const op = "service.ListServices"

	services, err := s.store.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.ServiceResponse, 0, len(services))
	for _, svc := range services {
		result = append(result, &api.ServiceResponse{
			Category:       svc.Category,
			SubDepartments: svc.SubDepartments,
		})
	}

	return result, nil
}

// Rooms

func (s *Service) ConfigureRoom(ctx context.Context, req *api.RoomConfigureRequest) (*api.RoomResponse, error) {
	const op = "service.ConfigureRoom"

	room, err := s.store.ConfigureRoom(ctx, req.Type, req.Total, req.Occupied)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return roomResponse(len(rooms), room), nil
}

func (s *Service) ListRooms(ctx context.Context) ([]*api.RoomResponse, error) {
	const op = "service.ListRooms"

	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.RoomResponse, 0, len(rooms))
	for i, room := range rooms {
		result = append(result, roomResponse(i+1, room))
	}

	return result, nil
}

func (s *Service) UpdateRoom(ctx context.Context, index int, req *api.RoomUpdateRequest) (*api.RoomResponse, error) {
	const op = "service.UpdateRoom"

	room, err := s.store.UpdateRoom(ctx, index, req.Total, req.Occupied)
	if err != nil {
		if errors.Is(err, response.ErrOutOfRange) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrOutOfRange)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return roomResponse(index, room), nil
}

// Staff

// CreateStaff registers a staff member with an all-Free timetable. A
// department index outside catalog bounds skips the assignment and leaves the
// department unset; the staff member is still created, as in the original
// configuration flow.
func (s *Service) CreateStaff(ctx context.Context, req *api.StaffCreateRequest) (*api.StaffDetailResponse, error) {
	const op = "service.CreateStaff"

	department := ""
	if req.DepartmentIndex != nil {
		name, err := s.store.GetDepartment(ctx, *req.DepartmentIndex)
		if err == nil {
			department = name
		} else if !errors.Is(err, response.ErrOutOfRange) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	staff, index, err := s.store.AddStaff(ctx, models.Role(req.Role), req.Name, department)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return staffDetailResponse(index, staff), nil
}

// ListStaff returns the combined directory (doctors, nurses, technicians,
// insertion order within each group). With department set, only matching
// staff are returned and indices renumber within the filtered list, which is
// how appointment booking addresses staff.
func (s *Service) ListStaff(ctx context.Context, department *string) ([]*api.StaffResponse, error) {
	const op = "service.ListStaff"

	var (
		staff []models.Staff
		err   error
	)

	if department != nil {
		staff, err = s.store.FindStaffByDepartment(ctx, *department)
	} else {
		staff, err = s.store.ListStaff(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.StaffResponse, 0, len(staff))
	for i, member := range staff {
		result = append(result, staffResponse(i+1, member))
	}

	return result, nil
}

func (s *Service) GetStaff(ctx context.Context, index int) (*api.StaffDetailResponse, error) {
	const op = "service.GetStaff"

	staff, err := s.store.GetStaff(ctx, index)
	if err != nil {
		if errors.Is(err, response.ErrOutOfRange) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrOutOfRange)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return staffDetailResponse(index, staff), nil
}

// EditStaffSchedule applies range edits to the staff member at a 1-based
// combined-listing index. Hours outside [0,23] clamp silently and
// start > end edits mutate nothing; range edits never fail.
func (s *Service) EditStaffSchedule(ctx context.Context, index int, req *api.StaffScheduleRequest) (*api.StaffDetailResponse, error) {
	const op = "service.EditStaffSchedule"

	staff, err := s.store.SetStaffSchedule(ctx, index, req.Edits)
	if err != nil {
		if errors.Is(err, response.ErrOutOfRange) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrOutOfRange)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return staffDetailResponse(index, staff), nil
}

// Patients

func (s *Service) IntakePatient(ctx context.Context, req *api.PatientIntakeRequest) (*api.PatientResponse, error) {
	const op = "service.IntakePatient"

	patient, err := s.store.CreatePatient(ctx, models.Patient{
		ID:             req.ID,
		Name:           req.Name,
		Age:            req.Age,
		ReasonForVisit: req.ReasonForVisit,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return patientResponse(patient), nil
}

func (s *Service) ListPatients(ctx context.Context) ([]*api.PatientResponse, error) {
	const op = "service.ListPatients"

	patients, err := s.store.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.PatientResponse, 0, len(patients))
	for _, patient := range patients {
		result = append(result, patientResponse(patient))
	}

	return result, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*api.PatientResponse, error) {
	const op = "service.GetPatient"

	patient, err := s.store.GetPatientByID(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrPatientNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrPatientNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return patientResponse(patient), nil
}

// AssignDepartment sets the patient's department from a 1-based catalog
// index. An out-of-bounds index leaves the department unchanged. Assignment
// writes no history entry, so repeating it with the same index is a no-op.
func (s *Service) AssignDepartment(ctx context.Context, patientID string, req *api.AssignDepartmentRequest) (*api.PatientResponse, error) {
	const op = "service.AssignDepartment"

	if _, err := s.store.GetPatientByID(ctx, patientID); err != nil {
		if errors.Is(err, response.ErrPatientNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrPatientNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	department, err := s.store.GetDepartment(ctx, req.DepartmentIndex)
	if err != nil {
		if errors.Is(err, response.ErrOutOfRange) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrInvalidDepartment)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	patient, err := s.store.SetPatientDepartment(ctx, patientID, department)
	if err != nil {
		if errors.Is(err, response.ErrPatientNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrPatientNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return patientResponse(patient), nil
}

// BookAppointment books an hour with a staff member of the patient's
// department. StaffIndex is 1-based within the department-filtered listing.
// The slot must currently read Work; on success it becomes Appointment and
// exactly one history entry is appended. The slot flip itself is atomic in
// the store; the lock keyed by staff id and hour serializes the whole span
// across operators.
func (s *Service) BookAppointment(ctx context.Context, patientID string, req *api.AppointmentRequest) (*api.AppointmentResponse, error) {
	const op = "service.BookAppointment"

	patient, err := s.store.GetPatientByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, response.ErrPatientNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrPatientNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if patient.Department == "" {
		return nil, fmt.Errorf("%s: %w", op, response.ErrNoDepartment)
	}

	staffList, err := s.store.FindStaffByDepartment(ctx, patient.Department)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if req.StaffIndex < 1 || req.StaffIndex > len(staffList) {
		return nil, fmt.Errorf("%s: staff index %d: %w", op, req.StaffIndex, response.ErrOutOfRange)
	}

	member := staffList[req.StaffIndex-1]

	lockKey := fmt.Sprintf("staff:%d:%d", member.ID, req.Hour)

	locked, err := s.locker.Lock(ctx, lockKey, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	staff, err := s.store.BookStaffSlot(ctx, member.ID, req.Hour)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entry := fmt.Sprintf("Appointment scheduled with %s at hour %d on %s", staff.Name, req.Hour, currentDateTime())
	if _, err := s.store.AppendPatientHistory(ctx, patient.ID, entry); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.AppointmentResponse{
		StaffName: staff.Name,
		Hour:      req.Hour,
		Entry:     entry,
	}, nil
}

// Hospitalize admits the patient into the room entry at a 1-based inventory
// index. The hospitalized check, the availability check and the occupancy
// increment run as one atomic store span; the patient lock serializes
// concurrent admissions of the same patient across operators.
func (s *Service) Hospitalize(ctx context.Context, patientID string, req *api.HospitalizeRequest) (*api.HospitalizeResponse, error) {
	const op = "service.Hospitalize"

	lockKey := fmt.Sprintf("patient:%s", patientID)

	locked, err := s.locker.Lock(ctx, lockKey, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	patient, room, err := s.store.AdmitPatient(ctx, patientID, req.RoomIndex, currentDateTime())
	if err != nil {
		switch {
		case errors.Is(err, response.ErrPatientNotFound):
			return nil, fmt.Errorf("%s: %w", op, response.ErrPatientNotFound)
		case errors.Is(err, response.ErrAlreadyHospitalized):
			return nil, fmt.Errorf("%s: %w", op, response.ErrAlreadyHospitalized)
		case errors.Is(err, response.ErrOutOfRange):
			return nil, fmt.Errorf("%s: %w", op, response.ErrOutOfRange)
		case errors.Is(err, response.ErrRoomNotAvailable):
			return nil, fmt.Errorf("%s: %w", op, response.ErrRoomNotAvailable)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.HospitalizeResponse{
		Patient: *patientResponse(patient),
		Room:    *roomResponse(req.RoomIndex, room),
	}, nil
}

// DischargePatient selects by name, computes the total from the
// operator-supplied numbers (days x 24 x rate + appointment cost), stamps the
// discharge date and clears the hospitalized flag. Room occupancy is left
// untouched, and discharge is permitted even if the patient was never
// hospitalized; both match the source behavior.
func (s *Service) DischargePatient(ctx context.Context, req *api.DischargeRequest) (*api.DischargeResponse, error) {
	const op = "service.DischargePatient"

	patient, err := s.store.RecordDischarge(ctx, req.Name, currentDateTime())
	if err != nil {
		if errors.Is(err, response.ErrPatientNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrPatientNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	totalCost := float64(req.DaysHospitalized)*24*req.HourlyRate + req.AppointmentCost

	return &api.DischargeResponse{
		TotalCost: totalCost,
		Patient:   *patientResponse(patient),
	}, nil
}

// DTO mapping

func roomResponse(index int, room models.Room) *api.RoomResponse {
	return &api.RoomResponse{
		Index:     index,
		Type:      room.Type,
		Total:     room.TotalRooms,
		Occupied:  room.OccupiedRooms,
		Available: room.Available(),
	}
}

func staffResponse(index int, staff models.Staff) *api.StaffResponse {
	return &api.StaffResponse{
		Index:      index,
		Role:       staff.Role.Label(),
		Name:       staff.Name,
		Department: staff.Department,
		Summary:    staff.Timetable.Summary(),
	}
}

func staffDetailResponse(index int, staff models.Staff) *api.StaffDetailResponse {
	return &api.StaffDetailResponse{
		StaffResponse: *staffResponse(index, staff),
		Timetable:     staff.Timetable.Hours(),
	}
}

func patientResponse(patient models.Patient) *api.PatientResponse {
	return &api.PatientResponse{
		ID:                  patient.ID,
		Name:                patient.Name,
		Age:                 patient.Age,
		ReasonForVisit:      patient.ReasonForVisit,
		Department:          patient.Department,
		Hospitalized:        patient.Hospitalized,
		RoomType:            patient.RoomType,
		HospitalizationDate: patient.HospitalizationDate,
		DischargeDate:       patient.DischargeDate,
		History:             patient.History,
	}
}
