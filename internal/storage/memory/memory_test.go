package memory_test

import (
	"context"
	"errors"
	"testing"

	"hms-service/api"
	"hms-service/internal/models"
	"hms-service/internal/storage/memory"
	"hms-service/internal/timetable"
	"hms-service/pkg/response"

	"github.com/stretchr/testify/require"
)

func TestDepartments_OneBasedGet(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	idx, err := s.AddDepartment(ctx, "Cardiology")
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	idx, err = s.AddDepartment(ctx, "Radiology")
	require.NoError(t, err)
	require.Equal(t, 2, idx)

	name, err := s.GetDepartment(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Cardiology", name)

	_, err = s.GetDepartment(ctx, 0)
	require.True(t, errors.Is(err, response.ErrOutOfRange))

	_, err = s.GetDepartment(ctx, 3)
	require.True(t, errors.Is(err, response.ErrOutOfRange))
}

func TestDepartments_DuplicatesKept(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.AddDepartment(ctx, "Cardiology")
	require.NoError(t, err)
	_, err = s.AddDepartment(ctx, "Cardiology")
	require.NoError(t, err)

	deps, err := s.ListDepartments(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Cardiology", "Cardiology"}, deps)
}

func TestAddService_AppendsSubDepartmentsToCatalog(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	svc, err := s.AddService(ctx, "Medical", []string{"Cardiology", "Neurology"})
	require.NoError(t, err)
	require.Equal(t, "Medical", svc.Category)

	deps, err := s.ListDepartments(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Cardiology", "Neurology"}, deps)

	services, err := s.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, 1)
}

func TestAddStaff_AssignsIDsAndCombinedIndex(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	nina, idx, err := s.AddStaff(ctx, models.ROLE_NURSE, "Nina", "Cardiology")
	require.NoError(t, err)
	require.Equal(t, 1, nina.ID)
	require.Equal(t, 1, idx)

	dana, idx, err := s.AddStaff(ctx, models.ROLE_DOCTOR, "Dana", "Cardiology")
	require.NoError(t, err)
	require.Equal(t, 2, dana.ID)
	// doctors sort ahead of nurses in the combined listing
	require.Equal(t, 1, idx)
}

func TestListStaff_CombinedOrder(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, _, err := s.AddStaff(ctx, models.ROLE_NURSE, "Nina", "Cardiology")
	require.NoError(t, err)
	_, _, err = s.AddStaff(ctx, models.ROLE_DOCTOR, "Dana", "Cardiology")
	require.NoError(t, err)
	_, _, err = s.AddStaff(ctx, models.ROLE_TECHNICIAN, "Tom", "Radiology")
	require.NoError(t, err)
	_, _, err = s.AddStaff(ctx, models.ROLE_DOCTOR, "Dave", "Radiology")
	require.NoError(t, err)

	all, err := s.ListStaff(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(all))
	for _, st := range all {
		names = append(names, st.Name)
	}

	// doctors first in insertion order, then nurses, then technicians
	require.Equal(t, []string{"Dana", "Dave", "Nina", "Tom"}, names)

	staff, err := s.GetStaff(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, "Nina", staff.Name)

	_, err = s.GetStaff(ctx, 5)
	require.True(t, errors.Is(err, response.ErrOutOfRange))
}

func TestAddStaff_RejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, _, err := s.AddStaff(ctx, models.Role("JANITOR"), "Joe", "")

	require.True(t, errors.Is(err, response.ErrBadRequest))
}

func TestFindStaffByDepartment(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, _, err := s.AddStaff(ctx, models.ROLE_TECHNICIAN, "Tom", "Cardiology")
	require.NoError(t, err)
	_, _, err = s.AddStaff(ctx, models.ROLE_DOCTOR, "Dana", "Cardiology")
	require.NoError(t, err)
	_, _, err = s.AddStaff(ctx, models.ROLE_DOCTOR, "Dave", "Radiology")
	require.NoError(t, err)

	matched, err := s.FindStaffByDepartment(ctx, "Cardiology")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	require.Equal(t, "Dana", matched[0].Name)
	require.Equal(t, "Tom", matched[1].Name)

	matched, err = s.FindStaffByDepartment(ctx, "Oncology")
	require.NoError(t, err)
	require.Empty(t, matched)
}

func TestSetStaffSchedule(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, _, err := s.AddStaff(ctx, models.ROLE_DOCTOR, "Dana", "Cardiology")
	require.NoError(t, err)

	staff, err := s.SetStaffSchedule(ctx, 1, []api.ScheduleEdit{
		{StartHour: 9, EndHour: 11, Status: timetable.StatusWork},
	})
	require.NoError(t, err)
	require.Equal(t, timetable.StatusWork, staff.Timetable.At(10))

	_, err = s.SetStaffSchedule(ctx, 2, nil)
	require.True(t, errors.Is(err, response.ErrOutOfRange))
}

func TestBookStaffSlot(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	dana, _, err := s.AddStaff(ctx, models.ROLE_DOCTOR, "Dana", "Cardiology")
	require.NoError(t, err)

	_, err = s.SetStaffSchedule(ctx, 1, []api.ScheduleEdit{
		{StartHour: 10, EndHour: 10, Status: timetable.StatusWork},
	})
	require.NoError(t, err)

	staff, err := s.BookStaffSlot(ctx, dana.ID, 10)
	require.NoError(t, err)
	require.Equal(t, timetable.StatusAppointment, staff.Timetable.At(10))

	// slot already taken
	_, err = s.BookStaffSlot(ctx, dana.ID, 10)
	require.True(t, errors.Is(err, response.ErrSlotNotAvailable))

	// never scheduled as Work
	_, err = s.BookStaffSlot(ctx, dana.ID, 11)
	require.True(t, errors.Is(err, response.ErrSlotNotAvailable))

	_, err = s.BookStaffSlot(ctx, 99, 10)
	require.True(t, errors.Is(err, response.ErrNotFound))
}

func TestStaffSnapshots_AreDetached(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, _, err := s.AddStaff(ctx, models.ROLE_DOCTOR, "Dana", "Cardiology")
	require.NoError(t, err)

	snap, err := s.GetStaff(ctx, 1)
	require.NoError(t, err)
	snap.Timetable.SetRange(0, 23, timetable.StatusWork)

	fresh, err := s.GetStaff(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, timetable.StatusFree, fresh.Timetable.At(0))
}

func TestRooms_AllocateAndRelease(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.ConfigureRoom(ctx, "ICU", 5, 4)
	require.NoError(t, err)

	room, err := s.AllocateRoom(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 5, room.OccupiedRooms)
	require.Equal(t, 0, room.Available())

	// exhausted
	_, err = s.AllocateRoom(ctx, 1)
	require.True(t, errors.Is(err, response.ErrRoomNotAvailable))

	room, err = s.GetRoom(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 5, room.OccupiedRooms)

	room, err = s.ReleaseRoom(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 4, room.OccupiedRooms)
}

func TestReleaseRoom_FloorsAtZero(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.ConfigureRoom(ctx, "General Ward", 2, 0)
	require.NoError(t, err)

	room, err := s.ReleaseRoom(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 0, room.OccupiedRooms)
}

func TestRooms_DuplicateTypesAreSeparateEntries(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.ConfigureRoom(ctx, "ICU", 1, 0)
	require.NoError(t, err)
	_, err = s.ConfigureRoom(ctx, "ICU", 3, 3)
	require.NoError(t, err)

	rooms, err := s.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	require.Equal(t, 1, rooms[0].Available())
	require.Equal(t, 0, rooms[1].Available())
}

func TestUpdateRoom_PermissiveCounts(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.ConfigureRoom(ctx, "ICU", 5, 2)
	require.NoError(t, err)

	room, err := s.UpdateRoom(ctx, 1, 3, 7)
	require.NoError(t, err)
	require.Equal(t, 3, room.TotalRooms)
	require.Equal(t, 7, room.OccupiedRooms)

	_, err = s.UpdateRoom(ctx, 2, 1, 1)
	require.True(t, errors.Is(err, response.ErrOutOfRange))
}

func TestPatients_LookupByIDAndName(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.CreatePatient(ctx, models.Patient{ID: "P1", Name: "Alice"})
	require.NoError(t, err)
	_, err = s.CreatePatient(ctx, models.Patient{ID: "P2", Name: "Bob"})
	require.NoError(t, err)

	p, err := s.GetPatientByID(ctx, "P2")
	require.NoError(t, err)
	require.Equal(t, "Bob", p.Name)

	p, err = s.FindPatientByName(ctx, "Alice")
	require.NoError(t, err)
	require.Equal(t, "P1", p.ID)

	_, err = s.GetPatientByID(ctx, "P9")
	require.True(t, errors.Is(err, response.ErrPatientNotFound))

	_, err = s.FindPatientByName(ctx, "Mallory")
	require.True(t, errors.Is(err, response.ErrPatientNotFound))
}

func TestPatients_DuplicateIDsFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.CreatePatient(ctx, models.Patient{ID: "P1", Name: "First"})
	require.NoError(t, err)
	_, err = s.CreatePatient(ctx, models.Patient{ID: "P1", Name: "Second"})
	require.NoError(t, err)

	p, err := s.GetPatientByID(ctx, "P1")
	require.NoError(t, err)
	require.Equal(t, "First", p.Name)
}

func TestSetPatientDepartment(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.CreatePatient(ctx, models.Patient{ID: "P1", Name: "Alice"})
	require.NoError(t, err)

	p, err := s.SetPatientDepartment(ctx, "P1", "Cardiology")
	require.NoError(t, err)
	require.Equal(t, "Cardiology", p.Department)
	require.Empty(t, p.History)

	_, err = s.SetPatientDepartment(ctx, "P9", "Cardiology")
	require.True(t, errors.Is(err, response.ErrPatientNotFound))
}

func TestAppendPatientHistory(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.CreatePatient(ctx, models.Patient{ID: "P1", Name: "Alice"})
	require.NoError(t, err)

	p, err := s.AppendPatientHistory(ctx, "P1", "first entry")
	require.NoError(t, err)
	require.Equal(t, []string{"first entry"}, p.History)

	p, err = s.AppendPatientHistory(ctx, "P1", "second entry")
	require.NoError(t, err)
	require.Equal(t, []string{"first entry", "second entry"}, p.History)

	_, err = s.AppendPatientHistory(ctx, "P9", "lost")
	require.True(t, errors.Is(err, response.ErrPatientNotFound))
}

func TestAdmitPatient(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.ConfigureRoom(ctx, "ICU", 1, 0)
	require.NoError(t, err)
	_, err = s.CreatePatient(ctx, models.Patient{ID: "P1", Name: "Alice"})
	require.NoError(t, err)
	_, err = s.CreatePatient(ctx, models.Patient{ID: "P2", Name: "Bob"})
	require.NoError(t, err)

	p, room, err := s.AdmitPatient(ctx, "P1", 1, "2026-08-31 10:00:00")
	require.NoError(t, err)
	require.True(t, p.Hospitalized)
	require.Equal(t, "ICU", p.RoomType)
	require.Equal(t, "2026-08-31 10:00:00", p.HospitalizationDate)
	require.Equal(t, []string{"Hospitalized in ICU on 2026-08-31 10:00:00"}, p.History)
	require.Equal(t, 1, room.OccupiedRooms)

	_, _, err = s.AdmitPatient(ctx, "P1", 1, "2026-08-31 11:00:00")
	require.True(t, errors.Is(err, response.ErrAlreadyHospitalized))

	// room is full; nothing about the patient changes on failure
	_, _, err = s.AdmitPatient(ctx, "P2", 1, "2026-08-31 11:00:00")
	require.True(t, errors.Is(err, response.ErrRoomNotAvailable))

	bob, err := s.GetPatientByID(ctx, "P2")
	require.NoError(t, err)
	require.False(t, bob.Hospitalized)
	require.Empty(t, bob.History)

	_, _, err = s.AdmitPatient(ctx, "P2", 5, "2026-08-31 11:00:00")
	require.True(t, errors.Is(err, response.ErrOutOfRange))

	_, _, err = s.AdmitPatient(ctx, "P9", 1, "2026-08-31 11:00:00")
	require.True(t, errors.Is(err, response.ErrPatientNotFound))
}

func TestRecordDischarge(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.ConfigureRoom(ctx, "ICU", 2, 0)
	require.NoError(t, err)
	_, err = s.CreatePatient(ctx, models.Patient{ID: "P1", Name: "Alice"})
	require.NoError(t, err)

	_, _, err = s.AdmitPatient(ctx, "P1", 1, "2026-08-30 09:00:00")
	require.NoError(t, err)

	p, err := s.RecordDischarge(ctx, "Alice", "2026-08-31 09:00:00")
	require.NoError(t, err)
	require.False(t, p.Hospitalized)
	require.Equal(t, "2026-08-31 09:00:00", p.DischargeDate)
	require.Equal(t, "Discharged on 2026-08-31 09:00:00", p.History[len(p.History)-1])

	// occupancy deliberately stays as it was
	room, err := s.GetRoom(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, room.OccupiedRooms)

	_, err = s.RecordDischarge(ctx, "Mallory", "2026-08-31 09:00:00")
	require.True(t, errors.Is(err, response.ErrPatientNotFound))
}

func TestPatientSnapshots_AreDetached(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.CreatePatient(ctx, models.Patient{ID: "P1", Name: "Alice"})
	require.NoError(t, err)

	snap, err := s.AppendPatientHistory(ctx, "P1", "first entry")
	require.NoError(t, err)
	snap.History[0] = "tampered"
	snap.AddHistory("extra")

	fresh, err := s.GetPatientByID(ctx, "P1")
	require.NoError(t, err)
	require.Equal(t, []string{"first entry"}, fresh.History)
}
