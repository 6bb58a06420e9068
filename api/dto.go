package api

type DepartmentRequest struct {
	Name string `json:"name" validate:"required"`
}

type DepartmentResponse struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type ServiceRequest struct {
	Category       string   `json:"category" validate:"required"`
	SubDepartments []string `json:"sub_departments" validate:"min=1,dive,required"`
}

type ServiceResponse struct {
	Category       string   `json:"category"`
	SubDepartments []string `json:"sub_departments"`
}

type RoomConfigureRequest struct {
	Type     string `json:"type" validate:"required"`
	Total    int    `json:"total" validate:"min=0"`
	Occupied int    `json:"occupied" validate:"min=0"`
}

// RoomUpdateRequest carries an operator correction; counts are deliberately
// not cross-checked against each other.
type RoomUpdateRequest struct {
	Total    int `json:"total"`
	Occupied int `json:"occupied"`
}

type RoomResponse struct {
	Index     int    `json:"index"`
	Type      string `json:"type"`
	Total     int    `json:"total"`
	Occupied  int    `json:"occupied"`
	Available int    `json:"available"`
}

type StaffCreateRequest struct {
	Role            string `json:"role" validate:"required,oneof=DOCTOR NURSE TECHNICIAN"`
	Name            string `json:"name" validate:"required"`
	DepartmentIndex *int   `json:"department_index,omitempty"`
}

type ScheduleEdit struct {
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Status    string `json:"status"`
}

type StaffScheduleRequest struct {
	Edits []ScheduleEdit `json:"edits" validate:"min=1"`
}

type StaffResponse struct {
	Index      int    `json:"index"`
	Role       string `json:"role"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Summary    string `json:"timetable_summary"`
}

type StaffDetailResponse struct {
	StaffResponse
	Timetable []string `json:"timetable"`
}

type PatientIntakeRequest struct {
	ID             string `json:"id" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Age            int    `json:"age" validate:"min=0"`
	ReasonForVisit string `json:"reason_for_visit"`
}

type PatientResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Age                 int      `json:"age"`
	ReasonForVisit      string   `json:"reason_for_visit,omitempty"`
	Department          string   `json:"department,omitempty"`
	Hospitalized        bool     `json:"hospitalized"`
	RoomType            string   `json:"room_type,omitempty"`
	HospitalizationDate string   `json:"hospitalization_date,omitempty"`
	DischargeDate       string   `json:"discharge_date,omitempty"`
	History             []string `json:"history,omitempty"`
}

type AssignDepartmentRequest struct {
	DepartmentIndex int `json:"department_index" validate:"min=1"`
}

type AppointmentRequest struct {
	StaffIndex int `json:"staff_index" validate:"min=1"`
	Hour       int `json:"hour"`
}

type AppointmentResponse struct {
	StaffName string `json:"staff_name"`
	Hour      int    `json:"hour"`
	Entry     string `json:"entry"`
}

type HospitalizeRequest struct {
	RoomIndex int `json:"room_index" validate:"min=1"`
}

type HospitalizeResponse struct {
	Patient PatientResponse `json:"patient"`
	Room    RoomResponse    `json:"room"`
}

type DischargeRequest struct {
	Name             string  `json:"name" validate:"required"`
	DaysHospitalized int     `json:"days_hospitalized" validate:"min=0"`
	HourlyRate       float64 `json:"hourly_rate" validate:"min=0"`
	AppointmentCost  float64 `json:"appointment_cost" validate:"min=0"`
}

type DischargeResponse struct {
	TotalCost float64         `json:"total_cost"`
	Patient   PatientResponse `json:"patient"`
}
