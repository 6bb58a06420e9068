package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

//Error Codes
type ErrCode string

var (
	FAILED_REQUEST            ErrCode = "REQUEST_FAILED"
	BAD_REQUEST               ErrCode = "FAILED_TO_DECODE"
	VALIDATION_FAILED         ErrCode = "VALIDATION_FAILED"
	NOT_FOUND                 ErrCode = "NOT_FOUND"
	PATIENT_NOT_FOUND         ErrCode = "PATIENT_NOT_FOUND"
	OUT_OF_RANGE              ErrCode = "OUT_OF_RANGE"
	INVALID_DEPARTMENT_CHOICE ErrCode = "INVALID_DEPARTMENT_CHOICE"
	NO_DEPARTMENT_ASSIGNED    ErrCode = "NO_DEPARTMENT_ASSIGNED"
	SLOT_NOT_AVAILABLE        ErrCode = "SLOT_NOT_AVAILABLE"
	ROOM_NOT_AVAILABLE        ErrCode = "ROOM_NOT_AVAILABLE"
	ALREADY_HOSPITALIZED      ErrCode = "ALREADY_HOSPITALIZED"
	LOCKED                    ErrCode = "LOCKED"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("resource not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrOutOfRange          = errors.New("index out of range")
	ErrInvalidDepartment   = errors.New("invalid department choice")
	ErrNoDepartment        = errors.New("no department assigned")
	ErrSlotNotAvailable    = errors.New("slot is not available")
	ErrRoomNotAvailable    = errors.New("no room of this type available")
	ErrAlreadyHospitalized = errors.New("patient is already hospitalized")
	ErrLocked              = errors.New("resource is locked")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsg []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' is required", err.Field()))
		case "min":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be at least %s", err.Field(), err.Param()))
		case "max":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be at most %s", err.Field(), err.Param()))
		case "oneof":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be one of [%s]", err.Field(), err.Param()))
		default:
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' is invalid", err.Field()))
		}
	}

	return Response{
		ResponseError: ResponseError{
			Code:    string(VALIDATION_FAILED),
			Message: strings.Join(errMsg, ", "),
		},
	}
}
