package dto

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/unischedule/internal/pkg/validation"
)

func bindingValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	if err := validation.Register(v); err != nil {
		panic(err)
	}
	return v
}

func TestHandleValidationError_FieldErrors(t *testing.T) {
	err := bindingValidator().Struct(LectureRequest{SubjectID: 1, TeacherID: 1, ClassRoomID: 1, StartTime: "9am", EndTime: "10:30"})
	if err == nil {
		t.Fatal("expected a validation error")
	}

	detail := HandleValidationError(err)
	if detail.Code != ErrorCodeValidationFailed {
		t.Errorf("Code = %s, want %s", detail.Code, ErrorCodeValidationFailed)
	}
	if detail.Field != "startTime" {
		t.Errorf("Field = %q, want startTime", detail.Field)
	}
	list, ok := detail.Details.([]ErrorDetail)
	if !ok || len(list) != 1 {
		t.Fatalf("Details = %#v, want one field error", detail.Details)
	}
	if list[0].Message != "startTime must match the layout 15:04" {
		t.Errorf("Message = %q", list[0].Message)
	}
}

func TestHandleValidationError_MultipleFields(t *testing.T) {
	err := bindingValidator().Struct(StudentRequest{})
	detail := HandleValidationError(err)

	list := detail.Details.([]ErrorDetail)
	if len(list) != 3 {
		t.Fatalf("got %d field errors, want 3", len(list))
	}
	if detail.Field != "" {
		t.Errorf("Field = %q, want empty for several errors", detail.Field)
	}
	if list[0].Message != "firstName is required" {
		t.Errorf("first message = %q", list[0].Message)
	}
}

func TestHandleValidationError_Malformed(t *testing.T) {
	var req FacultyRequest
	err := json.Unmarshal([]byte(`{"name":`), &req)

	detail := HandleValidationError(err)
	if detail.Code != ErrorCodeBadRequest {
		t.Errorf("Code = %s, want %s", detail.Code, ErrorCodeBadRequest)
	}
}
