package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterWithGin(); err != nil {
		panic(err)
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"not found", apperrors.NotFoundf("Teacher doesn't exist with id %d.", 7), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Teacher doesn't exist with id 7."},
		{"wrapped not found", fmt.Errorf("loading: %w", apperrors.NotFoundf("Group doesn't exist with id 2.")), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Group doesn't exist with id 2."},
		{"already exists", apperrors.AlreadyExistsf("The faculty already exists."), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "The faculty already exists."},
		{"has reference", apperrors.HasReferencef("The classroom is used in lectures."), http.StatusConflict, dto.ErrorCodeResourceReferenced, "The classroom is used in lectures."},
		{"invalid field", apperrors.InvalidFieldf("Faculty's name can't be empty."), http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Faculty's name can't be empty."},
		{"invalid teacher", apperrors.InvalidTeacherf("The teacher is busy."), http.StatusUnprocessableEntity, dto.ErrorCodeInvalidTeacher, "The teacher is busy."},
		{"invalid group", apperrors.InvalidGroupf("The group is busy."), http.StatusUnprocessableEntity, dto.ErrorCodeInvalidGroup, "The group is busy."},
		{"invalid classroom", apperrors.InvalidClassRoomf("The classroom is already occupied at this time."), http.StatusUnprocessableEntity, dto.ErrorCodeInvalidClassRoom, "The classroom is already occupied at this time."},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			resp := decodeError(t, w)
			if resp.Success {
				t.Error("success = true, want false")
			}
			if resp.Error.Code != tt.code {
				t.Errorf("code = %s, want %s", resp.Error.Code, tt.code)
			}
			if resp.Error.Message != tt.message {
				t.Errorf("message = %q, want %q", resp.Error.Message, tt.message)
			}
		})
	}
}

func TestBindJSON(t *testing.T) {
	router := gin.New()
	router.POST("/students", func(c *gin.Context) {
		var req dto.StudentRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		body   string
		status int
		code   dto.ErrorCode
	}{
		{"valid", `{"firstName":"John","lastName":"Doe","groupId":1}`, http.StatusNoContent, ""},
		{"missing field", `{"firstName":"John","groupId":1}`, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"malformed", `{"firstName":`, http.StatusBadRequest, dto.ErrorCodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if tt.code != "" {
				if got := decodeError(t, w).Error.Code; got != tt.code {
					t.Errorf("code = %s, want %s", got, tt.code)
				}
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), RequestLogger(), Metrics())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("header %q is not a uuid", id)
		}
		if w.Body.String() != id {
			t.Errorf("context id = %q, header id = %q", w.Body.String(), id)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		given := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, given)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got != given {
			t.Errorf("header = %q, want %q", got, given)
		}
	})

	t.Run("garbage replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "not-an-id")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got == "not-an-id" {
			t.Error("invalid request id was echoed back")
		}
	})
}
