package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// parseIDParam reads a numeric path parameter. On failure it writes a 400
// and returns false.
func parseIDParam(ctx *gin.Context, name, entity string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+entity+" ID").
			WithField(name).
			WithDetails(entity + " ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// parseIDQuery reads an optional numeric query parameter
func parseIDQuery(ctx *gin.Context, name string) (int64, bool, error) {
	raw, ok := ctx.GetQuery(name)
	if !ok || raw == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, apperrors.NewBadRequestError(name + " must be a valid number")
	}
	return id, true, nil
}

// parseDate reads a calendar date in the YYYY-MM-DD layout
func parseDate(value, field string) (time.Time, error) {
	date, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewBadRequestError(field + " must be a date in the YYYY-MM-DD format")
	}
	return date, nil
}

func parseTime(value, field string) (*models.TimeOfDay, error) {
	t, err := models.ParseTimeOfDay(value)
	if err != nil {
		return nil, apperrors.NewBadRequestError(field + " must be a time in the HH:MM format")
	}
	return &t, nil
}

func respondOK(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

func respondCreated(ctx *gin.Context, id int64) {
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.CreatedResponse{ID: id}))
}

// resolver turns the ids of a request into loaded entities. A zero id
// resolves to nil so the services report the missing reference themselves;
// an unknown id is a not-found error.
type resolver struct {
	svc *services.Services
}

func (r resolver) faculty(ctx context.Context, id int64) (*models.Faculty, error) {
	if id == 0 {
		return nil, nil
	}
	return r.svc.Faculty.GetFacultyByID(ctx, id)
}

func (r resolver) classRoom(ctx context.Context, id int64) (*models.ClassRoom, error) {
	if id == 0 {
		return nil, nil
	}
	return r.svc.ClassRoom.GetClassRoomByID(ctx, id)
}

func (r resolver) subject(ctx context.Context, id int64) (*models.Subject, error) {
	if id == 0 {
		return nil, nil
	}
	return r.svc.Subject.GetSubjectByID(ctx, id)
}

func (r resolver) teacher(ctx context.Context, id int64) (*models.Teacher, error) {
	if id == 0 {
		return nil, nil
	}
	return r.svc.Teacher.GetTeacherByID(ctx, id)
}

func (r resolver) group(ctx context.Context, id int64) (*models.Group, error) {
	if id == 0 {
		return nil, nil
	}
	return r.svc.Group.GetGroupByID(ctx, id)
}

func (r resolver) subjects(ctx context.Context, ids []int64) ([]*models.Subject, error) {
	return resolveAll(ctx, ids, r.svc.Subject.GetSubjectByID)
}

func (r resolver) groups(ctx context.Context, ids []int64) ([]*models.Group, error) {
	return resolveAll(ctx, ids, r.svc.Group.GetGroupByID)
}

func (r resolver) lectures(ctx context.Context, ids []int64) ([]*models.Lecture, error) {
	return resolveAll(ctx, ids, r.svc.Lecture.GetLectureByID)
}

func resolveAll[T any](ctx context.Context, ids []int64, get func(context.Context, int64) (*T, error)) ([]*T, error) {
	items := make([]*T, 0, len(ids))
	for _, id := range ids {
		item, err := get(ctx, id)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
