package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/middleware"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/export"
)

const (
	formatQuery  = "format"
	formatXLSX   = "xlsx"
	xlsxMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// TimetableController serves day and month views of the schedules, as
// JSON or as an .xlsx workbook with ?format=xlsx
type TimetableController struct {
	timetableService services.TimetableService
}

// NewTimetableController creates a new TimetableController
func NewTimetableController(timetableService services.TimetableService) *TimetableController {
	return &TimetableController{timetableService: timetableService}
}

func parseMonth(ctx *gin.Context) (int, time.Month, error) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil || year < 1 {
		return 0, 0, apperrors.NewBadRequestError("year must be a positive number")
	}
	month, err := strconv.Atoi(ctx.Param("month"))
	if err != nil {
		return 0, 0, apperrors.NewBadRequestError("month must be a number")
	}
	return year, time.Month(month), nil
}

// respond writes the schedules as JSON, or as a workbook download when the
// xlsx format was asked for. single unwraps a one-day view in JSON.
func (c *TimetableController) respond(ctx *gin.Context, title string, schedules []*models.Schedule, single bool) {
	if ctx.Query(formatQuery) != formatXLSX {
		if single {
			respondOK(ctx, schedules[0])
			return
		}
		respondOK(ctx, schedules)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteTimetable(&buf, title, schedules); err != nil {
		middleware.HandleAPIError(ctx, fmt.Errorf("error exporting timetable: %w", err))
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", title+".xlsx"))
	ctx.Data(http.StatusOK, xlsxMimeType, buf.Bytes())
}

// GetDaySchedule returns the full schedule of a date
// @Summary Get the schedule of a day
// @Tags timetable
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param format query string false "xlsx for a workbook download"
// @Success 200 {object} dto.APIResponse{data=models.Schedule} "Schedule retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Failure 404 {object} dto.ErrorResponse "No schedule on that date"
// @Router /timetable/days/{date} [get]
func (c *TimetableController) GetDaySchedule(ctx *gin.Context) {
	date, err := parseDate(ctx.Param("date"), "date")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	schedule, err := c.timetableService.GetDaySchedule(ctx.Request.Context(), date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.respond(ctx, "timetable-"+date.Format(models.DateLayout), []*models.Schedule{schedule}, true)
}

// GetTeacherDaySchedule returns a teacher's lectures on a date
// @Summary Get a teacher's day
// @Tags timetable
// @Produce json
// @Param id path int true "Teacher ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param format query string false "xlsx for a workbook download"
// @Success 200 {object} dto.APIResponse{data=models.Schedule} "Schedule retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Teacher or schedule not found"
// @Router /timetable/teachers/{id}/days/{date} [get]
func (c *TimetableController) GetTeacherDaySchedule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Teacher")
	if !ok {
		return
	}
	date, err := parseDate(ctx.Param("date"), "date")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	schedule, err := c.timetableService.GetTeacherDaySchedule(ctx.Request.Context(), id, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	title := fmt.Sprintf("teacher-%d-%s", id, date.Format(models.DateLayout))
	c.respond(ctx, title, []*models.Schedule{schedule}, true)
}

// GetStudentDaySchedule returns the lectures a student attends on a date
// @Summary Get a student's day
// @Tags timetable
// @Produce json
// @Param id path int true "Student ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param format query string false "xlsx for a workbook download"
// @Success 200 {object} dto.APIResponse{data=models.Schedule} "Schedule retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Student or schedule not found"
// @Router /timetable/students/{id}/days/{date} [get]
func (c *TimetableController) GetStudentDaySchedule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}
	date, err := parseDate(ctx.Param("date"), "date")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	schedule, err := c.timetableService.GetStudentDaySchedule(ctx.Request.Context(), id, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	title := fmt.Sprintf("student-%d-%s", id, date.Format(models.DateLayout))
	c.respond(ctx, title, []*models.Schedule{schedule}, true)
}

// GetTeacherMonthSchedule returns a teacher's lectures for each scheduled day of a month
// @Summary Get a teacher's month
// @Tags timetable
// @Produce json
// @Param id path int true "Teacher ID"
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param format query string false "xlsx for a workbook download"
// @Success 200 {object} dto.APIResponse{data=[]models.Schedule} "Schedules retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid month"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /timetable/teachers/{id}/months/{year}/{month} [get]
func (c *TimetableController) GetTeacherMonthSchedule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Teacher")
	if !ok {
		return
	}
	year, month, err := parseMonth(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	schedules, err := c.timetableService.GetTeacherMonthSchedule(ctx.Request.Context(), id, year, month)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.respond(ctx, fmt.Sprintf("teacher-%d-%04d-%02d", id, year, int(month)), schedules, false)
}

// GetStudentMonthSchedule returns a student's lectures for each scheduled day of a month
// @Summary Get a student's month
// @Tags timetable
// @Produce json
// @Param id path int true "Student ID"
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param format query string false "xlsx for a workbook download"
// @Success 200 {object} dto.APIResponse{data=[]models.Schedule} "Schedules retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid month"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /timetable/students/{id}/months/{year}/{month} [get]
func (c *TimetableController) GetStudentMonthSchedule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}
	year, month, err := parseMonth(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	schedules, err := c.timetableService.GetStudentMonthSchedule(ctx.Request.Context(), id, year, month)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.respond(ctx, fmt.Sprintf("student-%d-%04d-%02d", id, year, int(month)), schedules, false)
}
