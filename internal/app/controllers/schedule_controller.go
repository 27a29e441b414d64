package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/middleware"
)

// ScheduleController handles day schedules, lecture bookings and teacher
// substitution
type ScheduleController struct {
	scheduleService services.ScheduleService
	lectureService  services.LectureService
	resolve         resolver
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(svc *services.Services) *ScheduleController {
	return &ScheduleController{
		scheduleService: svc.Schedule,
		lectureService:  svc.Lecture,
		resolve:         resolver{svc: svc},
	}
}

func (c *ScheduleController) toModel(ctx context.Context, id int64, req dto.ScheduleRequest) (*models.Schedule, error) {
	date, err := parseDate(req.Date, "date")
	if err != nil {
		return nil, err
	}
	faculty, err := c.resolve.faculty(ctx, req.FacultyID)
	if err != nil {
		return nil, err
	}
	lectures, err := c.resolve.lectures(ctx, req.LectureIDs)
	if err != nil {
		return nil, err
	}
	return &models.Schedule{ID: id, Date: date, Faculty: faculty, Lectures: lectures}, nil
}

// CreateSchedule handles schedule creation
// @Summary Create a new day schedule
// @Description One schedule per date; weekends are refused
// @Tags schedules
// @Accept json
// @Produce json
// @Param request body dto.ScheduleRequest true "Schedule information"
// @Success 201 {object} dto.APIResponse{data=dto.CreatedResponse} "Schedule created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Faculty or lecture not found"
// @Failure 409 {object} dto.ErrorResponse "A schedule already exists for the date"
// @Router /schedules [post]
func (c *ScheduleController) CreateSchedule(ctx *gin.Context) {
	var req dto.ScheduleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	schedule, err := c.toModel(ctx.Request.Context(), 0, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	id, err := c.scheduleService.CreateSchedule(ctx.Request.Context(), schedule)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, id)
}

// CreateSchedules handles bulk schedule creation
// @Summary Create several day schedules
// @Tags schedules
// @Accept json
// @Produce json
// @Param request body dto.BatchRequest[dto.ScheduleRequest] true "Schedules"
// @Success 201 {object} dto.APIResponse{data=[]models.Schedule} "Schedules created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "A schedule already exists for a date"
// @Router /schedules/batch [post]
func (c *ScheduleController) CreateSchedules(ctx *gin.Context) {
	var req dto.BatchRequest[dto.ScheduleRequest]
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	schedules := make([]*models.Schedule, 0, len(req.Items))
	for _, item := range req.Items {
		schedule, err := c.toModel(ctx.Request.Context(), 0, item)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		schedules = append(schedules, schedule)
	}
	if err := c.scheduleService.CreateSchedules(ctx.Request.Context(), schedules); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(schedules))
}

// GetScheduleByID retrieves a schedule by ID
// @Summary Get schedule details
// @Tags schedules
// @Produce json
// @Param id path int true "Schedule ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Schedule} "Schedule retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Router /schedules/{id} [get]
func (c *ScheduleController) GetScheduleByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Schedule")
	if !ok {
		return
	}

	schedule, err := c.scheduleService.GetScheduleByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, schedule)
}

// GetSchedules lists schedules, optionally by faculty or booked lecture
// @Summary List schedules
// @Tags schedules
// @Produce json
// @Param facultyId query int false "Only schedules of this faculty"
// @Param lectureId query int false "Only schedules booking this lecture"
// @Success 200 {object} dto.APIResponse{data=[]models.Schedule} "Schedules retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /schedules [get]
func (c *ScheduleController) GetSchedules(ctx *gin.Context) {
	facultyID, byFaculty, err := parseIDQuery(ctx, "facultyId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	lectureID, byLecture, err := parseIDQuery(ctx, "lectureId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var schedules []*models.Schedule
	switch {
	case byFaculty:
		schedules, err = c.scheduleService.GetSchedulesByFaculty(ctx.Request.Context(), facultyID)
	case byLecture:
		schedules, err = c.scheduleService.GetSchedulesByLecture(ctx.Request.Context(), lectureID)
	default:
		schedules, err = c.scheduleService.GetAllSchedules(ctx.Request.Context())
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, schedules)
}

// UpdateSchedule changes the date and faculty of a schedule
// @Summary Update a schedule
// @Description Booked lectures are kept; use the booking endpoints to change them
// @Tags schedules
// @Accept json
// @Produce json
// @Param id path int true "Schedule ID" Format(int64) minimum(1)
// @Param request body dto.ScheduleRequest true "Updated schedule information"
// @Success 200 {object} dto.APIResponse{data=models.Schedule} "Schedule updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 409 {object} dto.ErrorResponse "A schedule already exists for the date"
// @Router /schedules/{id} [put]
func (c *ScheduleController) UpdateSchedule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Schedule")
	if !ok {
		return
	}
	var req dto.ScheduleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	schedule, err := c.toModel(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.scheduleService.UpdateSchedule(ctx.Request.Context(), schedule); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	updated, err := c.scheduleService.GetScheduleByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, updated)
}

// DeleteSchedule deletes a schedule
// @Summary Delete a schedule
// @Description Refused while lectures are booked in it
// @Tags schedules
// @Produce json
// @Param id path int true "Schedule ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Schedule deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 409 {object} dto.ErrorResponse "Schedule still has lectures"
// @Router /schedules/{id} [delete]
func (c *ScheduleController) DeleteSchedule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Schedule")
	if !ok {
		return
	}

	if err := c.scheduleService.DeleteSchedule(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Schedule deleted successfully"})
}

// BookLecture places a lecture into a schedule
// @Summary Book a lecture into a schedule
// @Description Refused when the classroom, the teacher or one of the groups is busy at that time
// @Tags schedules
// @Produce json
// @Param id path int true "Schedule ID"
// @Param lectureId path int true "Lecture ID"
// @Success 200 {object} dto.APIResponse{data=models.Schedule} "Lecture booked"
// @Failure 404 {object} dto.ErrorResponse "Schedule or lecture not found"
// @Failure 422 {object} dto.ErrorResponse "Booking conflict"
// @Router /schedules/{id}/lectures/{lectureId} [post]
func (c *ScheduleController) BookLecture(ctx *gin.Context) {
	scheduleID, ok := parseIDParam(ctx, "id", "Schedule")
	if !ok {
		return
	}
	lectureID, ok := parseIDParam(ctx, "lectureId", "Lecture")
	if !ok {
		return
	}

	if err := c.lectureService.AddLectureToSchedule(ctx.Request.Context(), lectureID, scheduleID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	schedule, err := c.scheduleService.GetScheduleByID(ctx.Request.Context(), scheduleID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, schedule)
}

// UnbookLecture removes a lecture from a schedule
// @Summary Remove a lecture from a schedule
// @Tags schedules
// @Produce json
// @Param id path int true "Schedule ID"
// @Param lectureId path int true "Lecture ID"
// @Success 200 {object} dto.APIResponse "Lecture removed"
// @Failure 404 {object} dto.ErrorResponse "Schedule or lecture not found"
// @Router /schedules/{id}/lectures/{lectureId} [delete]
func (c *ScheduleController) UnbookLecture(ctx *gin.Context) {
	scheduleID, ok := parseIDParam(ctx, "id", "Schedule")
	if !ok {
		return
	}
	lectureID, ok := parseIDParam(ctx, "lectureId", "Lecture")
	if !ok {
		return
	}

	if err := c.lectureService.RemoveLectureFromSchedule(ctx.Request.Context(), lectureID, scheduleID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Lecture removed from schedule"})
}

// ChangeTeacher hands a teacher's lectures over to substitutes
// @Summary Substitute a teacher over a period
// @Description Every lecture of the teacher in [from, to] goes to the first qualified and free teacher; lectures without a substitute stay unchanged
// @Tags schedules
// @Accept json
// @Produce json
// @Param request body dto.ChangeTeacherRequest true "Teacher and period"
// @Success 200 {object} dto.APIResponse{data=dto.ChangeTeacherResponse} "Lectures reassigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid period"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /schedules/change-teacher [post]
func (c *ScheduleController) ChangeTeacher(ctx *gin.Context) {
	var req dto.ChangeTeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	from, err := parseDate(req.From, "from")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	to, err := parseDate(req.To, "to")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	lectures, err := c.scheduleService.ChangeTeacher(ctx.Request.Context(), req.TeacherID, from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.ChangeTeacherResponse{Reassigned: len(lectures), Lectures: lectures})
}
