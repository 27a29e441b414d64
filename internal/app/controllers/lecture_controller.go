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

// LectureController handles lectures and the groups attending them
type LectureController struct {
	lectureService services.LectureService
	resolve        resolver
}

// NewLectureController creates a new LectureController
func NewLectureController(svc *services.Services) *LectureController {
	return &LectureController{
		lectureService: svc.Lecture,
		resolve:        resolver{svc: svc},
	}
}

func (c *LectureController) toModel(ctx context.Context, id int64, req dto.LectureRequest) (*models.Lecture, error) {
	start, err := parseTime(req.StartTime, "startTime")
	if err != nil {
		return nil, err
	}
	end, err := parseTime(req.EndTime, "endTime")
	if err != nil {
		return nil, err
	}
	subject, err := c.resolve.subject(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}
	teacher, err := c.resolve.teacher(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}
	classRoom, err := c.resolve.classRoom(ctx, req.ClassRoomID)
	if err != nil {
		return nil, err
	}
	groups, err := c.resolve.groups(ctx, req.GroupIDs)
	if err != nil {
		return nil, err
	}
	return &models.Lecture{
		ID:        id,
		Subject:   subject,
		Teacher:   teacher,
		ClassRoom: classRoom,
		Groups:    groups,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// CreateLecture handles lecture creation
// @Summary Create a new lecture
// @Description The teacher must be qualified in the subject and every group must study it
// @Tags lectures
// @Accept json
// @Produce json
// @Param request body dto.LectureRequest true "Lecture information"
// @Success 201 {object} dto.APIResponse{data=dto.CreatedResponse} "Lecture created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Referenced entity not found"
// @Failure 409 {object} dto.ErrorResponse "Lecture already exists"
// @Failure 422 {object} dto.ErrorResponse "Teacher or group not eligible"
// @Router /lectures [post]
func (c *LectureController) CreateLecture(ctx *gin.Context) {
	var req dto.LectureRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lecture, err := c.toModel(ctx.Request.Context(), 0, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	id, err := c.lectureService.CreateLecture(ctx.Request.Context(), lecture)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, id)
}

// CreateLectures handles bulk lecture creation
// @Summary Create several lectures
// @Tags lectures
// @Accept json
// @Produce json
// @Param request body dto.BatchRequest[dto.LectureRequest] true "Lectures"
// @Success 201 {object} dto.APIResponse{data=[]models.Lecture} "Lectures created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Lecture already exists"
// @Failure 422 {object} dto.ErrorResponse "Teacher or group not eligible"
// @Router /lectures/batch [post]
func (c *LectureController) CreateLectures(ctx *gin.Context) {
	var req dto.BatchRequest[dto.LectureRequest]
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lectures := make([]*models.Lecture, 0, len(req.Items))
	for _, item := range req.Items {
		lecture, err := c.toModel(ctx.Request.Context(), 0, item)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		lectures = append(lectures, lecture)
	}
	if err := c.lectureService.CreateLectures(ctx.Request.Context(), lectures); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(lectures))
}

// GetLectureByID retrieves a lecture by ID
// @Summary Get lecture details
// @Tags lectures
// @Produce json
// @Param id path int true "Lecture ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Lecture} "Lecture retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Router /lectures/{id} [get]
func (c *LectureController) GetLectureByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Lecture")
	if !ok {
		return
	}

	lecture, err := c.lectureService.GetLectureByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, lecture)
}

// GetLectures lists lectures, optionally filtered by one relation
// @Summary List lectures
// @Tags lectures
// @Produce json
// @Param classRoomId query int false "Only lectures held in this classroom"
// @Param subjectId query int false "Only lectures of this subject"
// @Param teacherId query int false "Only lectures given by this teacher"
// @Param groupId query int false "Only lectures attended by this group"
// @Success 200 {object} dto.APIResponse{data=[]models.Lecture} "Lectures retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /lectures [get]
func (c *LectureController) GetLectures(ctx *gin.Context) {
	filters := []struct {
		param string
		list  func(context.Context, int64) ([]*models.Lecture, error)
	}{
		{"classRoomId", c.lectureService.GetLecturesByClassRoom},
		{"subjectId", c.lectureService.GetLecturesBySubject},
		{"teacherId", c.lectureService.GetLecturesByTeacher},
		{"groupId", c.lectureService.GetLecturesByGroup},
	}

	for _, f := range filters {
		id, present, err := parseIDQuery(ctx, f.param)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		if !present {
			continue
		}
		lectures, err := f.list(ctx.Request.Context(), id)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		respondOK(ctx, lectures)
		return
	}

	lectures, err := c.lectureService.GetAllLectures(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, lectures)
}

// UpdateLecture updates an existing lecture
// @Summary Update a lecture
// @Description Changes subject, teacher, classroom and times; attending groups are kept
// @Tags lectures
// @Accept json
// @Produce json
// @Param id path int true "Lecture ID" Format(int64) minimum(1)
// @Param request body dto.LectureRequest true "Updated lecture information"
// @Success 200 {object} dto.APIResponse{data=models.Lecture} "Lecture updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Failure 409 {object} dto.ErrorResponse "Lecture already exists"
// @Failure 422 {object} dto.ErrorResponse "Teacher or group not eligible"
// @Router /lectures/{id} [put]
func (c *LectureController) UpdateLecture(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Lecture")
	if !ok {
		return
	}
	var req dto.LectureRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lecture, err := c.toModel(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.lectureService.UpdateLecture(ctx.Request.Context(), lecture); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	updated, err := c.lectureService.GetLectureByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, updated)
}

// DeleteLecture deletes a lecture
// @Summary Delete a lecture
// @Description Refused while the lecture is booked in a schedule or attended by groups
// @Tags lectures
// @Produce json
// @Param id path int true "Lecture ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Lecture deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Failure 409 {object} dto.ErrorResponse "Lecture is still referenced"
// @Router /lectures/{id} [delete]
func (c *LectureController) DeleteLecture(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Lecture")
	if !ok {
		return
	}

	if err := c.lectureService.DeleteLecture(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Lecture deleted successfully"})
}

// AddGroup makes a group attend a lecture
// @Summary Add a group to a lecture
// @Description The group must study the subject and be free in every schedule the lecture is booked in
// @Tags lectures
// @Produce json
// @Param id path int true "Lecture ID"
// @Param groupId path int true "Group ID"
// @Success 200 {object} dto.APIResponse "Group added"
// @Failure 404 {object} dto.ErrorResponse "Lecture or group not found"
// @Failure 409 {object} dto.ErrorResponse "Group already attends"
// @Failure 422 {object} dto.ErrorResponse "Group not eligible or busy"
// @Router /lectures/{id}/groups/{groupId} [post]
func (c *LectureController) AddGroup(ctx *gin.Context) {
	lectureID, ok := parseIDParam(ctx, "id", "Lecture")
	if !ok {
		return
	}
	groupID, ok := parseIDParam(ctx, "groupId", "Group")
	if !ok {
		return
	}

	if err := c.lectureService.AddGroupToLecture(ctx.Request.Context(), lectureID, groupID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Group added to lecture"})
}

// RemoveGroup removes a group from a lecture
// @Summary Remove a group from a lecture
// @Tags lectures
// @Produce json
// @Param id path int true "Lecture ID"
// @Param groupId path int true "Group ID"
// @Success 200 {object} dto.APIResponse "Group removed"
// @Failure 404 {object} dto.ErrorResponse "Lecture or group not found"
// @Router /lectures/{id}/groups/{groupId} [delete]
func (c *LectureController) RemoveGroup(ctx *gin.Context) {
	lectureID, ok := parseIDParam(ctx, "id", "Lecture")
	if !ok {
		return
	}
	groupID, ok := parseIDParam(ctx, "groupId", "Group")
	if !ok {
		return
	}

	if err := c.lectureService.RemoveGroupFromLecture(ctx.Request.Context(), lectureID, groupID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Group removed from lecture"})
}
