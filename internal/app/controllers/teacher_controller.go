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

// TeacherController handles teacher-related operations
type TeacherController struct {
	teacherService services.TeacherService
	resolve        resolver
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(svc *services.Services) *TeacherController {
	return &TeacherController{
		teacherService: svc.Teacher,
		resolve:        resolver{svc: svc},
	}
}

func (c *TeacherController) toModel(ctx context.Context, id int64, req dto.TeacherRequest) (*models.Teacher, error) {
	subjects, err := c.resolve.subjects(ctx, req.SubjectIDs)
	if err != nil {
		return nil, err
	}
	return &models.Teacher{ID: id, FirstName: req.FirstName, LastName: req.LastName, Subjects: subjects}, nil
}

// CreateTeacher handles teacher creation
// @Summary Create a new teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Param request body dto.TeacherRequest true "Teacher information"
// @Success 201 {object} dto.APIResponse{data=dto.CreatedResponse} "Teacher created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /teachers [post]
func (c *TeacherController) CreateTeacher(ctx *gin.Context) {
	var req dto.TeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	teacher, err := c.toModel(ctx.Request.Context(), 0, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	id, err := c.teacherService.CreateTeacher(ctx.Request.Context(), teacher)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, id)
}

// CreateTeachers handles bulk teacher creation
// @Summary Create several teachers
// @Tags teachers
// @Accept json
// @Produce json
// @Param request body dto.BatchRequest[dto.TeacherRequest] true "Teachers"
// @Success 201 {object} dto.APIResponse{data=[]models.Teacher} "Teachers created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /teachers/batch [post]
func (c *TeacherController) CreateTeachers(ctx *gin.Context) {
	var req dto.BatchRequest[dto.TeacherRequest]
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	teachers := make([]*models.Teacher, 0, len(req.Items))
	for _, item := range req.Items {
		teacher, err := c.toModel(ctx.Request.Context(), 0, item)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		teachers = append(teachers, teacher)
	}
	if err := c.teacherService.CreateTeachers(ctx.Request.Context(), teachers); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(teachers))
}

// GetTeacherByID retrieves a teacher by ID
// @Summary Get teacher details
// @Tags teachers
// @Produce json
// @Param id path int true "Teacher ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Teacher} "Teacher retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id} [get]
func (c *TeacherController) GetTeacherByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Teacher")
	if !ok {
		return
	}

	teacher, err := c.teacherService.GetTeacherByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, teacher)
}

// GetTeachers lists teachers, optionally those qualified in a subject
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Param subjectId query int false "Only teachers qualified in this subject"
// @Success 200 {object} dto.APIResponse{data=[]models.Teacher} "Teachers retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /teachers [get]
func (c *TeacherController) GetTeachers(ctx *gin.Context) {
	subjectID, bySubject, err := parseIDQuery(ctx, "subjectId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var teachers []*models.Teacher
	if bySubject {
		teachers, err = c.teacherService.GetTeachersBySubject(ctx.Request.Context(), subjectID)
	} else {
		teachers, err = c.teacherService.GetAllTeachers(ctx.Request.Context())
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, teachers)
}

// UpdateTeacher updates the names of a teacher
// @Summary Update a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Param id path int true "Teacher ID" Format(int64) minimum(1)
// @Param request body dto.TeacherRequest true "Updated teacher information"
// @Success 200 {object} dto.APIResponse{data=models.Teacher} "Teacher updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id} [put]
func (c *TeacherController) UpdateTeacher(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Teacher")
	if !ok {
		return
	}
	var req dto.TeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	teacher, err := c.toModel(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.teacherService.UpdateTeacher(ctx.Request.Context(), teacher); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	updated, err := c.teacherService.GetTeacherByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, updated)
}

// DeleteTeacher deletes a teacher
// @Summary Delete a teacher
// @Description Refused while the teacher gives lectures or is qualified in subjects
// @Tags teachers
// @Produce json
// @Param id path int true "Teacher ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Teacher deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Failure 409 {object} dto.ErrorResponse "Teacher is still referenced"
// @Router /teachers/{id} [delete]
func (c *TeacherController) DeleteTeacher(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Teacher")
	if !ok {
		return
	}

	if err := c.teacherService.DeleteTeacher(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Teacher deleted successfully"})
}
