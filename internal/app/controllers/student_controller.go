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

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
	resolve        resolver
}

// NewStudentController creates a new StudentController
func NewStudentController(svc *services.Services) *StudentController {
	return &StudentController{
		studentService: svc.Student,
		resolve:        resolver{svc: svc},
	}
}

func (c *StudentController) toModel(ctx context.Context, id int64, req dto.StudentRequest) (*models.Student, error) {
	group, err := c.resolve.group(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	return &models.Student{ID: id, FirstName: req.FirstName, LastName: req.LastName, Group: group}, nil
}

// CreateStudent handles student creation
// @Summary Create a new student
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.StudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.CreatedResponse} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.toModel(ctx.Request.Context(), 0, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	id, err := c.studentService.CreateStudent(ctx.Request.Context(), student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, id)
}

// CreateStudents handles bulk student creation
// @Summary Create several students
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.BatchRequest[dto.StudentRequest] true "Students"
// @Success 201 {object} dto.APIResponse{data=[]models.Student} "Students created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /students/batch [post]
func (c *StudentController) CreateStudents(ctx *gin.Context) {
	var req dto.BatchRequest[dto.StudentRequest]
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	students := make([]*models.Student, 0, len(req.Items))
	for _, item := range req.Items {
		student, err := c.toModel(ctx.Request.Context(), 0, item)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		students = append(students, student)
	}
	if err := c.studentService.CreateStudents(ctx.Request.Context(), students); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(students))
}

// GetStudentByID retrieves a student by ID
// @Summary Get student details
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, student)
}

// GetStudents lists students, optionally those of a group
// @Summary List students
// @Tags students
// @Produce json
// @Param groupId query int false "Only students of this group"
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Students retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /students [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	groupID, byGroup, err := parseIDQuery(ctx, "groupId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var students []*models.Student
	if byGroup {
		students, err = c.studentService.GetStudentsByGroup(ctx.Request.Context(), groupID)
	} else {
		students, err = c.studentService.GetAllStudents(ctx.Request.Context())
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, students)
}

// UpdateStudent updates an existing student
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.StudentRequest true "Updated student information"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Student or group not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.toModel(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.studentService.UpdateStudent(ctx.Request.Context(), student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, student)
}

// DeleteStudent deletes a student
// @Summary Delete a student
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Student deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Student deleted successfully"})
}
