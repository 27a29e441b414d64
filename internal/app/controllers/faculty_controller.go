package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/middleware"
)

// FacultyController handles faculty-related operations
type FacultyController struct {
	facultyService services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService) *FacultyController {
	return &FacultyController{
		facultyService: facultyService,
	}
}

// CreateFaculty handles faculty creation
// @Summary Create a new faculty
// @Description Creates a new faculty with a unique name
// @Tags faculties
// @Accept json
// @Produce json
// @Param request body dto.FacultyRequest true "Faculty information"
// @Success 201 {object} dto.APIResponse{data=dto.CreatedResponse} "Faculty created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Faculty already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculties [post]
func (c *FacultyController) CreateFaculty(ctx *gin.Context) {
	var req dto.FacultyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id, err := c.facultyService.CreateFaculty(ctx.Request.Context(), &models.Faculty{Name: req.Name})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, id)
}

// CreateFaculties handles bulk faculty creation
// @Summary Create several faculties
// @Description Validates every faculty, then stores all of them or none
// @Tags faculties
// @Accept json
// @Produce json
// @Param request body dto.BatchRequest[dto.FacultyRequest] true "Faculties"
// @Success 201 {object} dto.APIResponse{data=[]models.Faculty} "Faculties created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Faculty already exists"
// @Router /faculties/batch [post]
func (c *FacultyController) CreateFaculties(ctx *gin.Context) {
	var req dto.BatchRequest[dto.FacultyRequest]
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	faculties := make([]*models.Faculty, 0, len(req.Items))
	for _, item := range req.Items {
		faculties = append(faculties, &models.Faculty{Name: item.Name})
	}
	if err := c.facultyService.CreateFaculties(ctx.Request.Context(), faculties); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(faculties))
}

// GetFacultyByID retrieves a faculty by ID
// @Summary Get faculty details
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Faculty} "Faculty retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID format"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculties/{id} [get]
func (c *FacultyController) GetFacultyByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Faculty")
	if !ok {
		return
	}

	faculty, err := c.facultyService.GetFacultyByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, faculty)
}

// GetAllFaculties retrieves all faculties
// @Summary Get all faculties
// @Tags faculties
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Faculty} "Faculties retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculties [get]
func (c *FacultyController) GetAllFaculties(ctx *gin.Context) {
	faculties, err := c.facultyService.GetAllFaculties(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, faculties)
}

// UpdateFaculty updates an existing faculty
// @Summary Update a faculty
// @Tags faculties
// @Accept json
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Param request body dto.FacultyRequest true "Updated faculty information"
// @Success 200 {object} dto.APIResponse{data=models.Faculty} "Faculty updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 409 {object} dto.ErrorResponse "Faculty name already taken"
// @Router /faculties/{id} [put]
func (c *FacultyController) UpdateFaculty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Faculty")
	if !ok {
		return
	}

	var req dto.FacultyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	faculty := &models.Faculty{ID: id, Name: req.Name}
	if err := c.facultyService.UpdateFaculty(ctx.Request.Context(), faculty); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, faculty)
}

// DeleteFaculty deletes a faculty
// @Summary Delete a faculty
// @Description Refused while classrooms, groups or schedules still belong to the faculty
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Faculty deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 409 {object} dto.ErrorResponse "Faculty is still referenced"
// @Router /faculties/{id} [delete]
func (c *FacultyController) DeleteFaculty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Faculty")
	if !ok {
		return
	}

	if err := c.facultyService.DeleteFaculty(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Faculty deleted successfully"})
}
