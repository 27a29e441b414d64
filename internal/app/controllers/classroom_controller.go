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

// ClassRoomController handles classroom-related operations
type ClassRoomController struct {
	classRoomService services.ClassRoomService
	resolve          resolver
}

// NewClassRoomController creates a new ClassRoomController
func NewClassRoomController(svc *services.Services) *ClassRoomController {
	return &ClassRoomController{
		classRoomService: svc.ClassRoom,
		resolve:          resolver{svc: svc},
	}
}

func (c *ClassRoomController) toModel(ctx context.Context, id int64, req dto.ClassRoomRequest) (*models.ClassRoom, error) {
	faculty, err := c.resolve.faculty(ctx, req.FacultyID)
	if err != nil {
		return nil, err
	}
	return &models.ClassRoom{
		ID:             id,
		BuildingNumber: req.BuildingNumber,
		RoomNumber:     req.RoomNumber,
		Faculty:        faculty,
	}, nil
}

// CreateClassRoom handles classroom creation
// @Summary Create a new classroom
// @Description Building and room numbers must be positive and unique together
// @Tags classrooms
// @Accept json
// @Produce json
// @Param request body dto.ClassRoomRequest true "Classroom information"
// @Success 201 {object} dto.APIResponse{data=dto.CreatedResponse} "Classroom created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 409 {object} dto.ErrorResponse "Classroom already exists"
// @Router /classrooms [post]
func (c *ClassRoomController) CreateClassRoom(ctx *gin.Context) {
	var req dto.ClassRoomRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	classRoom, err := c.toModel(ctx.Request.Context(), 0, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	id, err := c.classRoomService.CreateClassRoom(ctx.Request.Context(), classRoom)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, id)
}

// CreateClassRooms handles bulk classroom creation
// @Summary Create several classrooms
// @Tags classrooms
// @Accept json
// @Produce json
// @Param request body dto.BatchRequest[dto.ClassRoomRequest] true "Classrooms"
// @Success 201 {object} dto.APIResponse{data=[]models.ClassRoom} "Classrooms created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Classroom already exists"
// @Router /classrooms/batch [post]
func (c *ClassRoomController) CreateClassRooms(ctx *gin.Context) {
	var req dto.BatchRequest[dto.ClassRoomRequest]
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	classRooms := make([]*models.ClassRoom, 0, len(req.Items))
	for _, item := range req.Items {
		classRoom, err := c.toModel(ctx.Request.Context(), 0, item)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		classRooms = append(classRooms, classRoom)
	}
	if err := c.classRoomService.CreateClassRooms(ctx.Request.Context(), classRooms); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(classRooms))
}

// GetClassRoomByID retrieves a classroom by ID
// @Summary Get classroom details
// @Tags classrooms
// @Produce json
// @Param id path int true "Classroom ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.ClassRoom} "Classroom retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Classroom not found"
// @Router /classrooms/{id} [get]
func (c *ClassRoomController) GetClassRoomByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Classroom")
	if !ok {
		return
	}

	classRoom, err := c.classRoomService.GetClassRoomByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, classRoom)
}

// GetClassRooms lists classrooms, optionally by building or faculty
// @Summary List classrooms
// @Tags classrooms
// @Produce json
// @Param buildingNumber query int false "Only classrooms in this building"
// @Param facultyId query int false "Only classrooms of this faculty"
// @Success 200 {object} dto.APIResponse{data=[]models.ClassRoom} "Classrooms retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /classrooms [get]
func (c *ClassRoomController) GetClassRooms(ctx *gin.Context) {
	building, byBuilding, err := parseIDQuery(ctx, "buildingNumber")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	facultyID, byFaculty, err := parseIDQuery(ctx, "facultyId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var classRooms []*models.ClassRoom
	switch {
	case byBuilding:
		classRooms, err = c.classRoomService.GetClassRoomsByBuildingNumber(ctx.Request.Context(), int(building))
	case byFaculty:
		classRooms, err = c.classRoomService.GetClassRoomsByFaculty(ctx.Request.Context(), facultyID)
	default:
		classRooms, err = c.classRoomService.GetAllClassRooms(ctx.Request.Context())
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, classRooms)
}

// UpdateClassRoom updates an existing classroom
// @Summary Update a classroom
// @Tags classrooms
// @Accept json
// @Produce json
// @Param id path int true "Classroom ID" Format(int64) minimum(1)
// @Param request body dto.ClassRoomRequest true "Updated classroom information"
// @Success 200 {object} dto.APIResponse{data=models.ClassRoom} "Classroom updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Classroom not found"
// @Failure 409 {object} dto.ErrorResponse "Classroom already exists"
// @Router /classrooms/{id} [put]
func (c *ClassRoomController) UpdateClassRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Classroom")
	if !ok {
		return
	}
	var req dto.ClassRoomRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	classRoom, err := c.toModel(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.classRoomService.UpdateClassRoom(ctx.Request.Context(), classRoom); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, classRoom)
}

// DeleteClassRoom deletes a classroom
// @Summary Delete a classroom
// @Description Refused while lectures are held in the classroom
// @Tags classrooms
// @Produce json
// @Param id path int true "Classroom ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Classroom deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Classroom not found"
// @Failure 409 {object} dto.ErrorResponse "Classroom is still referenced"
// @Router /classrooms/{id} [delete]
func (c *ClassRoomController) DeleteClassRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Classroom")
	if !ok {
		return
	}

	if err := c.classRoomService.DeleteClassRoom(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Classroom deleted successfully"})
}
