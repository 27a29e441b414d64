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

// GroupController handles group-related operations
type GroupController struct {
	groupService services.GroupService
	resolve      resolver
}

// NewGroupController creates a new GroupController
func NewGroupController(svc *services.Services) *GroupController {
	return &GroupController{
		groupService: svc.Group,
		resolve:      resolver{svc: svc},
	}
}

func (c *GroupController) toModel(ctx context.Context, id int64, req dto.GroupRequest) (*models.Group, error) {
	faculty, err := c.resolve.faculty(ctx, req.FacultyID)
	if err != nil {
		return nil, err
	}
	subjects, err := c.resolve.subjects(ctx, req.SubjectIDs)
	if err != nil {
		return nil, err
	}
	return &models.Group{ID: id, Name: req.Name, Faculty: faculty, Subjects: subjects}, nil
}

// CreateGroup handles group creation
// @Summary Create a new group
// @Description Creates a group with its faculty and initial study program
// @Tags groups
// @Accept json
// @Produce json
// @Param request body dto.GroupRequest true "Group information"
// @Success 201 {object} dto.APIResponse{data=dto.CreatedResponse} "Group created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Faculty or subject not found"
// @Failure 409 {object} dto.ErrorResponse "Group already exists"
// @Router /groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	var req dto.GroupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	group, err := c.toModel(ctx.Request.Context(), 0, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	id, err := c.groupService.CreateGroup(ctx.Request.Context(), group)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, id)
}

// CreateGroups handles bulk group creation
// @Summary Create several groups
// @Tags groups
// @Accept json
// @Produce json
// @Param request body dto.BatchRequest[dto.GroupRequest] true "Groups"
// @Success 201 {object} dto.APIResponse{data=[]models.Group} "Groups created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Group already exists"
// @Router /groups/batch [post]
func (c *GroupController) CreateGroups(ctx *gin.Context) {
	var req dto.BatchRequest[dto.GroupRequest]
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	groups := make([]*models.Group, 0, len(req.Items))
	for _, item := range req.Items {
		group, err := c.toModel(ctx.Request.Context(), 0, item)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		groups = append(groups, group)
	}
	if err := c.groupService.CreateGroups(ctx.Request.Context(), groups); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(groups))
}

// GetGroupByID retrieves a group by ID
// @Summary Get group details
// @Tags groups
// @Produce json
// @Param id path int true "Group ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Group} "Group retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [get]
func (c *GroupController) GetGroupByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Group")
	if !ok {
		return
	}

	group, err := c.groupService.GetGroupByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, group)
}

// GetGroups lists groups, optionally by faculty or subject
// @Summary List groups
// @Tags groups
// @Produce json
// @Param facultyId query int false "Only groups of this faculty"
// @Param subjectId query int false "Only groups studying this subject"
// @Success 200 {object} dto.APIResponse{data=[]models.Group} "Groups retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /groups [get]
func (c *GroupController) GetGroups(ctx *gin.Context) {
	facultyID, byFaculty, err := parseIDQuery(ctx, "facultyId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	subjectID, bySubject, err := parseIDQuery(ctx, "subjectId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var groups []*models.Group
	switch {
	case byFaculty:
		groups, err = c.groupService.GetGroupsByFaculty(ctx.Request.Context(), facultyID)
	case bySubject:
		groups, err = c.groupService.GetGroupsBySubject(ctx.Request.Context(), subjectID)
	default:
		groups, err = c.groupService.GetAllGroups(ctx.Request.Context())
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, groups)
}

// UpdateGroup updates the name and faculty of a group
// @Summary Update a group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID" Format(int64) minimum(1)
// @Param request body dto.GroupRequest true "Updated group information"
// @Success 200 {object} dto.APIResponse{data=models.Group} "Group updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 409 {object} dto.ErrorResponse "Group name already taken"
// @Router /groups/{id} [put]
func (c *GroupController) UpdateGroup(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Group")
	if !ok {
		return
	}
	var req dto.GroupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	group, err := c.toModel(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.groupService.UpdateGroup(ctx.Request.Context(), group); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	updated, err := c.groupService.GetGroupByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, updated)
}

// DeleteGroup deletes a group
// @Summary Delete a group
// @Description Refused while the group attends lectures, has students or studies subjects
// @Tags groups
// @Produce json
// @Param id path int true "Group ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Group deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 409 {object} dto.ErrorResponse "Group is still referenced"
// @Router /groups/{id} [delete]
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Group")
	if !ok {
		return
	}

	if err := c.groupService.DeleteGroup(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Group deleted successfully"})
}
