package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/middleware"
)

// SubjectController handles subjects and the teachers and groups linked to them
type SubjectController struct {
	subjectService services.SubjectService
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService services.SubjectService) *SubjectController {
	return &SubjectController{subjectService: subjectService}
}

// CreateSubject handles subject creation
// @Summary Create a new subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param request body dto.SubjectRequest true "Subject information"
// @Success 201 {object} dto.APIResponse{data=dto.CreatedResponse} "Subject created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Subject already exists"
// @Router /subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req dto.SubjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id, err := c.subjectService.CreateSubject(ctx.Request.Context(), &models.Subject{Name: req.Name, Description: req.Description})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, id)
}

// CreateSubjects handles bulk subject creation
// @Summary Create several subjects
// @Tags subjects
// @Accept json
// @Produce json
// @Param request body dto.BatchRequest[dto.SubjectRequest] true "Subjects"
// @Success 201 {object} dto.APIResponse{data=[]models.Subject} "Subjects created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Subject already exists"
// @Router /subjects/batch [post]
func (c *SubjectController) CreateSubjects(ctx *gin.Context) {
	var req dto.BatchRequest[dto.SubjectRequest]
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	subjects := make([]*models.Subject, 0, len(req.Items))
	for _, item := range req.Items {
		subjects = append(subjects, &models.Subject{Name: item.Name, Description: item.Description})
	}
	if err := c.subjectService.CreateSubjects(ctx.Request.Context(), subjects); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(subjects))
}

// GetSubjectByID retrieves a subject by ID
// @Summary Get subject details
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Subject} "Subject retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /subjects/{id} [get]
func (c *SubjectController) GetSubjectByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Subject")
	if !ok {
		return
	}

	subject, err := c.subjectService.GetSubjectByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, subject)
}

// GetAllSubjects retrieves all subjects
// @Summary Get all subjects
// @Tags subjects
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Subject} "Subjects retrieved successfully"
// @Router /subjects [get]
func (c *SubjectController) GetAllSubjects(ctx *gin.Context) {
	subjects, err := c.subjectService.GetAllSubjects(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, subjects)
}

// UpdateSubject updates an existing subject
// @Summary Update a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID" Format(int64) minimum(1)
// @Param request body dto.SubjectRequest true "Updated subject information"
// @Success 200 {object} dto.APIResponse{data=models.Subject} "Subject updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 409 {object} dto.ErrorResponse "Subject name already taken"
// @Router /subjects/{id} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Subject")
	if !ok {
		return
	}
	var req dto.SubjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	subject := &models.Subject{ID: id, Name: req.Name, Description: req.Description}
	if err := c.subjectService.UpdateSubject(ctx.Request.Context(), subject); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, subject)
}

// DeleteSubject deletes a subject
// @Summary Delete a subject
// @Description Refused while groups study it, teachers are qualified in it or lectures use it
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Subject deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 409 {object} dto.ErrorResponse "Subject is still referenced"
// @Router /subjects/{id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Subject")
	if !ok {
		return
	}

	if err := c.subjectService.DeleteSubject(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Subject deleted successfully"})
}

// linkHandler builds the handlers of the subject join endpoints, which all
// take a subject id and a related id from the path
func (c *SubjectController) linkHandler(param, entity, message string, op func(*gin.Context, int64, int64) error) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		subjectID, ok := parseIDParam(ctx, "id", "Subject")
		if !ok {
			return
		}
		otherID, ok := parseIDParam(ctx, param, entity)
		if !ok {
			return
		}

		if err := op(ctx, subjectID, otherID); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}

		respondOK(ctx, dto.SuccessResponse{Message: message})
	}
}

// AssignTeacher qualifies a teacher in a subject
// @Summary Qualify a teacher in a subject
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Param teacherId path int true "Teacher ID"
// @Success 200 {object} dto.APIResponse "Teacher assigned"
// @Failure 404 {object} dto.ErrorResponse "Subject or teacher not found"
// @Failure 409 {object} dto.ErrorResponse "Teacher already assigned"
// @Router /subjects/{id}/teachers/{teacherId} [post]
func (c *SubjectController) AssignTeacher() gin.HandlerFunc {
	return c.linkHandler("teacherId", "Teacher", "Teacher assigned to subject",
		func(ctx *gin.Context, subjectID, teacherID int64) error {
			return c.subjectService.AssignTeacher(ctx.Request.Context(), subjectID, teacherID)
		})
}

// UnassignTeacher removes a teacher's qualification
// @Summary Remove a teacher's qualification
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Param teacherId path int true "Teacher ID"
// @Success 200 {object} dto.APIResponse "Teacher unassigned"
// @Failure 404 {object} dto.ErrorResponse "Subject or teacher not found"
// @Router /subjects/{id}/teachers/{teacherId} [delete]
func (c *SubjectController) UnassignTeacher() gin.HandlerFunc {
	return c.linkHandler("teacherId", "Teacher", "Teacher removed from subject",
		func(ctx *gin.Context, subjectID, teacherID int64) error {
			return c.subjectService.UnassignTeacher(ctx.Request.Context(), subjectID, teacherID)
		})
}

// AssignGroup adds a subject to a group's study program
// @Summary Add a subject to a group's program
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Param groupId path int true "Group ID"
// @Success 200 {object} dto.APIResponse "Group assigned"
// @Failure 404 {object} dto.ErrorResponse "Subject or group not found"
// @Failure 409 {object} dto.ErrorResponse "Group already studies the subject"
// @Router /subjects/{id}/groups/{groupId} [post]
func (c *SubjectController) AssignGroup() gin.HandlerFunc {
	return c.linkHandler("groupId", "Group", "Group assigned to subject",
		func(ctx *gin.Context, subjectID, groupID int64) error {
			return c.subjectService.AssignGroup(ctx.Request.Context(), subjectID, groupID)
		})
}

// UnassignGroup removes a subject from a group's study program
// @Summary Remove a subject from a group's program
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Param groupId path int true "Group ID"
// @Success 200 {object} dto.APIResponse "Group unassigned"
// @Failure 404 {object} dto.ErrorResponse "Subject or group not found"
// @Router /subjects/{id}/groups/{groupId} [delete]
func (c *SubjectController) UnassignGroup() gin.HandlerFunc {
	return c.linkHandler("groupId", "Group", "Group removed from subject",
		func(ctx *gin.Context, subjectID, groupID int64) error {
			return c.subjectService.UnassignGroup(ctx.Request.Context(), subjectID, groupID)
		})
}
