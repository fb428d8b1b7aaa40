package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/middleware"
)

// GradeController handles grade endpoints
type GradeController struct {
	gradeService services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService services.GradeService) *GradeController {
	return &GradeController{
		gradeService: gradeService,
	}
}

// GetAllGrades lists grades joined with student and course names
func (c *GradeController) GetAllGrades(ctx *gin.Context) {
	grades, err := c.gradeService.ListGrades(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch grades")
		return
	}
	ctx.JSON(http.StatusOK, grades)
}

// CreateGrade records a grade and returns its joined view
func (c *GradeController) CreateGrade(ctx *gin.Context) {
	var req dto.CreateGradeRequest
	if !middleware.BindJSON(ctx, &req, services.MsgGradeFieldsRequired) {
		return
	}

	grade, err := c.gradeService.CreateGrade(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to create grade")
		return
	}
	ctx.JSON(http.StatusCreated, grade)
}
