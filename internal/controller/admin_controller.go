package controller

import (
	"strconv"

	"quiz_sphere_backend/internal/service"
	"quiz_sphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Categories *service.CategoryService
	Questions  *service.QuestionService
}

func NewAdminController(categories *service.CategoryService, questions *service.QuestionService) *AdminController {
	return &AdminController{Categories: categories, Questions: questions}
}

// @Summary Create a category with its marks scale
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateCategoryRequest true "category"
// @Success 201 {object} util.Response
// @Router /api/admin/categories [post]
func (c *AdminController) CreateCategory(ctx *gin.Context) {
	var req service.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	categories, err := c.Categories.Create(req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, categories)
}

// @Summary Add a question with its four choices
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AddQuestionRequest true "question"
// @Success 201 {object} util.Response
// @Router /api/admin/questions [post]
func (c *AdminController) AddQuestion(ctx *gin.Context) {
	var req service.AddQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Questions.Add(req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

type updateScaleRequest struct {
	Marks int `json:"marks" binding:"required"`
}

// @Summary Update the marks scale of a category
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "category id"
// @Param body body updateScaleRequest true "marks"
// @Success 200 {object} util.Response
// @Router /api/admin/categories/{id}/scale [put]
func (c *AdminController) UpdateScale(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid category id")
		return
	}

	var req updateScaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Categories.UpdateScale(uint(id), req.Marks); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, "Marks have been updated successfully")
}
