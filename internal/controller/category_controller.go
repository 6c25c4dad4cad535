package controller

import (
	"quiz_sphere_backend/internal/service"
	"quiz_sphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	Service *service.CategoryService
}

func NewCategoryController(svc *service.CategoryService) *CategoryController {
	return &CategoryController{Service: svc}
}

// @Summary List all categories
// @Tags categories
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.Service.List()
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, categories)
}
