package controller

import (
	"strconv"

	"quiz_sphere_backend/internal/service"
	"quiz_sphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Attempts  *service.AttemptService
	Picker    *service.QuizService
	Standings *service.StandingsService
}

func NewQuizController(attempts *service.AttemptService, picker *service.QuizService, standings *service.StandingsService) *QuizController {
	return &QuizController{Attempts: attempts, Picker: picker, Standings: standings}
}

// @Summary Draw questions for the current attempt
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param category query string true "category name"
// @Success 200 {object} util.Response
// @Router /api/quiz [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	category := ctx.Query("category")
	if category == "" {
		util.BadRequest(ctx, "category is required")
		return
	}

	bundle, err := c.Picker.Pick(user.UserID, category)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, bundle)
}

// @Summary Quiz details for the user and category, opening a fresh attempt if needed
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param category query string true "category name"
// @Success 200 {object} util.Response
// @Router /api/quiz/details [get]
func (c *QuizController) GetQuizDetails(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	category := ctx.Query("category")
	if category == "" {
		util.BadRequest(ctx, "category is required")
		return
	}

	details, err := c.Attempts.Details(user.UserID, category)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, details)
}

type attemptRequest struct {
	CategoryID   uint `json:"categoryId" binding:"required"`
	PointsEarned int  `json:"pointsEarned"`
	IsFinished   bool `json:"isFinished"`
}

// @Summary Submit one answered question
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body attemptRequest true "submission"
// @Success 200 {object} util.Response
// @Router /api/quiz/attempt [post]
func (c *QuizController) Attempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req attemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.Attempts.Submit(user.UserID, req.CategoryID, req.PointsEarned, req.IsFinished)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, msg)
}

// @Summary Delete the attempt for a category and reverse its credit
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param categoryId path int true "category id"
// @Success 200 {object} util.Response
// @Router /api/quiz/{categoryId} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	categoryID, err := strconv.Atoi(ctx.Param("categoryId"))
	if err != nil {
		util.BadRequest(ctx, "invalid category id")
		return
	}

	msg, err := c.Attempts.Delete(user.UserID, uint(categoryID))
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, msg)
}

// @Summary Cross-category standings for the current user
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/standings [get]
func (c *QuizController) GetStandings(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	standings, err := c.Standings.Summarize(user.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, standings)
}
