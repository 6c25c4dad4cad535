package controller

import (
	"quiz_sphere_backend/internal/service"
	"quiz_sphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssistantController struct {
	AI *service.AIService
}

func NewAssistantController(ai *service.AIService) *AssistantController {
	return &AssistantController{AI: ai}
}

type explainRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

// @Summary Explain why an answer is correct or incorrect
// @Tags assistant
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body explainRequest true "question and answer"
// @Success 200 {object} util.Response
// @Router /api/assistant/explain [post]
func (c *AssistantController) Explain(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req explainRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	explanation, err := c.AI.ExplainAnswer(ctx.Request.Context(), req.Question, req.Answer)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"explanation": explanation})
}
