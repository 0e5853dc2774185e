package controller

import (
	"bio_olymp_backend/internal/model"
	"bio_olymp_backend/internal/service"
	"bio_olymp_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionBankController struct {
	QuestionBankService *service.QuestionBankService
}

func NewQuestionBankController(questionBankService *service.QuestionBankService) *QuestionBankController {
	return &QuestionBankController{QuestionBankService: questionBankService}
}

// @Summary List user questions
// @Description User questions filtered by a search term and a theme
// @Tags question-bank
// @Produce json
// @Param search query string false "Case-insensitive search over text and theme"
// @Param theme query string false "Exact theme, or all"
// @Success 200 {object} util.Response
// @Router /api/question-bank [get]
func (c *QuestionBankController) ListQuestions(ctx *gin.Context) {
	questions, err := c.QuestionBankService.ListUserQuestions(ctx.Request.Context(), ctx.Query("search"), ctx.Query("theme"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// @Summary Add a user question
// @Description Validates and stores a new question in the bank
// @Tags question-bank
// @Accept json
// @Produce json
// @Param request body model.UserQuestionRequest true "Question"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/question-bank [post]
func (c *QuestionBankController) AddQuestion(ctx *gin.Context) {
	var req model.UserQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionBankService.AddUserQuestion(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// @Summary Delete a user question
// @Description Removes a question from the bank; unknown ids are ignored
// @Tags question-bank
// @Produce json
// @Param id path string true "Question id"
// @Success 200 {object} util.Response
// @Router /api/question-bank/{id} [delete]
func (c *QuestionBankController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuestionBankService.DeleteUserQuestion(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Question bank themes
// @Tags question-bank
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/question-bank/themes [get]
func (c *QuestionBankController) GetThemes(ctx *gin.Context) {
	themes, err := c.QuestionBankService.Themes(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, themes)
}

// @Summary Analyze the question bank
// @Description Top themes and the type distribution of the user questions
// @Tags question-bank
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/question-bank/analysis [get]
func (c *QuestionBankController) GetAnalysis(ctx *gin.Context) {
	analysis, err := c.QuestionBankService.Analyze(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, analysis)
}

// @Summary Question statistics
// @Description Catalog and user questions by difficulty, source and theme
// @Tags question-bank
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/question-bank/stats [get]
func (c *QuestionBankController) GetStats(ctx *gin.Context) {
	stats, err := c.QuestionBankService.Stats(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
