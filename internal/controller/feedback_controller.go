package controller

import (
	"bio_olymp_backend/internal/model"
	"bio_olymp_backend/internal/service"
	"bio_olymp_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	FeedbackService *service.FeedbackService
}

func NewFeedbackController(feedbackService *service.FeedbackService) *FeedbackController {
	return &FeedbackController{FeedbackService: feedbackService}
}

// @Summary Submit feedback
// @Description Adds a positive, negative or error report to a question
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body model.FeedbackRequest true "Feedback"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/feedback [post]
func (c *FeedbackController) SubmitFeedback(ctx *gin.Context) {
	var req model.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	stats, err := c.FeedbackService.SubmitFeedback(ctx.Request.Context(), req.QuestionID, req.Feedback, req.Type)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"stats":  stats,
		"status": service.VerificationStatusOf(stats),
	})
}

// @Summary Question feedback
// @Description Statistics, verification status and feedback records of a question
// @Tags feedback
// @Produce json
// @Param questionId path string true "Question id"
// @Success 200 {object} util.Response
// @Router /api/feedback/{questionId} [get]
func (c *FeedbackController) GetFeedback(ctx *gin.Context) {
	questionID := ctx.Param("questionId")

	stats, err := c.FeedbackService.QuestionStats(ctx.Request.Context(), questionID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	records, err := c.FeedbackService.FeedbackFor(ctx.Request.Context(), questionID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"stats":    stats,
		"status":   service.VerificationStatusOf(stats),
		"feedback": records,
	})
}
