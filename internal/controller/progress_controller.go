package controller

import (
	"bio_olymp_backend/internal/model"
	"bio_olymp_backend/internal/service"
	"bio_olymp_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
	ReportService   *service.ReportService
}

func NewProgressController(progressService *service.ProgressService, reportService *service.ReportService) *ProgressController {
	return &ProgressController{ProgressService: progressService, ReportService: reportService}
}

// @Summary Get progress
// @Description Returns the learner progress and the overall completion
// @Tags progress
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	progress, err := c.ProgressService.GetProgress(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	overall, err := c.ProgressService.OverallProgress(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"progress": progress,
		"overall":  overall,
	})
}

// @Summary Record an answer
// @Description Marks a question as completed and awards its points on the first correct answer. Unknown and repeated questions leave the progress unchanged.
// @Tags progress
// @Accept json
// @Produce json
// @Param request body model.AnswerRequest true "Answer"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/progress/answers [post]
func (c *ProgressController) RecordAnswer(ctx *gin.Context) {
	var req model.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.RecordAnswer(ctx.Request.Context(), req.QuestionID, *req.IsCorrect)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary Progress chart
// @Description Completed and total questions per topic
// @Tags progress
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/progress/chart [get]
func (c *ProgressController) GetChart(ctx *gin.Context) {
	chart, err := c.ProgressService.ProgressChart(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, chart)
}

// @Summary Progress report
// @Description Downloads the progress as a PDF document
// @Tags progress
// @Produce application/pdf
// @Success 200 {file} file
// @Router /api/progress/report [get]
func (c *ProgressController) GetReport(ctx *gin.Context) {
	report, err := c.ReportService.ProgressReport(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="progress.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", report)
}

// @Summary Get achievements
// @Description Evaluates every achievement against the current progress
// @Tags achievements
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/achievements [get]
func (c *ProgressController) GetAchievements(ctx *gin.Context) {
	achievements, err := c.ProgressService.Achievements(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, achievements)
}
