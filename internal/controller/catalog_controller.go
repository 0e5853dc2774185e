package controller

import (
	"bio_olymp_backend/internal/catalog"
	"bio_olymp_backend/internal/model"
	"bio_olymp_backend/internal/service"
	"bio_olymp_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Catalog         *catalog.Catalog
	ProgressService *service.ProgressService
}

func NewCatalogController(cat *catalog.Catalog, progressService *service.ProgressService) *CatalogController {
	return &CatalogController{Catalog: cat, ProgressService: progressService}
}

type categoryWithProgress struct {
	model.Category
	Progress model.TopicProgress `json:"progress"`
}

// @Summary List topics
// @Description Topics of the catalog with the completion of each
// @Tags catalog
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/categories [get]
func (c *CatalogController) GetCategories(ctx *gin.Context) {
	categories := c.Catalog.Categories()
	result := make([]categoryWithProgress, 0, len(categories))
	for _, cat := range categories {
		progress, err := c.ProgressService.TopicProgress(ctx.Request.Context(), cat.Name)
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		result = append(result, categoryWithProgress{Category: cat, Progress: progress})
	}

	util.Success(ctx, result)
}

// @Summary Topic progress
// @Description Completion of one topic. Accepts a topic id or name; unknown topics have zero total.
// @Tags catalog
// @Produce json
// @Param name path string true "Topic id or name"
// @Success 200 {object} util.Response
// @Router /api/categories/{name}/progress [get]
func (c *CatalogController) GetCategoryProgress(ctx *gin.Context) {
	name := ctx.Param("name")
	if cat, ok := c.Catalog.CategoryByID(name); ok {
		name = cat.Name
	}

	progress, err := c.ProgressService.TopicProgress(ctx.Request.Context(), name)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary Practice questions
// @Description Catalog questions of a topic, or all of them
// @Tags catalog
// @Produce json
// @Param category query string false "Topic id or name"
// @Success 200 {object} util.Response
// @Router /api/questions [get]
func (c *CatalogController) GetQuestions(ctx *gin.Context) {
	util.Success(ctx, c.ProgressService.PracticeSet(ctx.Query("category")))
}

// @Summary Unanswered questions
// @Description Catalog questions that are not completed yet
// @Tags catalog
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/questions/unanswered [get]
func (c *CatalogController) GetUnanswered(ctx *gin.Context) {
	questions, err := c.ProgressService.UnansweredSet(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// @Summary Question source
// @Description Provenance and related topics of a catalog question
// @Tags catalog
// @Produce json
// @Param id path string true "Question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{id}/source [get]
func (c *CatalogController) GetSource(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, ok := c.Catalog.Lookup(id); !ok {
		util.HandleError(ctx, util.ErrQuestionNotFound)
		return
	}

	source, _ := c.Catalog.Source(id)
	util.Success(ctx, source)
}
