package controller

import (
	"bio_olymp_backend/internal/repository"
	"bio_olymp_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Store       repository.BlobStore
	StorageType string
}

func NewHealthController(store repository.BlobStore, storageType string) *HealthController {
	return &HealthController{Store: store, StorageType: storageType}
}

// @Summary Health check
// @Description Checks that the progress store is reachable
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	if err := c.Store.Ping(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"storage": c.StorageType,
		},
	})
}
