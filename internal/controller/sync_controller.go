package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/service"
)

type SyncController struct {
	syncSvc service.SyncService
	userSvc service.UserService
}

func NewSyncController(syncSvc service.SyncService, userSvc service.UserService) *SyncController {
	return &SyncController{syncSvc: syncSvc, userSvc: userSvc}
}

func (ctrl *SyncController) RegisterRoutes(api *gin.RouterGroup) {
	sync := api.Group("/sync")
	sync.POST("/drain", ctrl.Drain)
	sync.POST("/pull", ctrl.Pull)
	sync.GET("/pending", ctrl.Pending)
	sync.GET("/connection", ctrl.Connection)
}

func (ctrl *SyncController) Drain(c *gin.Context) {
	synced, err := ctrl.syncSvc.Drain(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SyncResult{Synced: synced})
}

func (ctrl *SyncController) Pull(c *gin.Context) {
	user := activeUser(c, ctrl.userSvc)
	if user == nil {
		return
	}
	pulled, err := ctrl.syncSvc.Pull(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SyncResult{Synced: pulled})
}

func (ctrl *SyncController) Pending(c *gin.Context) {
	count, err := ctrl.syncSvc.PendingCount()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PendingCountResponse{PendingCount: count})
}

func (ctrl *SyncController) Connection(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ConnectionResponse{Connected: ctrl.syncSvc.CheckConnection(c.Request.Context())})
}
