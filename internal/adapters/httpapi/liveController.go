package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type LiveController struct{ lc LiveUseCase }

func NewLiveController(lc LiveUseCase) *LiveController { return &LiveController{lc: lc} }

func (ctl *LiveController) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.lc.Snapshot())
}

func (ctl *LiveController) TogglePresence(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presence": ctl.lc.TogglePresence()})
}
