package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental-backend/services"
	"rental-backend/utils"
)

type RoomController struct {
	Svc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{Svc: svc}
}

// parseID reads a numeric :id param. Non-numeric ids behave like a
// missing record.
func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseParamID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// GetRoom handles GET /room/:id.
func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSONFail(c, services.ErrRoomNotFound)
		return
	}

	detail, err := ctrl.Svc.GetRoom(id)
	if err != nil {
		utils.JSONFail(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, detail)
}
