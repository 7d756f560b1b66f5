package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backend/services"
	"rental-backend/utils"
)

type UserController struct {
	Svc *services.ProfileService
}

func NewUserController(svc *services.ProfileService) *UserController {
	return &UserController{Svc: svc}
}

// Create handles POST /api/users.
func (ctrl *UserController) Create(c *gin.Context) {
	var req services.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONBadRequest(c, "invalid user payload")
		return
	}

	profile, err := ctrl.Svc.CreateUser(req)
	if err != nil {
		utils.JSONFail(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, profile)
}

// Update handles PUT /api/users/:id where :id is the account id.
func (ctrl *UserController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSONFail(c, services.ErrUserNotFound)
		return
	}

	var req services.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONBadRequest(c, "invalid user payload")
		return
	}

	profile, err := ctrl.Svc.UpdateUser(id, req)
	if err != nil {
		utils.JSONFail(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, profile)
}
