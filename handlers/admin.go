package handlers

import (
	"net/http"

	"pcbtrack/middleware"
	"pcbtrack/services"
	"pcbtrack/utils"

	"github.com/gin-gonic/gin"
)

func AdminListUsers(c *gin.Context) {
	users, err := getServices().Admin.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, users)
}

func AdminCreateUser(c *gin.Context) {
	var input services.AdminUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "username is required")
		return
	}
	user, err := getServices().Admin.CreateUser(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, user)
}

func AdminUpdateUser(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var input services.AdminUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "username is required")
		return
	}
	user, err := getServices().Admin.UpdateUser(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, user)
}

func AdminResetPassword(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "password is required")
		return
	}
	if err := getServices().Admin.ResetPassword(c.Request.Context(), userID, req.Password); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func AdminDeleteUser(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := getServices().Admin.DeleteUser(c.Request.Context(), userID, middleware.UserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func AdminStats(c *gin.Context) {
	stats, err := getServices().Admin.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, stats)
}
