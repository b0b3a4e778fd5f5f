package handlers

import (
	"net/http"

	"pcbtrack/middleware"
	"pcbtrack/utils"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := getServices().Auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, user)
}

func Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "username and password are required")
		return
	}

	result, err := getServices().Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, result)
}

func Profile(c *gin.Context) {
	profile, err := getServices().Users.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, profile)
}

func ChangePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "old and new passwords are required")
		return
	}

	if err := getServices().Users.ChangePassword(c.Request.Context(), middleware.UserID(c), req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func GetSettings(c *gin.Context) {
	settings, err := getServices().Users.GetSettings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, settings)
}

func UpdateSettings(c *gin.Context) {
	var req struct {
		HidePrices bool `json:"hide_prices"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := getServices().Users.UpdateSettings(c.Request.Context(), middleware.UserID(c), req.HidePrices)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, settings)
}
