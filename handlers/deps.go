package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"pcbtrack/logger"
	"pcbtrack/services"
	"pcbtrack/utils"

	"github.com/gin-gonic/gin"
)

var container *services.Container

func SetServices(c *services.Container) {
	container = c
}

func getServices() *services.Container {
	return container
}

func respondServiceError(c *gin.Context, err error) {
	var appErr *services.AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Err)
		}
		if appErr.Data != nil {
			utils.ErrorWithData(c, appErr.HTTPCode, appErr.Message, appErr.Data)
			return
		}
		utils.Error(c, appErr.HTTPCode, appErr.Message)
		return
	}

	logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	utils.Error(c, http.StatusInternalServerError, "internal server error")
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(value), true
}
