package handlers

import (
	"net/http"

	"pcbtrack/middleware"
	"pcbtrack/utils"

	"github.com/gin-gonic/gin"
)

func StartUpload(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		TotalFiles int `json:"total_files"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	info, err := getServices().Uploads.Start(c.Request.Context(), projectID, middleware.UserID(c), req.TotalFiles)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, info)
}

func UploadFiles(c *gin.Context) {
	sessionID := c.Param("sessionId")

	form, err := c.MultipartForm()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "multipart form required")
		return
	}
	files := form.File["files"]
	paths := form.Value["paths"]

	progress, err := getServices().Uploads.AcceptFiles(c.Request.Context(), sessionID, middleware.UserID(c), files, paths)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, progress)
}

func CompleteUpload(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if err := getServices().Uploads.Complete(c.Request.Context(), sessionID, middleware.UserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func CancelUpload(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if err := getServices().Uploads.Cancel(c.Request.Context(), sessionID, middleware.UserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}
