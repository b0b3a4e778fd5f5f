package handlers

import (
	"net/http"

	"pcbtrack/middleware"
	"pcbtrack/utils"

	"github.com/gin-gonic/gin"
)

func ProjectFileTree(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	tree, err := getServices().Files.Tree(c.Request.Context(), projectID, middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, tree)
}

func DownloadProjectFile(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	relPath := c.Query("path")
	if relPath == "" {
		utils.Error(c, http.StatusBadRequest, "path is required")
		return
	}

	abs, err := getServices().Files.ResolveFile(c.Request.Context(), projectID, middleware.UserID(c), relPath)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.FileAttachment(abs, filepathBase(relPath))
}

func DownloadProjectZip(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", `attachment; filename="project.zip"`)
	if _, err := getServices().Files.WriteZip(c.Request.Context(), projectID, middleware.UserID(c), c.Writer); err != nil {
		if !c.Writer.Written() {
			c.Header("Content-Type", "application/json; charset=utf-8")
			c.Header("Content-Disposition", "")
			respondServiceError(c, err)
		}
		return
	}
}

func ProjectFileThumbnail(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	relPath := c.Query("path")
	if relPath == "" {
		utils.Error(c, http.StatusBadRequest, "path is required")
		return
	}

	thumb, err := getServices().Thumbnails.ForProjectFile(c.Request.Context(), projectID, middleware.UserID(c), relPath)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.File(thumb)
}

func filepathBase(relPath string) string {
	base := relPath
	for i := len(relPath) - 1; i >= 0; i-- {
		if relPath[i] == '/' {
			base = relPath[i+1:]
			break
		}
	}
	return base
}
