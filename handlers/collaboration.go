package handlers

import (
	"net/http"

	"pcbtrack/middleware"
	"pcbtrack/utils"

	"github.com/gin-gonic/gin"
)

func AddCollaborator(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		CollaboratorID uint   `json:"collaborator_id" binding:"required"`
		Permission     string `json:"permission"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "collaborator_id is required")
		return
	}
	if req.Permission == "" {
		req.Permission = "read"
	}

	collab, err := getServices().Collaborations.Add(c.Request.Context(), projectID, middleware.UserID(c), req.CollaboratorID, req.Permission)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, collab)
}

func ListCollaborators(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	entries, err := getServices().Collaborations.List(c.Request.Context(), projectID, middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, entries)
}

func UpdateCollaboratorPermission(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	collaborationID, ok := parseUintParam(c, "collabId")
	if !ok {
		return
	}
	var req struct {
		Permission string `json:"permission" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "permission is required")
		return
	}

	if err := getServices().Collaborations.UpdatePermission(c.Request.Context(), projectID, middleware.UserID(c), collaborationID, req.Permission); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func RemoveCollaborator(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	collaboratorID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}

	if err := getServices().Collaborations.Remove(c.Request.Context(), projectID, middleware.UserID(c), collaboratorID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func AvailableCollaborators(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	users, err := getServices().Collaborations.AvailableCollaborators(c.Request.Context(), projectID, middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, users)
}
