package handlers

import (
	"net/http"

	"pcbtrack/middleware"
	"pcbtrack/services"
	"pcbtrack/utils"

	"github.com/gin-gonic/gin"
)

func ListProjects(c *gin.Context) {
	projects, err := getServices().Projects.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, projects)
}

func GetProject(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	detail, err := getServices().Projects.Get(c.Request.Context(), projectID, middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, detail)
}

func CreateProject(c *gin.Context) {
	var input services.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "project name is required")
		return
	}

	project, err := getServices().Projects.Create(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, project)
}

func UpdateProject(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var input services.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "project name is required")
		return
	}

	project, err := getServices().Projects.Update(c.Request.Context(), projectID, middleware.UserID(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, project)
}

func DeleteProject(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := getServices().Projects.Delete(c.Request.Context(), projectID, middleware.UserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func UserStats(c *gin.Context) {
	stats, err := getServices().Projects.Stats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, stats)
}
