package handlers

import (
	"net/http"

	"pcbtrack/services"
	"pcbtrack/utils"

	"github.com/gin-gonic/gin"
)

func CatalogOptions(c *gin.Context) {
	options, err := getServices().Catalog.Options(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, options)
}

func ListComponents(c *gin.Context) {
	components, err := getServices().Catalog.ListComponents(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, components)
}

func CreateComponent(c *gin.Context) {
	var input services.ComponentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "component name is required")
		return
	}
	component, err := getServices().Catalog.CreateComponent(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, component)
}

func UpdateComponent(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var input services.ComponentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "component name is required")
		return
	}
	if err := getServices().Catalog.UpdateComponent(c.Request.Context(), id, input); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func DeleteComponent(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := getServices().Catalog.DeleteComponent(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func CreateStatusOption(c *gin.Context) {
	var input services.StatusOptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "value and label are required")
		return
	}
	option, err := getServices().Catalog.CreateStatus(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, option)
}

func UpdateStatusOption(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var input services.StatusOptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "value and label are required")
		return
	}
	if err := getServices().Catalog.UpdateStatus(c.Request.Context(), id, input); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func DeleteStatusOption(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := getServices().Catalog.DeleteStatus(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func CreateSourceOption(c *gin.Context) {
	var input services.NamedOptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "name is required")
		return
	}
	option, err := getServices().Catalog.CreateSource(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, option)
}

func UpdateSourceOption(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var input services.NamedOptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "name is required")
		return
	}
	if err := getServices().Catalog.UpdateSource(c.Request.Context(), id, input); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func DeleteSourceOption(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := getServices().Catalog.DeleteSource(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func CreateBoardTypeOption(c *gin.Context) {
	var input services.NamedOptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "name is required")
		return
	}
	option, err := getServices().Catalog.CreateBoardType(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, option)
}

func UpdateBoardTypeOption(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var input services.NamedOptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "name is required")
		return
	}
	if err := getServices().Catalog.UpdateBoardType(c.Request.Context(), id, input); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func DeleteBoardTypeOption(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := getServices().Catalog.DeleteBoardType(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}
