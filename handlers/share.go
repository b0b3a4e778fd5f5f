package handlers

import (
	"net/http"

	"pcbtrack/config"
	"pcbtrack/middleware"
	"pcbtrack/services"
	"pcbtrack/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const viewerCookie = "share_viewer"

// viewerToken identifies one anonymous browser session. It is minted on
// first contact and carried in a cookie; API clients may send it in the
// X-Share-Viewer header instead.
func viewerToken(c *gin.Context, create bool) string {
	if token, err := c.Cookie(viewerCookie); err == nil && token != "" {
		return token
	}
	if token := c.GetHeader("X-Share-Viewer"); token != "" {
		return token
	}
	if !create {
		return ""
	}

	token := uuid.NewString()
	maxAge := config.AppConfig.Share.VerifiedTTLHours * 3600
	c.SetCookie(viewerCookie, token, maxAge, "/", "", false, true)
	return token
}

func CreateShare(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var input services.ShareInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	share, err := getServices().Shares.Create(c.Request.Context(), projectID, middleware.UserID(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, share)
}

func GetProjectShare(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	share, err := getServices().Shares.GetForProject(c.Request.Context(), projectID, middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, share)
}

func CancelShare(c *gin.Context) {
	shareID := c.Param("shareId")
	if err := getServices().Shares.Cancel(c.Request.Context(), shareID, middleware.UserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func ResolveShare(c *gin.Context) {
	shareID := c.Param("shareId")
	meta, err := getServices().Shares.Resolve(c.Request.Context(), shareID, viewerToken(c, true))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, meta)
}

func VerifySharePassword(c *gin.Context) {
	shareID := c.Param("shareId")
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := getServices().Shares.VerifyPassword(c.Request.Context(), shareID, viewerToken(c, true), req.Password); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

func ViewShare(c *gin.Context) {
	shareID := c.Param("shareId")
	content, err := getServices().Shares.RegisterView(c.Request.Context(), shareID, viewerToken(c, false))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, content)
}

func DownloadShareFile(c *gin.Context) {
	shareID := c.Param("shareId")
	relPath := c.Query("path")
	if relPath == "" {
		utils.Error(c, http.StatusBadRequest, "path is required")
		return
	}

	abs, err := getServices().Shares.ResolveFile(c.Request.Context(), shareID, viewerToken(c, false), relPath)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.FileAttachment(abs, filepathBase(relPath))
}

func DownloadShareZip(c *gin.Context) {
	shareID := c.Param("shareId")

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", `attachment; filename="project.zip"`)
	if _, err := getServices().Shares.WriteZip(c.Request.Context(), shareID, viewerToken(c, false), c.Writer); err != nil {
		if !c.Writer.Written() {
			c.Header("Content-Type", "application/json; charset=utf-8")
			c.Header("Content-Disposition", "")
			respondServiceError(c, err)
		}
		return
	}
}

func ShareFileThumbnail(c *gin.Context) {
	shareID := c.Param("shareId")
	relPath := c.Query("path")
	if relPath == "" {
		utils.Error(c, http.StatusBadRequest, "path is required")
		return
	}

	thumb, err := getServices().Thumbnails.ForShareFile(c.Request.Context(), shareID, viewerToken(c, false), relPath)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.File(thumb)
}
