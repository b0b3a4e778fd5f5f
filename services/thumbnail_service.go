package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"pcbtrack/config"

	"github.com/disintegration/imaging"
)

var previewableExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// ThumbnailService renders downscaled previews for image files in a project.
// Thumbnails are cached on disk keyed by the source path, so repeat views
// skip decoding.
type ThumbnailService interface {
	ForProjectFile(ctx context.Context, projectID uint, userID uint, relPath string) (string, error)
	ForShareFile(ctx context.Context, shareID string, viewerToken string, relPath string) (string, error)
}

type thumbnailService struct {
	access   AccessService
	shares   ShareService
	fileServ FileService
}

func NewThumbnailService(access AccessService, shares ShareService, files FileService) ThumbnailService {
	return &thumbnailService{access: access, shares: shares, fileServ: files}
}

func (s *thumbnailService) ForProjectFile(ctx context.Context, projectID uint, userID uint, relPath string) (string, error) {
	project, _, err := s.access.Resolve(ctx, projectID, userID)
	if err != nil {
		return "", err
	}
	src, err := s.fileServ.ResolveFile(ctx, projectID, userID, relPath)
	if err != nil {
		return "", err
	}
	return renderThumbnail(project.StorageKey, relPath, src)
}

func (s *thumbnailService) ForShareFile(ctx context.Context, shareID string, viewerToken string, relPath string) (string, error) {
	src, err := s.shares.ResolveFile(ctx, shareID, viewerToken, relPath)
	if err != nil {
		return "", err
	}
	// Cache key uses the share id so shared previews never collide with the
	// owner's own cache namespace.
	return renderThumbnail("share-"+shareID, relPath, src)
}

func renderThumbnail(cacheScope, relPath, src string) (string, error) {
	ext := strings.ToLower(filepath.Ext(src))
	if !previewableExtensions[ext] {
		return "", newAppError(http.StatusBadRequest, "file is not a previewable image")
	}

	sum := sha256.Sum256([]byte(relPath))
	cached := filepath.Join(thumbnailDir(cacheScope), hex.EncodeToString(sum[:16])+".png")

	srcInfo, err := os.Stat(src)
	if err != nil {
		return "", wrapAppError(http.StatusInternalServerError, "failed to read image", err)
	}
	if cachedInfo, err := os.Stat(cached); err == nil && cachedInfo.ModTime().After(srcInfo.ModTime()) {
		return cached, nil
	}

	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", wrapAppError(http.StatusInternalServerError, "failed to decode image", err)
	}

	max := config.AppConfig.Share.ThumbnailMaxPixels
	thumb := imaging.Fit(img, max, max, imaging.Lanczos)

	if err := os.MkdirAll(filepath.Dir(cached), 0o755); err != nil {
		return "", wrapAppError(http.StatusInternalServerError, "failed to create thumbnail directory", err)
	}
	if err := imaging.Save(thumb, cached); err != nil {
		return "", wrapAppError(http.StatusInternalServerError, "failed to save thumbnail", err)
	}
	return cached, nil
}
