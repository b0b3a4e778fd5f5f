package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pcbtrack/config"
	"pcbtrack/logger"
	"pcbtrack/models"
	"pcbtrack/repositories"
	"pcbtrack/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UploadSessionInfo struct {
	SessionID     string `json:"session_id"`
	ProjectID     uint   `json:"project_id"`
	TotalFiles    int    `json:"total_files"`
	MaxFiles      int    `json:"max_files"`
	MaxFileSizeMB int64  `json:"max_file_size_mb"`
}

type UploadProgress struct {
	SessionID     string   `json:"session_id"`
	Accepted      int      `json:"accepted"`
	Rejected      int      `json:"rejected"`
	UploadedFiles int      `json:"uploaded_files"`
	TotalFiles    int      `json:"total_files"`
	IsComplete    bool     `json:"is_complete"`
	FileList      []string `json:"file_list"`
}

type UploadService interface {
	// Start opens an upload session for totalFiles files and creates its
	// staging directory. Requires write access to the project.
	Start(ctx context.Context, projectID uint, userID uint, totalFiles int) (UploadSessionInfo, error)
	// AcceptFiles stores one batch of files into the session's staging
	// directory. paths carries each file's relative path inside the
	// project, aligned with files; the multipart filename alone cannot,
	// since Go strips any directory part from it. When paths is shorter
	// than files, the bare filename is used. An oversized file is dropped
	// and counted rejected without failing the rest of the batch.
	AcceptFiles(ctx context.Context, sessionID string, userID uint, files []*multipart.FileHeader, paths []string) (UploadProgress, error)
	// Complete atomically replaces the project's published files with the
	// staged set. The previous contents are discarded, not merged. It
	// refuses until the declared total has been received, and re-checks
	// write access in case it was revoked after Start.
	Complete(ctx context.Context, sessionID string, userID uint) error
	Cancel(ctx context.Context, sessionID string, userID uint) error
}

type uploadService struct {
	txManager repositories.TxManager
	users     repositories.UserRepository
	sessions  repositories.UploadSessionRepository
	access    AccessService

	// completeLocks serializes Complete per project so two finishing
	// sessions cannot interleave the remove and rename steps.
	completeLocks sync.Map
}

func NewUploadService(txManager repositories.TxManager, users repositories.UserRepository, sessions repositories.UploadSessionRepository, access AccessService) UploadService {
	return &uploadService{txManager: txManager, users: users, sessions: sessions, access: access}
}

func (s *uploadService) projectLock(projectID uint) *sync.Mutex {
	lock, _ := s.completeLocks.LoadOrStore(projectID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *uploadService) Start(ctx context.Context, projectID uint, userID uint, totalFiles int) (UploadSessionInfo, error) {
	storage := config.AppConfig.Storage
	if totalFiles < 1 {
		return UploadSessionInfo{}, newAppError(http.StatusBadRequest, "total_files must be at least 1")
	}
	if totalFiles > storage.MaxFilesPerUpload {
		return UploadSessionInfo{}, newAppErrorWithData(http.StatusBadRequest, "too many files for one upload session",
			map[string]interface{}{"max_files": storage.MaxFilesPerUpload})
	}

	project, err := s.access.RequireWrite(ctx, projectID, userID)
	if err != nil {
		return UploadSessionInfo{}, err
	}
	owner, err := s.users.GetByID(ctx, nil, project.UserID)
	if err != nil {
		return UploadSessionInfo{}, wrapAppError(http.StatusInternalServerError, "failed to load project owner", err)
	}

	sessionID := uuid.NewString()
	tempDir := sessionTempDir(owner.Username, sessionID, project.StorageKey)
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return UploadSessionInfo{}, wrapAppError(http.StatusInternalServerError, "failed to create staging directory", err)
	}

	session := models.UploadSession{
		ID:         sessionID,
		UserID:     userID,
		ProjectID:  projectID,
		TempDir:    tempDir,
		TotalFiles: totalFiles,
		FileList:   "[]",
		CreatedAt:  utils.Now(),
	}
	if err := s.sessions.Create(ctx, nil, &session); err != nil {
		os.RemoveAll(tempDir)
		return UploadSessionInfo{}, wrapAppError(http.StatusInternalServerError, "failed to create upload session", err)
	}

	return UploadSessionInfo{
		SessionID:     sessionID,
		ProjectID:     projectID,
		TotalFiles:    totalFiles,
		MaxFiles:      storage.MaxFilesPerUpload,
		MaxFileSizeMB: storage.MaxFileSizeMB,
	}, nil
}

func (s *uploadService) loadOwnedSession(ctx context.Context, sessionID string, userID uint) (models.UploadSession, error) {
	session, err := s.sessions.GetByID(ctx, nil, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UploadSession{}, newAppError(http.StatusNotFound, "upload session not found")
	}
	if err != nil {
		return models.UploadSession{}, wrapAppError(http.StatusInternalServerError, "failed to load upload session", err)
	}
	if session.UserID != userID {
		return models.UploadSession{}, newAppError(http.StatusForbidden, "upload session belongs to another user")
	}
	return session, nil
}

func (s *uploadService) AcceptFiles(ctx context.Context, sessionID string, userID uint, files []*multipart.FileHeader, paths []string) (UploadProgress, error) {
	session, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return UploadProgress{}, err
	}
	if len(files) == 0 {
		return UploadProgress{}, newAppError(http.StatusBadRequest, "no files in request")
	}

	storage := config.AppConfig.Storage
	if session.UploadedFiles+len(files) > session.TotalFiles {
		return UploadProgress{}, newAppError(http.StatusBadRequest, "batch exceeds the declared file count")
	}
	maxBytes := int64(storage.MaxFileSizeMB) * 1024 * 1024

	var fileList []string
	if err := json.Unmarshal([]byte(session.FileList), &fileList); err != nil {
		fileList = nil
	}

	accepted, rejected := 0, 0
	for i, header := range files {
		if header.Size > maxBytes {
			rejected++
			logger.Infof("upload session %s rejected oversized file %s", sessionID, header.Filename)
			continue
		}

		rel := filepath.ToSlash(header.Filename)
		if i < len(paths) && strings.TrimSpace(paths[i]) != "" {
			rel = filepath.ToSlash(paths[i])
		}
		dest, err := secureJoin(session.TempDir, rel)
		if err != nil {
			return UploadProgress{}, newAppError(http.StatusBadRequest, "invalid file path")
		}

		if err := saveUploadedFile(header, dest, maxBytes); err != nil {
			// The header length is client supplied; a file that turns out
			// oversized on disk is dropped, the rest of the batch stands.
			if errors.Is(err, errFileTooLarge) {
				rejected++
				logger.Infof("upload session %s rejected oversized file %s", sessionID, header.Filename)
				continue
			}
			return UploadProgress{}, wrapAppError(http.StatusInternalServerError, "failed to store file", err)
		}
		accepted++
		fileList = append(fileList, strings.TrimPrefix(rel, "/"))
	}

	encoded, err := json.Marshal(fileList)
	if err != nil {
		return UploadProgress{}, wrapAppError(http.StatusInternalServerError, "failed to record file list", err)
	}
	uploaded := session.UploadedFiles + accepted
	if err := s.sessions.UpdateProgress(ctx, nil, sessionID, uploaded, string(encoded)); err != nil {
		return UploadProgress{}, wrapAppError(http.StatusInternalServerError, "failed to update upload session", err)
	}

	return UploadProgress{
		SessionID:     sessionID,
		Accepted:      accepted,
		Rejected:      rejected,
		UploadedFiles: uploaded,
		TotalFiles:    session.TotalFiles,
		IsComplete:    uploaded >= session.TotalFiles,
		FileList:      fileList,
	}, nil
}

var errFileTooLarge = errors.New("file exceeds the size limit")

// saveUploadedFile streams one part to disk. The size is enforced again while
// copying because the multipart header length is client supplied.
func saveUploadedFile(header *multipart.FileHeader, dest string, maxBytes int64) error {
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	written, err := io.Copy(out, io.LimitReader(src, maxBytes+1))
	if err != nil {
		os.Remove(dest)
		return err
	}
	if written > maxBytes {
		os.Remove(dest)
		return errFileTooLarge
	}
	return nil
}

func (s *uploadService) Complete(ctx context.Context, sessionID string, userID uint) error {
	session, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if session.UploadedFiles < session.TotalFiles {
		return newAppErrorWithData(http.StatusBadRequest, "upload is not complete",
			map[string]interface{}{"uploaded_files": session.UploadedFiles, "total_files": session.TotalFiles})
	}

	// Access may have been revoked since Start; the original grant is not
	// trusted here.
	project, err := s.access.RequireWrite(ctx, session.ProjectID, userID)
	if err != nil {
		return err
	}
	owner, err := s.users.GetByID(ctx, nil, project.UserID)
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load project owner", err)
	}

	lock := s.projectLock(session.ProjectID)
	lock.Lock()
	defer lock.Unlock()

	finalDir := projectDir(owner.Username, project.StorageKey)
	if err := os.RemoveAll(finalDir); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to clear previous files", err)
	}
	if err := os.MkdirAll(filepath.Dir(finalDir), 0o755); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to prepare project directory", err)
	}
	if err := os.Rename(session.TempDir, finalDir); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to promote uploaded files", err)
	}

	if err := s.sessions.DeleteByID(ctx, nil, sessionID); err != nil {
		// Files are already promoted; the sweeper will reap the row.
		logger.Errorf("failed to delete upload session %s: %v", sessionID, err)
	}
	logger.Infof("upload session %s promoted %d files to project %d", sessionID, session.UploadedFiles, session.ProjectID)
	return nil
}

func (s *uploadService) Cancel(ctx context.Context, sessionID string, userID uint) error {
	session, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(session.TempDir); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to remove staging directory", err)
	}
	if err := s.sessions.DeleteByID(ctx, nil, sessionID); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to delete upload session", err)
	}
	return nil
}
