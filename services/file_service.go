package services

import (
	"archive/zip"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"pcbtrack/repositories"
)

type ProjectFiles struct {
	ProjectID  uint     `json:"project_id"`
	Permission string   `json:"permission"`
	Tree       FileTree `json:"tree"`
}

type FileService interface {
	Tree(ctx context.Context, projectID uint, userID uint) (ProjectFiles, error)
	// ResolveFile maps a tree path to an absolute path after an access
	// check. Paths outside the project directory are rejected.
	ResolveFile(ctx context.Context, projectID uint, userID uint, relPath string) (string, error)
	// WriteZip streams the project's published files as a zip archive.
	WriteZip(ctx context.Context, projectID uint, userID uint, w io.Writer) (string, error)
}

type fileService struct {
	users  repositories.UserRepository
	access AccessService
}

func NewFileService(users repositories.UserRepository, access AccessService) FileService {
	return &fileService{users: users, access: access}
}

func (s *fileService) resolveDir(ctx context.Context, projectID uint, userID uint) (string, string, error) {
	project, permission, err := s.access.Resolve(ctx, projectID, userID)
	if err != nil {
		return "", "", err
	}
	owner, err := s.users.GetByID(ctx, nil, project.UserID)
	if err != nil {
		return "", "", wrapAppError(http.StatusInternalServerError, "failed to load project owner", err)
	}
	return projectDir(owner.Username, project.StorageKey), permission, nil
}

func (s *fileService) Tree(ctx context.Context, projectID uint, userID uint) (ProjectFiles, error) {
	dir, permission, err := s.resolveDir(ctx, projectID, userID)
	if err != nil {
		return ProjectFiles{}, err
	}
	tree, err := BuildFileTree(dir)
	if err != nil {
		return ProjectFiles{}, wrapAppError(http.StatusInternalServerError, "failed to read project files", err)
	}
	return ProjectFiles{ProjectID: projectID, Permission: permission, Tree: tree}, nil
}

func (s *fileService) ResolveFile(ctx context.Context, projectID uint, userID uint, relPath string) (string, error) {
	dir, _, err := s.resolveDir(ctx, projectID, userID)
	if err != nil {
		return "", err
	}
	return resolveFileIn(dir, relPath)
}

func (s *fileService) WriteZip(ctx context.Context, projectID uint, userID uint, w io.Writer) (string, error) {
	project, _, err := s.access.Resolve(ctx, projectID, userID)
	if err != nil {
		return "", err
	}
	owner, err := s.users.GetByID(ctx, nil, project.UserID)
	if err != nil {
		return "", wrapAppError(http.StatusInternalServerError, "failed to load project owner", err)
	}

	dir := projectDir(owner.Username, project.StorageKey)
	if err := writeDirZip(dir, w); err != nil {
		return "", wrapAppError(http.StatusInternalServerError, "failed to build archive", err)
	}
	return sanitizeStorageName(project.Name) + ".zip", nil
}

func resolveFileIn(dir, relPath string) (string, error) {
	abs, err := secureJoin(dir, relPath)
	if err != nil {
		return "", newAppError(http.StatusBadRequest, "invalid file path")
	}
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return "", newAppError(http.StatusNotFound, "file not found")
	}
	if err != nil {
		return "", wrapAppError(http.StatusInternalServerError, "failed to read file", err)
	}
	if info.IsDir() {
		return "", newAppError(http.StatusBadRequest, "path is a directory")
	}
	return abs, nil
}

func writeDirZip(dir string, w io.Writer) error {
	zw := zip.NewWriter(w)
	defer zw.Close()

	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && p == dir {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		entry, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(entry, f)
		return err
	})
}
