package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"pcbtrack/config"
)

var errPathOutsideRoot = errors.New("path escapes storage root")

func uploadRoot() string {
	return config.AppConfig.Storage.UploadDir
}

func userDir(username string) string {
	return filepath.Join(uploadRoot(), username)
}

// projectDir is the promoted location of a project's files. The storage key
// never changes after creation, so this path survives project renames.
func projectDir(username, storageKey string) string {
	return filepath.Join(userDir(username), storageKey)
}

// sessionTempDir is the staging area for one upload session. The temp_ prefix
// keeps staging directories out of user-visible folder listings.
func sessionTempDir(username, sessionID, storageKey string) string {
	return filepath.Join(userDir(username), fmt.Sprintf("temp_%s_%s", sessionID, storageKey))
}

func thumbnailDir(storageKey string) string {
	return filepath.Join(config.AppConfig.Storage.ThumbnailDir, storageKey)
}

// sanitizeStorageName reduces a display name to characters safe for a
// directory name.
func sanitizeStorageName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		out = "project"
	}
	return out
}

// secureJoin joins a client-supplied relative path onto root and rejects any
// result outside root.
func secureJoin(root, rel string) (string, error) {
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return "", errPathOutsideRoot
	}
	cleaned := filepath.Clean(filepath.Join(root, filepath.FromSlash(rel)))
	if cleaned != root && !strings.HasPrefix(cleaned, root+string(filepath.Separator)) {
		return "", errPathOutsideRoot
	}
	return cleaned, nil
}
