package services

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"pcbtrack/utils"
)

// FileTree is one directory level: subfolders with their own nested trees,
// and the files at this level. Both lists are lexicographic by name.
type FileTree struct {
	Folders []FolderNode `json:"folders"`
	Files   []FileNode   `json:"files"`
}

type FolderNode struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Type     string   `json:"type"`
	Children FileTree `json:"children"`
}

type FileNode struct {
	Name          string `json:"name"`
	Path          string `json:"path"`
	Type          string `json:"type"`
	Size          int64  `json:"size"`
	SizeFormatted string `json:"size_formatted"`
	Modified      string `json:"modified"`
	Extension     string `json:"extension"`
}

func emptyTree() FileTree {
	return FileTree{Folders: []FolderNode{}, Files: []FileNode{}}
}

// BuildFileTree walks root and returns its contents level by level. Paths
// are slash separated and relative to root. A missing root yields an empty
// tree rather than an error.
func BuildFileTree(root string) (FileTree, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return emptyTree(), nil
	}
	if err != nil {
		return FileTree{}, err
	}
	if !info.IsDir() {
		return emptyTree(), nil
	}
	return buildTreeLevel(root, "")
}

func buildTreeLevel(dir, rel string) (FileTree, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return FileTree{}, err
	}

	tree := emptyTree()
	for _, entry := range entries {
		name := entry.Name()
		childRel := path.Join(rel, name)
		if entry.IsDir() {
			children, err := buildTreeLevel(filepath.Join(dir, name), childRel)
			if err != nil {
				return FileTree{}, err
			}
			tree.Folders = append(tree.Folders, FolderNode{
				Name:     name,
				Path:     childRel,
				Type:     "folder",
				Children: children,
			})
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return FileTree{}, err
		}
		tree.Files = append(tree.Files, FileNode{
			Name:          name,
			Path:          childRel,
			Type:          "file",
			Size:          info.Size(),
			SizeFormatted: FormatFileSize(info.Size()),
			Modified:      utils.InAppZone(info.ModTime()).Format("2006-01-02 15:04:05"),
			Extension:     strings.ToLower(filepath.Ext(name)),
		})
	}
	// os.ReadDir already sorts by name, so both lists come out ordered.
	return tree, nil
}

func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	value := float64(size)
	for _, suffix := range []string{"KB", "MB", "GB", "TB"} {
		value /= unit
		if value < unit || suffix == "TB" {
			return fmt.Sprintf("%.1f %s", value, suffix)
		}
	}
	return fmt.Sprintf("%d B", size)
}
