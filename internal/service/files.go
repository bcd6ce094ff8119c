package service

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/complior/engine/internal/apperr"
)

// resolvePath maps a project-relative path to an absolute one, rejecting
// any path that escapes the project root.
func (s *Service) resolvePath(relPath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", apperr.Validation("invalid_path", "path must be project-relative and may not escape the project root")
	}
	return filepath.Join(s.State.ProjectPath, cleaned), nil
}

// FileCreate writes a new file, failing if one already exists at that path.
func (s *Service) FileCreate(path, content string) error {
	abs, err := s.resolvePath(path)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(abs); statErr == nil {
		return apperr.Validation("file_exists", "a file already exists at this path")
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return apperr.ScanErr("file_create_failed", "failed to create parent directory", err)
	}
	if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
		return apperr.ScanErr("file_create_failed", "failed to write file", err)
	}
	return nil
}

// FileEdit overwrites an existing file's content.
func (s *Service) FileEdit(path, content string) error {
	abs, err := s.resolvePath(path)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		return apperr.NotFound("file_not_found", "no file at this path")
	}
	tmp := abs + ".complior-tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return apperr.ScanErr("file_edit_failed", "failed to write file", err)
	}
	if err := os.Rename(tmp, abs); err != nil {
		return apperr.ScanErr("file_edit_failed", "failed to replace file", err)
	}
	return nil
}

// FileRead returns a file's content.
func (s *Service) FileRead(path string) (string, error) {
	abs, err := s.resolvePath(path)
	if err != nil {
		return "", err
	}
	data, readErr := os.ReadFile(abs)
	if os.IsNotExist(readErr) {
		return "", apperr.NotFound("file_not_found", "no file at this path")
	}
	if readErr != nil {
		return "", apperr.ScanErr("file_read_failed", "failed to read file", readErr)
	}
	return string(data), nil
}

// FileList lists project-relative paths under dir (non-recursive), or the
// project root if dir is empty.
func (s *Service) FileList(dir string) ([]string, error) {
	abs, err := s.resolvePath(dir)
	if err != nil {
		return nil, err
	}
	entries, readErr := os.ReadDir(abs)
	if os.IsNotExist(readErr) {
		return nil, apperr.NotFound("dir_not_found", "no directory at this path")
	}
	if readErr != nil {
		return nil, apperr.ScanErr("file_list_failed", "failed to list directory", readErr)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		out = append(out, name)
	}
	return out, nil
}
