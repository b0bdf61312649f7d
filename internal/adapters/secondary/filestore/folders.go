package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"essay-grader-service/internal/core/domain"
	ports "essay-grader-service/internal/core/ports/output"
)

// FolderStore keeps essay artifacts as plain files in one directory per folder.
type FolderStore struct {
	root string
}

func NewFolderStore(root string) (*FolderStore, error) {
	if root == "" {
		root = "./essays"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create essays root: %w", err)
	}
	return &FolderStore{root: root}, nil
}

var _ ports.EssayFolderStore = (*FolderStore)(nil)

// Root is the directory the folders live in.
func (s *FolderStore) Root() string { return s.root }

func (s *FolderStore) ListFolders(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	folders := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			folders = append(folders, e.Name())
		}
	}
	return folders, nil
}

func (s *FolderStore) CreateFolder(ctx context.Context, folder string) error {
	if err := domain.ValidatePathName(folder); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(s.root, folder), 0o755); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

// ListFiles returns regular files in lexical order, as os.ReadDir sorts them.
func (s *FolderStore) ListFiles(ctx context.Context, folder string) ([]string, error) {
	if err := domain.ValidatePathName(folder); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.root, folder))
	if err != nil {
		if isNotExist(err) {
			return nil, domain.ErrFolderNotFound
		}
		return nil, fmt.Errorf("list folder: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

func (s *FolderStore) ReadFile(ctx context.Context, folder, name string) ([]byte, error) {
	path, err := s.filePath(folder, name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if isNotExist(err) {
			return nil, domain.ErrEssayNotFound
		}
		return nil, fmt.Errorf("read essay file: %w", err)
	}
	return b, nil
}

func (s *FolderStore) WriteFile(ctx context.Context, folder, name string, r io.Reader) error {
	path, err := s.filePath(folder, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+name+".*")
	if err != nil {
		return fmt.Errorf("write essay file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write essay file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write essay file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

func (s *FolderStore) RemoveFile(ctx context.Context, folder, name string) error {
	path, err := s.filePath(folder, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !isNotExist(err) {
		return fmt.Errorf("remove essay file: %w", err)
	}
	return nil
}

func (s *FolderStore) filePath(folder, name string) (string, error) {
	if err := domain.ValidatePathName(folder); err != nil {
		return "", err
	}
	if err := domain.ValidatePathName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.root, folder, name), nil
}
