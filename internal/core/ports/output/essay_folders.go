package ports

import (
	"context"
	"io"
)

// EssayFolderStore holds essay artifacts grouped in folders.
type EssayFolderStore interface {
	ListFolders(ctx context.Context) ([]string, error)
	CreateFolder(ctx context.Context, folder string) error
	// ListFiles returns file names in listing order. The order is defined by
	// the implementation and must be stable for an unchanged folder.
	ListFiles(ctx context.Context, folder string) ([]string, error)
	ReadFile(ctx context.Context, folder, name string) ([]byte, error)
	WriteFile(ctx context.Context, folder, name string, r io.Reader) error
	// RemoveFile deletes one file. A missing file is not an error.
	RemoveFile(ctx context.Context, folder, name string) error
}
