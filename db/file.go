package db

import (
	"context"
	"os"
	"path/filepath"

	"github.com/lucsky/cuid"
)

const documentExt = ".json"

type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) EnsureNamespace(ctx context.Context) error {
	return os.MkdirAll(f.dir, 0o755)
}

// Put writes the document to a temporary file next to its target and renames
// it into place, so readers see either the previous document or the new one.
// The temporary name does not embed the key, so any key whose final file name
// fits the filesystem limit can be written.
func (f *FileStore) Put(ctx context.Context, key string, document []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(f.dir, key+documentExt)
	tmp, err := os.OpenFile(filepath.Join(f.dir, "."+cuid.New()+".tmp"), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(document); err != nil {
		tmp.Close()
		return "", err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return "", err
	}
	if err = tmp.Close(); err != nil {
		return "", err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}

	return path, nil
}
