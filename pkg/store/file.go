package store

import (
	"context"
	"fmt"

	"github.com/benmeehan/locality-agent/pkg/file"
	"github.com/benmeehan/locality-agent/pkg/location"
)

// FileStore keeps the record as a small JSON document on disk.
type FileStore struct {
	path       string
	fileClient file.FileOperations
}

// NewFileStore creates a FileStore backed by path.
func NewFileStore(path string, fileClient file.FileOperations) *FileStore {
	return &FileStore{
		path:       path,
		fileClient: fileClient,
	}
}

func (f *FileStore) Load(_ context.Context) (location.Result, bool, error) {
	exists, err := f.fileClient.IsFileExists(f.path)
	if err != nil {
		return location.Result{}, false, fmt.Errorf("failed to stat state file %s: %w", f.path, err)
	}
	if !exists {
		return location.Result{}, false, nil
	}

	var record map[string]string
	if err := f.fileClient.ReadJsonFile(f.path, &record); err != nil {
		return location.Result{}, false, fmt.Errorf("failed to read state file %s: %w", f.path, err)
	}

	result, ok := decode(record[KeyLocation], record[KeySource])
	return result, ok, nil
}

func (f *FileStore) Save(_ context.Context, result location.Result) error {
	if err := validate(result); err != nil {
		return err
	}

	record := map[string]string{
		KeyLocation: result.Location,
		KeySource:   string(result.Source),
	}
	if err := f.fileClient.WriteJsonFile(f.path, record); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) Clear(_ context.Context) error {
	if err := f.fileClient.RemoveFile(f.path); err != nil {
		return fmt.Errorf("failed to remove state file %s: %w", f.path, err)
	}
	return nil
}
