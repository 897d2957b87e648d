package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-pixelmmo/internal/storage"
)

type StorageDriver string

const (
	StorageDriverFile     StorageDriver = "file"
	StorageDriverSQLite   StorageDriver = "sqlite"
	StorageDriverPostgres StorageDriver = "postgres"
)

type StorageConfig struct {
	Driver StorageDriver `json:"driver"`
	Path   string        `json:"path"`
	DSN    string        `json:"dsn"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Driver {
	case StorageDriverFile, StorageDriverSQLite:
	case StorageDriverPostgres:
		if c.DSN == "" {
			el.Add(fmt.Errorf("storage: dsn is required for postgres"))
		}
		return el.Err()
	default:
		el.Add(fmt.Errorf("storage: unknown driver %q", c.Driver))
	}

	if c.Path == "" {
		el.Add(fmt.Errorf("storage: path is required"))
	} else if c.Driver == StorageDriverSQLite {
		if _, err := os.Stat(filepath.Dir(c.Path)); err != nil {
			el.Add(fmt.Errorf("storage: invalid path %q: %w", c.Path, err))
		}
	} else if _, err := os.Stat(c.Path); err != nil {
		el.Add(fmt.Errorf("storage: invalid path %q: %w", c.Path, err))
	}

	return el.Err()
}

// BuildRepository opens the player store. The returned close func releases
// any underlying handle.
func (c *StorageConfig) BuildRepository() (storage.Repository, func() error, error) {
	switch c.Driver {
	case StorageDriverSQLite:
		repo, err := storage.OpenSQLite(c.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case StorageDriverPostgres:
		repo, err := storage.OpenPostgres(context.Background(), c.DSN)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case StorageDriverFile:
		repo, err := storage.NewFileRepository(c.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", c.Driver)
	}
}
