package localstorage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jademcosta/logroller/pkg/domain"
	"github.com/jademcosta/logroller/pkg/logger"
	"gopkg.in/yaml.v2"
)

const TYPE string = "localstorage"

type Config struct {
	Path string `yaml:"path"`
}

// LocalStorage pretends to be a remote object store by copying files into
// a local directory. Meant for tests and local runs.
type LocalStorage struct {
	path string
	log  *slog.Logger
}

func New(l *slog.Logger, c *Config) (*LocalStorage, error) {
	path, err := validateAndFormatPath(c.Path)
	if err != nil {
		return nil, fmt.Errorf("error creating localstorage: %w", err)
	}

	return &LocalStorage{path: path, log: l.With(logger.ObjStorageTypeKey, TYPE)}, nil
}

func ParseConfig(confData []byte) (*Config, error) {
	conf := &Config{}

	err := yaml.Unmarshal(confData, conf)
	if err != nil {
		return conf, fmt.Errorf("error parsing localstorage config: %w", err)
	}

	return conf, nil
}

func (storage *LocalStorage) Upload(_ context.Context, task *domain.UploadTask) (*domain.UploadResult, error) {
	fullFilePath := filepath.Join(storage.path, task.Key)

	err := os.MkdirAll(filepath.Dir(fullFilePath), os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("error creating directory for object: %w", err)
	}

	src, err := os.Open(task.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("error opening file to upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullFilePath)
	if err != nil {
		return nil, fmt.Errorf("error creating object file: %w", err)
	}

	written, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		return nil, fmt.Errorf("error writing data into object file: %w", err)
	}

	err = dst.Close()
	if err != nil {
		return nil, fmt.Errorf("error closing object file: %w", err)
	}

	return &domain.UploadResult{
		Bucket:      TYPE,
		Path:        task.Key,
		URL:         fullFilePath,
		SizeInBytes: int(written),
	}, nil
}

func (storage *LocalStorage) Type() string {
	return TYPE
}

func (storage *LocalStorage) Name() string {
	return storage.path
}

func validateAndFormatPath(path string) (string, error) {
	pathInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("the directory for the path doesn't exist: %w", err)
		}
		return "", fmt.Errorf("error on the provided path: %w", err)
	}

	if !pathInfo.IsDir() {
		return "", fmt.Errorf("provided path is not a directory")
	}

	return strings.TrimSuffix(path, "/"), nil
}
