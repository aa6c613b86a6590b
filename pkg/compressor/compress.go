package compressor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/jademcosta/logroller/pkg/domain"
)

func (s *Service) compress(task Task) error {
	var err error
	switch s.conf.Type {
	case domain.CompressionGzip:
		err = s.gzipFile(task)
	case domain.CompressionZip:
		err = s.zipFile(task)
	case domain.CompressionNone:
		return os.Rename(task.Source, task.Destination)
	default:
		return fmt.Errorf("invalid compression type %s", s.conf.Type)
	}

	if err != nil {
		return err
	}

	// the raw temp file has served its purpose
	return os.Remove(task.Source)
}

func (s *Service) gzipFile(task Task) error {
	src, err := os.Open(task.Source)
	if err != nil {
		return fmt.Errorf("error opening file to compress: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(task.Destination)
	if err != nil {
		return fmt.Errorf("error creating compressed file: %w", err)
	}

	gzWriter, err := s.newGzipWriter(dst)
	if err != nil {
		dst.Close()
		return err
	}

	_, err = io.Copy(gzWriter, src)
	if err != nil {
		gzWriter.Close()
		dst.Close()
		return fmt.Errorf("error writing compressed data: %w", err)
	}

	err = gzWriter.Close()
	if err != nil {
		dst.Close()
		return fmt.Errorf("error finishing gzip stream: %w", err)
	}

	return dst.Close()
}

func (s *Service) newGzipWriter(dst io.Writer) (*gzip.Writer, error) {
	if s.conf.Level == "" {
		return gzip.NewWriter(dst), nil
	}

	level, err := strconv.Atoi(s.conf.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid compression level %s: %w", s.conf.Level, err)
	}

	gzWriter, err := gzip.NewWriterLevel(dst, level)
	if err != nil {
		return nil, fmt.Errorf("error creating gzip writer: %w", err)
	}

	return gzWriter, nil
}

func (s *Service) zipFile(task Task) error {
	src, err := os.Open(task.Source)
	if err != nil {
		return fmt.Errorf("error opening file to compress: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(task.Destination)
	if err != nil {
		return fmt.Errorf("error creating compressed file: %w", err)
	}

	zipWriter := zip.NewWriter(dst)

	entryName := task.InnerEntryName
	if entryName == "" {
		entryName = filepath.Base(task.Source)
	}

	entry, err := zipWriter.Create(entryName)
	if err != nil {
		zipWriter.Close()
		dst.Close()
		return fmt.Errorf("error creating zip entry: %w", err)
	}

	_, err = io.Copy(entry, src)
	if err != nil {
		zipWriter.Close()
		dst.Close()
		return fmt.Errorf("error writing compressed data: %w", err)
	}

	err = zipWriter.Close()
	if err != nil {
		dst.Close()
		return fmt.Errorf("error finishing zip archive: %w", err)
	}

	return dst.Close()
}
