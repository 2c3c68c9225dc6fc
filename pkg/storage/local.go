package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage on the local filesystem. All operations
// are confined to baseDir; resolvePath rejects any name that would escape
// it. Safe for concurrent use.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage resolves baseDir to an absolute path and creates it if
// missing.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if err := os.MkdirAll(absBaseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	return &LocalStorage{baseDir: absBaseDir}, nil
}

// BaseDir returns the absolute storage root.
func (s *LocalStorage) BaseDir() string { return s.baseDir }

// Save writes the reader's content under name with a buffered,
// cancellation-aware copy. A partial file left by an error or a client
// disconnect is removed, so no partial artifact is ever persisted.
func (s *LocalStorage) Save(ctx context.Context, r io.Reader, name string) (*File, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if r == nil {
		return nil, ErrNilReader
	}

	absPath, err := s.resolvePath(name)
	if err != nil {
		return nil, err
	}

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	defer func() { _ = dst.Close() }()

	written := int64(0)
	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			_ = dst.Close()
			_ = os.Remove(absPath)
			return nil, ctx.Err()
		default:
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			nw, writeErr := dst.Write(buf[:n])
			if writeErr != nil {
				_ = dst.Close()
				_ = os.Remove(absPath)
				return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, writeErr)
			}
			written += int64(nw)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = dst.Close()
			_ = os.Remove(absPath)
			return nil, fmt.Errorf("%w: %v", ErrFailedToReadContent, readErr)
		}
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	return &File{
		Name:         filepath.Base(absPath),
		Size:         written,
		AbsolutePath: absPath,
		ModTime:      info.ModTime(),
	}, nil
}

// Open returns a seekable reader for a stored file.
func (s *LocalStorage) Open(ctx context.Context, name string) (io.ReadSeekCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	absPath, err := s.resolvePath(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	return f, nil
}

// Delete removes a single stored file.
func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	absPath, err := s.resolvePath(name)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, name)
	}

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

// Exists reports whether a regular file is present under name.
func (s *LocalStorage) Exists(ctx context.Context, name string) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}

	absPath, err := s.resolvePath(name)
	if err != nil {
		return false
	}

	info, err := os.Stat(absPath)
	return err == nil && !info.IsDir()
}

// List returns every regular file in the storage root, non-recursive.
// Subdirectories are skipped; the pipeline stores flat.
func (s *LocalStorage) List(ctx context.Context) ([]File, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	dirEntries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadDirectory, err)
	}

	files := make([]File, 0, len(dirEntries))
	for _, entry := range dirEntries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue // Skip entries we can't stat
		}
		files = append(files, File{
			Name:         entry.Name(),
			Size:         info.Size(),
			AbsolutePath: filepath.Join(s.baseDir, entry.Name()),
			ModTime:      info.ModTime(),
		})
	}

	return files, nil
}

// resolvePath validates a name and resolves it inside the base directory.
// Prevents path traversal by rejecting anything that cleans to a path
// outside baseDir.
func (s *LocalStorage) resolvePath(name string) (string, error) {
	if name == "" || name == "." {
		return "", fmt.Errorf("%w: empty name", ErrInvalidPath)
	}

	cleaned := filepath.Clean(name)
	absPath := filepath.Join(s.baseDir, cleaned)

	absPath, err := filepath.Abs(absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, name)
	}
	// Names are flat; a name that resolves into a subdirectory is suspect.
	if filepath.Dir(absPath) != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, name)
	}

	return absPath, nil
}
