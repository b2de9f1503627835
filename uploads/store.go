package uploads

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Store is the flat on-disk asset directory holding uploaded images.
// Property records reference its files by bare filename.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Path resolves a stored filename inside the asset directory. Only the
// base name is used, so a reference can never escape the directory.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Save streams an uploaded file to disk under a generated
// collision-resistant name and returns that name.
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := generateName(file.Filename)

	dst, err := os.Create(s.Path(name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return name, nil
}

// Remove deletes a stored file. A missing file is a no-op, not an
// error: the reference may already have been cleaned up.
func (s *Store) Remove(name string) error {
	err := os.Remove(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

func generateName(original string) string {
	return fmt.Sprintf("images-%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), filepath.Ext(original))
}
