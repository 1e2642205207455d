package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PhotoStorage хранит фотографии профилей на локальном диске: по
// каталогу на пользователя, имена файлов генерируются заново, чтобы
// клиентское имя никогда не попадало в файловую систему.
type PhotoStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewPhotoStorage создаёт корневой каталог хранилища, если его ещё нет.
func NewPhotoStorage(rootPath string, maxUploadMB int64) (*PhotoStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &PhotoStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB << 20,
	}, nil
}

// Save записывает файл во временное имя и переименовывает атомарно,
// чтобы при обрыве загрузки в хранилище не оставалось битых файлов.
// Возвращает путь относительно корня хранилища и размер в байтах.
func (s *PhotoStorage) Save(ctx context.Context, userID uuid.UUID, originalName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	userDir := filepath.Join(s.rootPath, userID.String())
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать каталог пользователя: %w", err)
	}

	fileName := uuid.NewString() + normalizeExt(originalName)
	targetPath := filepath.Join(userDir, fileName)

	written, err := s.writeAtomic(targetPath, r)
	if err != nil {
		return "", 0, err
	}

	return filepath.Join(userID.String(), fileName), written, nil
}

func (s *PhotoStorage) writeAtomic(targetPath string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(targetPath), "upload-*")
	if err != nil {
		return 0, fmt.Errorf("storage: не удалось создать временный файл: %w", err)
	}
	tmpPath := tmp.Name()

	// Читаем на один байт больше лимита: так отличаем файл ровно в
	// лимит от файла, который в него не влез.
	written, err := io.Copy(tmp, io.LimitReader(r, s.maxUploadBytes+1))
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return 0, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}
	if written > s.maxUploadBytes {
		tmp.Close()
		os.Remove(tmpPath)
		return 0, fmt.Errorf("storage: размер файла превышает лимит %d байт", s.maxUploadBytes)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}
	if err := os.Rename(tmpPath, targetPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return written, nil
}

// Delete удаляет файл; отсутствие файла не считается ошибкой.
func (s *PhotoStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(s.rootPath, relativePath)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// normalizeExt оставляет от клиентского имени только расширение в
// нижнем регистре. Всё остальное имя отбрасывается.
func normalizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if ext == "" || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
