package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/staffhub/staffing-backend/internal/storage"
)

// Разрешённые типы изображений для фото профиля.
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// PhotoHandler управляет загрузкой и удалением фото пользователей.
type PhotoHandler struct {
	storage *storage.PhotoStorage
}

// NewPhotoHandler создаёт хэндлер.
func NewPhotoHandler(storage *storage.PhotoStorage) *PhotoHandler {
	return &PhotoHandler{storage: storage}
}

// UploadPhoto обрабатывает POST /photos. Тип файла проверяется
// по магическим байтам, а не только по расширению.
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "поле file обязательно"})
		return
	}
	if file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "файл не может быть пустым"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "разрешены изображения jpg, png, webp"})
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось прочитать файл"})
		return
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown || !allowedMimeTypes[kind.MIME.Value] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "файл не является поддерживаемым изображением"})
		return
	}

	reader := io.MultiReader(strings.NewReader(string(head[:n])), src)
	relativePath, size, err := h.storage.Save(c.Request.Context(), userID, file.Filename, reader)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"path": relativePath,
		"size": size,
	})
}

// DeletePhoto обрабатывает DELETE /photos. Пользователь удаляет
// только файлы из своего каталога.
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		Path string `json:"path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cleaned := filepath.Clean(req.Path)
	if !strings.HasPrefix(cleaned, userID.String()+string(filepath.Separator)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "можно удалять только свои файлы"})
		return
	}

	if err := h.storage.Delete(c.Request.Context(), cleaned); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "файл удалён"})
}
