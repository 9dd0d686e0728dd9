package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/auditrain/auditrain-backend/internal/config"
)

// Sentinel errors for logo uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrInvalidLogoSlot     = errors.New("logo slot must be between 1 and 3")
)

// LogoSlots is the number of branding logos shown in the UI and on report
// headers. Slots are fixed so re-uploading replaces the previous file.
const LogoSlots = 3

// Allowed image MIME types.
var allowedMIMETypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// MediaService handles logo upload and lookup.
type MediaService struct {
	cfg *config.Config
}

// NewMediaService creates a new MediaService.
func NewMediaService(cfg *config.Config) *MediaService {
	return &MediaService{cfg: cfg}
}

// SaveLogo stores an uploaded logo into a fixed slot (1..LogoSlots),
// replacing any previous file in that slot regardless of extension.
// Returns the relative URL path of the saved file.
func (s *MediaService) SaveLogo(file multipart.File, header *multipart.FileHeader, slot int) (string, error) {
	if slot < 1 || slot > LogoSlots {
		return "", ErrInvalidLogoSlot
	}

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedMIMETypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s (allowed: %s)",
			ErrUnsupportedFileType, contentType, strings.Join(allowedTypes(), ", "))
	}

	if header.Size > s.cfg.MaxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.cfg.MaxUploadBytes)
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	// Drop stale files for this slot so only one extension survives.
	for _, oldExt := range allowedMIMETypes {
		if oldExt == ext {
			continue
		}
		_ = os.Remove(filepath.Join(s.cfg.UploadDir, logoName(slot, oldExt)))
	}

	destPath := filepath.Join(s.cfg.UploadDir, logoName(slot, ext))
	dst, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return "/uploads/" + logoName(slot, ext), nil
}

// ListLogos returns the relative URL paths of the saved logos, slot order.
func (s *MediaService) ListLogos() []string {
	var logos []string
	for slot := 1; slot <= LogoSlots; slot++ {
		for _, ext := range allowedMIMETypes {
			path := filepath.Join(s.cfg.UploadDir, logoName(slot, ext))
			if _, err := os.Stat(path); err == nil {
				logos = append(logos, "/uploads/"+logoName(slot, ext))
				break
			}
		}
	}
	return logos
}

// LogoPaths returns absolute filesystem paths of the saved logos, for report
// headers.
func (s *MediaService) LogoPaths() []string {
	var paths []string
	for slot := 1; slot <= LogoSlots; slot++ {
		for _, ext := range allowedMIMETypes {
			path := filepath.Join(s.cfg.UploadDir, logoName(slot, ext))
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
				break
			}
		}
	}
	return paths
}

func logoName(slot int, ext string) string {
	return fmt.Sprintf("logo%d%s", slot, ext)
}

func allowedTypes() []string {
	types := make([]string, 0, len(allowedMIMETypes))
	for t := range allowedMIMETypes {
		types = append(types, t)
	}
	return types
}
