package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	underscoreRuns      = regexp.MustCompile(`_+`)
)

// AllowedImageFile reports whether the filename has an accepted image
// extension.
func AllowedImageFile(filename string) bool {
	return allowedImageExts[strings.ToLower(filepath.Ext(filename))]
}

// SanitizeFilename strips path components and unsafe characters so the
// name is safe to join onto the upload directory. Runs of replaced
// characters collapse into a single underscore.
func SanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	safe := unsafeFilenameChars.ReplaceAllString(base, "_")
	return underscoreRuns.ReplaceAllString(safe, "_")
}

// SaveUploadedImage validates and stores an uploaded image under
// uploadDir, prefixing a random id so uploads never collide. Returns
// the stored file path.
func SaveUploadedImage(c *gin.Context, file *multipart.FileHeader, uploadDir string) (string, error) {
	if !AllowedImageFile(file.Filename) {
		return "", fmt.Errorf("file type not allowed: %s", file.Filename)
	}

	name := fmt.Sprintf("%s_%s", uuid.New().String()[:8], SanitizeFilename(file.Filename))
	path := filepath.Join(uploadDir, name)

	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", fmt.Errorf("save uploaded file: %w", err)
	}

	return path, nil
}
