package storage

import (
	"path/filepath"
	"strings"
)

const DefaultContentType = "application/octet-stream"

var extToType = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".wmv":  "video/x-ms-wmv",
	".webm": "video/webm",
	".pdf":  "application/pdf",
}

var typeToExt = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
	"video/x-msvideo": ".avi",
	"video/x-ms-wmv":  ".wmv",
	"video/x-ms-asf":  ".wmv",
	"video/webm":      ".webm",
	"application/pdf": ".pdf",
}

// ContentTypeByName infers a MIME type from the file extension, or "" when unknown.
func ContentTypeByName(name string) string {
	return extToType[strings.ToLower(filepath.Ext(name))]
}

// ExtByContentType returns the canonical extension for a supported MIME type.
func ExtByContentType(contentType string) string {
	return typeToExt[BaseType(contentType)]
}

// BaseType drops MIME parameters ("text/plain; charset=utf-8" -> "text/plain").
func BaseType(contentType string) string {
	base, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
