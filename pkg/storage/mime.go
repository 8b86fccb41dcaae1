package storage

import (
	"mime"
	"net/http"
	"path"
	"strings"
)

// MIMEOctetStream is returned when nothing better is known.
const MIMEOctetStream = "application/octet-stream"

// siteTypes covers the files a documentation site publishes; platform MIME
// tables disagree on several of them.
var siteTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".htm":   "text/html; charset=utf-8",
	".md":    "text/markdown; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "text/javascript; charset=utf-8",
	".mjs":   "text/javascript; charset=utf-8",
	".json":  "application/json",
	".yaml":  "application/yaml",
	".yml":   "application/yaml",
	".svg":   "image/svg+xml",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".webp":  "image/webp",
	".ico":   "image/x-icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".txt":   "text/plain; charset=utf-8",
	".xml":   "application/xml",
	".pdf":   "application/pdf",
}

// ContentTypeFor returns the content type for name, sniffing data when the
// extension is unknown. data may be nil.
func ContentTypeFor(name string, data []byte) string {
	ext := strings.ToLower(path.Ext(name))
	if ct, ok := siteTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	if len(data) > 0 {
		return http.DetectContentType(data)
	}
	return MIMEOctetStream
}

// IsPage reports whether name is a document the site renders (HTML or Markdown).
func IsPage(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".html", ".htm", ".md":
		return true
	}
	return false
}
