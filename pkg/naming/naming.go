package naming

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// maxNameLength bounds composed storage names to stay well under common
// filesystem limits (255 bytes) while leaving room for suffixes.
const maxNameLength = 200

// placeholderBase substitutes base names that sanitize down to nothing.
const placeholderBase = "file"

// thumbnailExt is the extension of every derived thumbnail, regardless of
// the source image format.
const thumbnailExt = ".jpg"

// Identity is the unique, sanitized name under which an artifact is stored.
// Immutable once created.
type Identity struct {
	// Token is a random hex string (UUIDv4, 122 bits of entropy) making the
	// composed name collision-resistant across the gallery's lifetime.
	Token string
	// Name is the full storage name: {token}_{sanitized-base}{ext}.
	Name string
	// Ext is the lower-cased original extension including the dot.
	Ext string
}

// New derives a storage identity from a client-supplied filename.
// The base name is sanitized against path traversal and unsafe characters;
// an empty result after sanitization falls back to a fixed placeholder so a
// hostile filename never fails the whole candidate.
func New(original string) Identity {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")

	ext := sanitizeExt(filepath.Ext(original))
	base := SanitizeBaseName(strings.TrimSuffix(original, filepath.Ext(original)))

	name := token + "_" + base + ext
	if len(name) > maxNameLength {
		// Trim the base, never the token or extension.
		keep := maxNameLength - len(token) - 1 - len(ext)
		if keep < 1 {
			keep = 1
		}
		name = token + "_" + base[:keep] + ext
	}

	return Identity{
		Token: token,
		Name:  name,
		Ext:   ext,
	}
}

// sanitizeExt lower-cases an extension and drops anything outside the
// alphanumeric allow-list. A fully hostile extension becomes empty.
func sanitizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	var b strings.Builder
	for _, r := range ext {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "." + b.String()
}

// SanitizeBaseName strips everything outside the allow-list of alphanumerics,
// dot, dash and underscore, after discarding any directory components.
// Returns a fixed placeholder when nothing safe remains.
func SanitizeBaseName(name string) string {
	// Windows-style separators become path components too.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}

	// Leading dots could still form "." / ".." style names.
	sanitized := strings.Trim(b.String(), ".")
	sanitized = strings.ReplaceAll(sanitized, "..", "")
	if sanitized == "" {
		return placeholderBase
	}
	return sanitized
}

// ThumbnailName returns the storage name of the thumbnail derived for the
// artifact with the given token. Thumbnails are always re-encoded to JPEG,
// so the extension is fixed.
func ThumbnailName(token string) string {
	return "thumb_" + token + thumbnailExt
}

// Token extracts the unique token from a composed storage name.
// Returns false for names that were not produced by New.
func Token(storageName string) (string, bool) {
	token, _, ok := strings.Cut(storageName, "_")
	if !ok || token == "" {
		return "", false
	}
	for _, r := range token {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return "", false
		}
	}
	return token, true
}
