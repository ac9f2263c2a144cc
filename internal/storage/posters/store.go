// Package posters stores uploaded movie poster images.
//
// Two backends exist: a local directory (the default) and a MinIO bucket.
// Both reserve a unique name for every upload, so two files that sanitize to
// the same name never overwrite each other.
package posters

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrNotFound    = errors.New("poster not found")
	ErrInvalidName = errors.New("invalid poster name")
)

// maxAttempts bounds the retries when a generated name is already taken.
const maxAttempts = 5

// Object is an opened poster.
type Object struct {
	io.ReadCloser
	Size        int64
	ContentType string
}

type Store interface {
	// Save writes r under a unique name derived from filename and returns the name used.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Open(ctx context.Context, name string) (*Object, error)
	Remove(ctx context.Context, name string) error
}

// SanitizeFilename reduces an uploaded filename to a safe, flat name made of
// ASCII letters, digits, '_', '-' and '.'. Directory parts are dropped. When
// nothing usable is left of the stem, a random one is generated so the
// extension survives.
func SanitizeFilename(filename string) string {
	// treat both separators as path separators regardless of the client OS
	base := filename
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}

	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	ext = "." + clean(strings.TrimPrefix(ext, "."))
	if ext == "." {
		ext = ""
	}

	stem = clean(stem)
	if stem == "" {
		stem = uuid.New().String()[:8]
	}
	return stem + ext
}

func clean(s string) string {
	// fold accents to ASCII, then drop whatever is still non-ASCII
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	fields := strings.Fields(s)
	s = strings.Join(fields, "_")

	var b strings.Builder
	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}

// candidate returns the name to try on the given attempt: the sanitized name
// first, then the stem with a short random token appended.
func candidate(name string, attempt int) string {
	if attempt == 0 {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return stem + "-" + uuid.New().String()[:8] + ext
}

// validName rejects names that could escape the store's root.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// ContentType guesses the image type from the poster's extension.
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
