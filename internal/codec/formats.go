package codec

import (
	"strings"

	// Registered decoders. Every format listed in formats must have one here.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format describes one decoder linked into the binary.
type Format struct {
	Name       string
	Extensions []string
}

var formats = []Format{
	{Name: "jpeg", Extensions: []string{".jpg", ".jpeg", ".jpe", ".jfif"}},
	{Name: "png", Extensions: []string{".png"}},
	{Name: "gif", Extensions: []string{".gif"}},
	{Name: "webp", Extensions: []string{".webp"}},
	{Name: "bmp", Extensions: []string{".bmp"}},
	{Name: "tiff", Extensions: []string{".tif", ".tiff"}},
}

// priority lists the most common extensions, which are checked first.
var priority = []string{".jpg", ".png", ".jpeg", ".gif", ".webp", ".bmp"}

// Formats returns the registered formats.
func Formats() []Format {
	out := make([]Format, len(formats))
	for i, f := range formats {
		out[i] = Format{Name: f.Name, Extensions: append([]string(nil), f.Extensions...)}
	}
	return out
}

// SupportedExtensions returns the lowercase extensions, with leading dot, of
// every registered format. The common extensions come first.
func SupportedExtensions() []string {
	seen := make(map[string]bool)
	var exts []string
	add := func(ext string) {
		if !seen[ext] {
			seen[ext] = true
			exts = append(exts, ext)
		}
	}
	for _, ext := range priority {
		add(ext)
	}
	for _, f := range formats {
		for _, ext := range f.Extensions {
			add(ext)
		}
	}
	return exts
}

// FormatForExtension returns the format name registered for ext, or "".
func FormatForExtension(ext string) string {
	ext = strings.ToLower(ext)
	for _, f := range formats {
		for _, e := range f.Extensions {
			if e == ext {
				return f.Name
			}
		}
	}
	return ""
}

// ExtensionSet decides whether a file name looks like a supported image.
// Matching is a case-insensitive suffix comparison.
type ExtensionSet struct {
	exts []string
}

// NewExtensionSet returns the supported extensions plus extra. Extra entries
// are lowercased and must start with a dot.
func NewExtensionSet(extra ...string) *ExtensionSet {
	exts := SupportedExtensions()
	for _, e := range extra {
		e = strings.ToLower(strings.TrimSpace(e))
		if len(e) < 2 || e[0] != '.' {
			continue
		}
		dup := false
		for _, have := range exts {
			if have == e {
				dup = true
				break
			}
		}
		if !dup {
			exts = append(exts, e)
		}
	}
	return &ExtensionSet{exts: exts}
}

// Match reports whether name ends with one of the extensions.
func (s *ExtensionSet) Match(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range s.exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Extensions returns the extensions in match order.
func (s *ExtensionSet) Extensions() []string {
	return append([]string(nil), s.exts...)
}
