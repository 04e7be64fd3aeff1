// Package classify maps file names to category labels by extension, with
// a MIME-type guess as fallback. Classification never fails: anything
// unresolvable lands in the Unknown category.
package classify

import (
	_ "embed"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unknown is the category of files that cannot be classified.
const Unknown = "unknown"

//go:embed categories.yaml
var defaultTable []byte

// Classifier resolves category labels for file paths. Resolution order:
// extension table (overrides win over built-in defaults), then a MIME
// guess by extension, then Unknown.
type Classifier struct {
	byExt map[string]string
}

// New creates a classifier from the built-in extension table, with
// overrides applied on top. Override keys may be given with or without
// the leading dot and are matched case-insensitively.
func New(overrides map[string]string) (*Classifier, error) {
	table := make(map[string]string)

	if err := yaml.Unmarshal(defaultTable, &table); err != nil {
		return nil, fmt.Errorf("parsing built-in category table: %w", err)
	}

	for ext, category := range overrides {
		table[normalizeExt(ext)] = category
	}

	return &Classifier{byExt: table}, nil
}

// LoadOverrides reads an extension -> category override table from a YAML file.
func LoadOverrides(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading category file: %w", err)
	}

	overrides := make(map[string]string)

	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing category file %q: %w", path, err)
	}

	return overrides, nil
}

// Categorize returns the category label for a file path.
func (c *Classifier) Categorize(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return Unknown
	}

	if category, ok := c.byExt[ext]; ok {
		return category
	}

	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		return fromMIME(mimeType)
	}

	return Unknown
}

// fromMIME collapses a MIME type to a coarse category label.
func fromMIME(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "text/"):
		return "text"
	case strings.HasPrefix(mimeType, "image/"):
		return "image"
	case strings.HasPrefix(mimeType, "video/"):
		return "video"
	case strings.HasPrefix(mimeType, "audio/"):
		return "audio"
	case strings.HasPrefix(mimeType, "application/") && strings.Contains(mimeType, "executable"):
		return "executable"
	default:
		return "other"
	}
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}
