package engine

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ytget/ytmp4/internal/model"
)

// NAPlaceholder replaces template fields that have no value
const NAPlaceholder = "NA"

var fieldPattern = regexp.MustCompile(`^%\(([A-Za-z_]+)\)s`)

// BuildOutputTemplate joins a destination directory and a filename template.
// Percent signs in the directory are escaped so they survive expansion.
func BuildOutputTemplate(dir, filenameTemplate string) string {
	if filenameTemplate == "" {
		filenameTemplate = DefaultFilenameTemplate
	}
	return filepath.Join(strings.ReplaceAll(dir, "%", "%%"), filenameTemplate)
}

// ExpandTemplate substitutes %(field)s references and %% escapes.
func ExpandTemplate(template string, fields map[string]string) string {
	var b strings.Builder
	for i := 0; i < len(template); {
		if template[i] == '%' {
			if i+1 < len(template) && template[i+1] == '%' {
				b.WriteByte('%')
				i += 2
				continue
			}
			if m := fieldPattern.FindStringSubmatchIndex(template[i:]); m != nil {
				value := fields[template[i+m[2]:i+m[3]]]
				if value == "" {
					value = NAPlaceholder
				}
				b.WriteString(value)
				i += m[1]
				continue
			}
		}
		b.WriteByte(template[i])
		i++
	}
	return b.String()
}

// SanitizeFilename makes a single path component out of an arbitrary title.
// Forbidden characters become their full-width counterparts, slashes become
// U+29F8/U+29F9, control characters are dropped.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '/':
			b.WriteRune('⧸')
		case r == '\\':
			b.WriteRune('⧹')
		case strings.ContainsRune(`"*:<>?|`, r):
			b.WriteRune(r + 0xFEE0)
		case r == '\n':
			b.WriteByte(' ')
		case r < 32 || r == 127:
		default:
			b.WriteRune(r)
		}
	}

	result := b.String()
	for strings.Contains(result, "__") {
		result = strings.ReplaceAll(result, "__", "_")
	}
	result = strings.Trim(result, "_")
	if strings.HasPrefix(result, "-") {
		result = "_" + result[1:]
	}
	result = strings.TrimLeft(result, ".")
	if result == "" {
		return "_"
	}
	return result
}

// itemFields returns the template fields for an item
func itemFields(item model.Item, container string) map[string]string {
	ext := item.Ext
	if ext == "" {
		ext = container
	}
	return map[string]string{
		"id":    sanitizeField(item.ID),
		"title": sanitizeField(item.Title),
		"ext":   ext,
	}
}

func sanitizeField(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return SanitizeFilename(s)
}

// predictFilename expands the configured template for an item
func predictFilename(opts Options, item model.Item) string {
	template := opts.OutputTemplate
	if template == "" {
		template = DefaultFilenameTemplate
	}
	return ExpandTemplate(template, itemFields(item, opts.container()))
}
