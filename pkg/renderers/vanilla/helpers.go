package vanilla

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// controlID derives a stable element id. Question text makes a poor id, so
// the field position keeps ids unique and the slug keeps them readable.
func controlID(index int, name string) string {
	slug := slugify(name)
	if slug == "" {
		return fmt.Sprintf("fg-%d", index)
	}
	return fmt.Sprintf("fg-%d-%s", index, slug)
}

func slugify(value string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func inputType(widget string) string {
	switch strings.TrimSpace(widget) {
	case "password":
		return "password"
	case "email":
		return "email"
	case "number":
		return "number"
	default:
		return "text"
	}
}

// cssVarsStyle renders custom properties as declarations in key order.
// Entries that could escape the style block are dropped.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := strings.TrimSpace(vars[key])
		if !strings.HasPrefix(key, "--") || value == "" || strings.ContainsAny(key+value, "<>{};") {
			continue
		}
		parts = append(parts, key+": "+value+";")
	}
	return strings.Join(parts, " ")
}
