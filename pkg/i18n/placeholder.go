package i18n

import (
	"fmt"
	"maps"
	"strings"
)

// M is a map of placeholder names to values.
type M map[string]any

// ReplacePlaceholders replaces placeholders in the template string with values
// from the provided map. Placeholders use the format {{name}}.
// If a placeholder is not found in the map, it remains unchanged. Values are
// inserted verbatim even when they contain placeholders themselves.
//
// Example:
//
//	template: "Showing {{count}} hosts in {{group}}"
//	placeholders: M{"count": 12, "group": "web"}
//	returns: "Showing 12 hosts in web"
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) < 1 || !strings.Contains(template, "{{") {
		return template
	}

	// One pass: substituted values are never scanned again.
	oldnew := make([]string, 0, 2*len(placeholders))
	for key, value := range placeholders {
		oldnew = append(oldnew, "{{"+key+"}}", fmt.Sprintf("%v", value))
	}

	return strings.NewReplacer(oldnew...).Replace(template)
}

func replacePlaceholdersWithMerge(template string, placeholders ...M) string {
	switch len(placeholders) {
	case 0:
		return template
	case 1:
		return ReplacePlaceholders(template, placeholders[0])
	}

	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}

	return ReplacePlaceholders(template, merged)
}
