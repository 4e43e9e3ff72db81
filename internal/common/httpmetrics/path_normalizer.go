package httpmetrics

import "strings"

// NormalizePath keeps metric label cardinality bounded: numeric segments
// collapse to {param} and every static asset shares one label.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}

	if strings.HasPrefix(path, "/static/") {
		return "/static/*"
	}

	parts := strings.Split(path, "/")
	for i, part := range parts {
		if isNumeric(part) {
			parts[i] = "{param}"
		}
	}

	return strings.Join(parts, "/")
}

func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
