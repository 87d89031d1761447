package utils

import (
	"net/url"
	"strings"
)

// IsRemote reports whether ref points off-site: it starts with "http" or is
// protocol relative.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http") || strings.HasPrefix(ref, "//")
}

// IsValidURL checks that ref is an absolute http(s) or protocol-relative URL with a host.
func IsValidURL(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return false
	}

	return u.Scheme == "http" || u.Scheme == "https" || (u.Scheme == "" && strings.HasPrefix(ref, "//"))
}

// Expand replaces the {name} placeholder in tmpl with the path-escaped value.
func Expand(tmpl, name, value string) string {
	return strings.ReplaceAll(tmpl, "{"+name+"}", url.PathEscape(value))
}
