// Package utils provides common utility functions.
package utils

import "strings"

// NormalizeWhitespace trims s and replaces runs of whitespace with a single space.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// SplitList splits a comma separated list, trimming every item and dropping empty ones.
func SplitList(str string) []string {
	items := []string{}

	for _, part := range strings.Split(str, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}

	return items
}
