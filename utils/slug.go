package utils

import (
	"regexp"
	"strings"
)

var (
	nonSlugRun   = regexp.MustCompile(`[^a-z0-9]+`)
	featureSplit = regexp.MustCompile(`[\n,]`)
)

// ToSlug lowercases value and turns every run of other characters into one dash.
func ToSlug(value string) string {
	s := nonSlugRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(value)), "-")
	return strings.Trim(s, "-")
}

// ParseFeatures splits a newline or comma separated list, dropping blanks.
func ParseFeatures(value string) []string {
	features := []string{}
	for _, part := range featureSplit.Split(value, -1) {
		if f := strings.TrimSpace(part); f != "" {
			features = append(features, f)
		}
	}
	return features
}
