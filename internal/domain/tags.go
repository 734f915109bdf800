package domain

import "strings"

// TagDelimiter is the separator used to flatten a tag sequence into the
// single delimited string the storage layer persists.
const TagDelimiter = ","

// MaxTags bounds tag counts on manual entry paths.
// The API itself does not enforce this bound.
const MaxTags = 20

// JoinTags flattens a tag sequence into its stored delimited form.
func JoinTags(tags []string) string {
	return strings.Join(tags, TagDelimiter)
}

// SplitTags reconstructs a tag sequence from its stored delimited form.
// Empty entries are dropped, order is preserved.
func SplitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, TagDelimiter)
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tags = append(tags, p)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// NormalizeTags trims each tag, drops empties and caps the count at MaxTags.
// Used on manual entry paths only; stored tags stay case-sensitive.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
		if len(out) == MaxTags {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// UnionTags appends the tags from extra that are not already present in base,
// preserving order. Matching is exact (case-sensitive, like storage).
func UnionTags(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	seen := make(map[string]bool, len(base))
	for _, t := range base {
		seen[t] = true
	}
	out := base
	for _, t := range extra {
		if !seen[t] {
			out = append(out, t)
			seen[t] = true
		}
	}
	return out
}
