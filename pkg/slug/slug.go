// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

// Package slug derives URL-safe ASCII identifiers from profil and resource names.
//
// # Usage
//
// Slugs are the human-readable identifiers for published profils
// (e.g., "expert-comptable-pme") and agency resources. The transform is
// frozen: every slug already persisted in the catalogue was produced by it,
// so any change here breaks existing lookups.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches any run of characters outside [a-z0-9].
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// multiHyphen collapses consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts a display name into its canonical slug.
//
// # Transformation Pipeline
//
// 1. Converts to lowercase.
// 2. Replaces every run of non-alphanumeric characters with a single hyphen.
// 3. Collapses consecutive hyphens.
//
// Leading and trailing hyphens are kept: "  A -- B  " yields "-a-b-".
// The persistence layer owns uniqueness, not this function.
func From(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	return result
}
