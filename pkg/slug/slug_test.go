// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atelia-app/atelia/pkg/slug"
)

/*
TestFrom_Determinism verifies the frozen slug transform against known inputs.
*/
func TestFrom_Determinism(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"accented_punctuated", "Expert Comptable PME!", "expert-comptable-pme-"},
		{"hyphen_runs", "A -- B", "a-b"},
		{"surrounding_spaces", "  A -- B  ", "-a-b-"},
		{"simple", "Expert Test", "expert-test"},
		{"already_slug", "expert-test", "expert-test"},
		{"digits", "Squad 42", "squad-42"},
		{"empty", "", ""},
		{"unicode_replaced", "Stratégie", "strat-gie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}

/*
TestFrom_Idempotent verifies that re-slugging a slug is a no-op.
*/
func TestFrom_Idempotent(t *testing.T) {
	inputs := []string{"Expert Comptable PME", "Analyste Financier", "a-b-c"}
	for _, input := range inputs {
		once := slug.From(input)
		assert.Equal(t, once, slug.From(once))
	}
}
