/*
Package catalog manages the Reference Catalog of Atelia.

It holds the universe of reusable building blocks that profils are assembled
from, partitioned into six fixed categories, and allows the catalog to grow
incrementally as consultants create new blocks on the fly.

# Core Responsibility

  - Taxonomy: Maintains the six-category partition of [Item] records.
  - Growth: Append-only creation with soft deactivation (never hard-deleted).
  - Popularity: Tracks per-item usage counters fed by profil publication.

This package provides the "Common Language" used by the profil composition
model to describe an agent's expertise.
*/
package catalog

import "time"

// # Category Domain

// Category identifies one of the six fixed partitions of the reference catalog.
// The set is closed: new categories require a schema and code change.
type Category string

const (
	CategorySkills         Category = "skills"
	CategoryTools          Category = "tools"
	CategoryTasks          Category = "tasks"
	CategoryTags           Category = "tags"
	CategoryRules          Category = "rules"
	CategorySpecifications Category = "specifications"
)

// AllCategories lists every category in canonical order.
// Exhaustive iteration over the catalog always goes through this slice.
var AllCategories = []Category{
	CategorySkills,
	CategoryTools,
	CategoryTasks,
	CategoryTags,
	CategoryRules,
	CategorySpecifications,
}

// Valid reports whether the category is one of the six known partitions.
func (category Category) Valid() bool {
	switch category {
	case CategorySkills, CategoryTools, CategoryTasks,
		CategoryTags, CategoryRules, CategorySpecifications:
		return true
	}
	return false
}

// # Item Domain

// Item represents a single reusable building block in the reference catalog.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Description *string   `json:"description"`
	Domain      *string   `json:"domain"`
	IsActive    bool      `json:"is_active"`
	UsageCount  int       `json:"usage_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and error reporting in the catalog domain.
const (
	FieldName     = "name"
	FieldCategory = "category"
)
