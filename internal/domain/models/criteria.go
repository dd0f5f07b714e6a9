package models

import "time"

// Wildcard values accepted for categorical filters.
const (
	WildcardTodos = "Todos"
	WildcardAll   = "All"
)

// IsWildcard reports whether a categorical filter value matches every record.
func IsWildcard(value string) bool {
	return value == "" || value == WildcardTodos || value == WildcardAll
}

// FilterCriteria selects a subset of records by date range and categorical equality.
// A zero Start or End leaves that side of the range open.
type FilterCriteria struct {
	Start time.Time            `json:"start"`
	End   time.Time            `json:"end"`
	Match map[Attribute]string `json:"match,omitempty"`
}

// Value returns the constraint for an attribute, or the wildcard when unset.
func (c FilterCriteria) Value(attr Attribute) string {
	if v, ok := c.Match[attr]; ok && !IsWildcard(v) {
		return v
	}
	return WildcardTodos
}
