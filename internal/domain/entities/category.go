package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the fund class inferred from a scheme name.
type Category uint8

const (
	CategoryOther Category = iota
	CategoryEquity
	CategoryDebt
	CategoryHybrid
)

// Categories lists every category in display order.
var Categories = []Category{CategoryEquity, CategoryDebt, CategoryHybrid, CategoryOther}

func (c Category) String() string {
	switch c {
	case CategoryEquity:
		return "Equity"
	case CategoryDebt:
		return "Debt"
	case CategoryHybrid:
		return "Hybrid"
	case CategoryOther:
		return "Other"
	default:
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, c.String()) {
			return c, true
		}
	}
	return CategoryOther, false
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, ok := ParseCategory(string(b))
	if !ok {
		return fmt.Errorf("unknown category %q", b)
	}
	*c = parsed
	return nil
}

// CategorySet is a small immutable set of categories.
type CategorySet uint8

// NewCategorySet returns the set holding cs.
func NewCategorySet(cs ...Category) CategorySet {
	var s CategorySet
	for _, c := range cs {
		s |= 1 << c
	}
	return s
}

// Has reports whether c is in the set.
func (s CategorySet) Has(c Category) bool {
	return s&(1<<c) != 0
}

// Union returns s ∪ o.
func (s CategorySet) Union(o CategorySet) CategorySet { return s | o }

// Intersect returns s ∩ o.
func (s CategorySet) Intersect(o CategorySet) CategorySet { return s & o }

// IsEmpty reports whether the set holds no category.
func (s CategorySet) IsEmpty() bool { return s == 0 }

// Len returns the number of categories in the set.
func (s CategorySet) Len() int {
	n := 0
	for _, c := range Categories {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Slice returns the members in display order.
func (s CategorySet) Slice() []Category {
	out := make([]Category, 0, len(Categories))
	for _, c := range Categories {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s CategorySet) String() string {
	names := make([]string, 0, len(Categories))
	for _, c := range s.Slice() {
		names = append(names, c.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// MarshalJSON encodes the set as an array of category names.
func (s CategorySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}
