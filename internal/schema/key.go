package schema

import (
	"fmt"
	"strings"
)

// SchemaKey identifies a schema by name. Comparison is case-insensitive.
type SchemaKey struct {
	Name string
}

// NewSchemaKey creates a schema key
func NewSchemaKey(name string) SchemaKey {
	return SchemaKey{Name: name}
}

// Equals compares two schema keys ignoring case
func (k SchemaKey) Equals(other SchemaKey) bool {
	return strings.EqualFold(k.Name, other.Name)
}

// ID returns the canonical form used for map lookups
func (k SchemaKey) ID() string {
	return strings.ToUpper(k.Name)
}

func (k SchemaKey) String() string {
	return k.Name
}

// ItemKey identifies a schema item across schema boundaries.
type ItemKey struct {
	Schema SchemaKey
	Name   string
}

// NewItemKey creates an item key
func NewItemKey(schemaName, name string) ItemKey {
	return ItemKey{Schema: NewSchemaKey(schemaName), Name: name}
}

// ParseItemKey parses "Schema.Name" or "Schema:Name".
func ParseItemKey(s string) (ItemKey, error) {
	i := strings.IndexAny(s, ".:")
	if i <= 0 || i == len(s)-1 {
		return ItemKey{}, fmt.Errorf("invalid item key %q: expected Schema.Name", s)
	}
	return NewItemKey(strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])), nil
}

// MustParseItemKey is like ParseItemKey but panics on malformed input.
func MustParseItemKey(s string) ItemKey {
	k, err := ParseItemKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Equals compares two item keys ignoring case
func (k ItemKey) Equals(other ItemKey) bool {
	return k.Schema.Equals(other.Schema) && strings.EqualFold(k.Name, other.Name)
}

// ID returns the canonical form used for map lookups
func (k ItemKey) ID() string {
	return k.Schema.ID() + "." + strings.ToUpper(k.Name)
}

// IsZero reports whether the key is unset
func (k ItemKey) IsZero() bool {
	return k.Schema.Name == "" && k.Name == ""
}

func (k ItemKey) String() string {
	return k.Schema.Name + "." + k.Name
}
