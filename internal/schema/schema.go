package schema

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Schema is an immutable, named collection of items
type Schema struct {
	key        SchemaKey
	alias      string
	references []SchemaKey
	items      map[string]Item
	order      []Item
}

func (s *Schema) Key() SchemaKey { return s.key }
func (s *Schema) Name() string   { return s.key.Name }
func (s *Schema) Alias() string  { return s.alias }
func (s *Schema) Len() int       { return len(s.order) }

// References returns the keys of schemas this schema may reference
func (s *Schema) References() []SchemaKey {
	out := make([]SchemaKey, len(s.references))
	copy(out, s.references)
	return out
}

// GetItem looks up an item by name, ignoring case
func (s *Schema) GetItem(name string) (Item, bool) {
	item, ok := s.items[strings.ToUpper(name)]
	return item, ok
}

// Items returns all items in insertion order
func (s *Schema) Items() []Item {
	out := make([]Item, len(s.order))
	copy(out, s.order)
	return out
}

// ItemsOfType returns the items of the given type in insertion order
func (s *Schema) ItemsOfType(t ItemType) []Item {
	var out []Item
	for _, item := range s.order {
		if item.ItemType() == t {
			out = append(out, item)
		}
	}
	return out
}

// Builder assembles a Schema. Errors are accumulated and reported by Build.
type Builder struct {
	key        SchemaKey
	alias      string
	references []SchemaKey
	items      map[string]Item
	order      []Item
	err        error
}

// NewBuilder starts a schema with the given name
func NewBuilder(name string) *Builder {
	b := &Builder{
		key:   NewSchemaKey(name),
		items: make(map[string]Item),
	}
	if strings.TrimSpace(name) == "" {
		b.err = fmt.Errorf("%w: schema name cannot be empty", ErrInvalidItem)
	}
	return b
}

// Alias sets the short name other definitions may use to qualify references
func (b *Builder) Alias(alias string) *Builder {
	b.alias = alias
	return b
}

// Reference declares schemas whose items may be referenced unqualified
func (b *Builder) Reference(names ...string) *Builder {
	for _, name := range names {
		b.references = append(b.references, NewSchemaKey(name))
	}
	return b
}

// Phenomenon adds a phenomenon
func (b *Builder) Phenomenon(p PhenomenonProps) *Builder {
	item, err := NewPhenomenon(b.key, p)
	return b.add(item, err)
}

// UnitSystem adds a unit system
func (b *Builder) UnitSystem(p UnitSystemProps) *Builder {
	item, err := NewUnitSystem(b.key, p)
	return b.add(item, err)
}

// Unit adds a unit
func (b *Builder) Unit(p UnitProps) *Builder {
	item, err := NewUnit(b.key, p)
	return b.add(item, err)
}

// Constant adds a constant
func (b *Builder) Constant(p ConstantProps) *Builder {
	item, err := NewConstant(b.key, p)
	return b.add(item, err)
}

func (b *Builder) add(item Item, err error) *Builder {
	if err != nil {
		b.err = multierr.Append(b.err, err)
		return b
	}
	id := strings.ToUpper(item.Name())
	if existing, ok := b.items[id]; ok {
		b.err = multierr.Append(b.err, fmt.Errorf("%w: %s %s conflicts with %s %s in schema %s",
			ErrDuplicateItem, item.ItemType(), item.Name(), existing.ItemType(), existing.Name(), b.key))
		return b
	}
	b.items[id] = item
	b.order = append(b.order, item)
	return b
}

// Build returns the schema, or every error accumulated while building it
func (b *Builder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, fmt.Errorf("failed to build schema %s: %w", b.key, b.err)
	}
	items := make(map[string]Item, len(b.items))
	for id, item := range b.items {
		items[id] = item
	}
	order := make([]Item, len(b.order))
	copy(order, b.order)
	refs := make([]SchemaKey, len(b.references))
	copy(refs, b.references)

	return &Schema{
		key:        b.key,
		alias:      b.alias,
		references: refs,
		items:      items,
		order:      order,
	}, nil
}
