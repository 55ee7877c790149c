package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Context owns the loaded schemas and resolves items by key. It is safe for
// concurrent use.
type Context struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
	aliases map[string]string

	generation atomic.Uint64
	logger     *zap.Logger
}

// NewContext creates an empty schema context
func NewContext(logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{
		schemas: make(map[string]*Schema),
		aliases: make(map[string]string),
		logger:  logger,
	}
}

// AddSchema registers a schema. It fails if a schema with the same name or
// alias is already loaded.
func (c *Context) AddSchema(s *Schema) error {
	if s == nil {
		return fmt.Errorf("%w: nil schema", ErrInvalidItem)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.schemas[s.key.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSchema, s.key)
	}
	if err := c.checkAlias(s); err != nil {
		return err
	}
	c.insert(s)

	c.logger.Info("Schema loaded",
		zap.String("schema", s.Name()),
		zap.String("alias", s.alias),
		zap.Int("items", s.Len()),
	)
	return nil
}

// ReplaceSchema registers a schema, replacing any loaded schema with the same
// name. Items of the previous version become unreachable immediately.
func (c *Context) ReplaceSchema(s *Schema) error {
	if s == nil {
		return fmt.Errorf("%w: nil schema", ErrInvalidItem)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	old, replaced := c.schemas[s.key.ID()]
	if replaced {
		c.remove(old)
	}
	if err := c.checkAlias(s); err != nil {
		if replaced {
			c.insert(old)
		}
		return err
	}
	c.insert(s)

	c.logger.Info("Schema replaced",
		zap.String("schema", s.Name()),
		zap.Bool("existed", replaced),
		zap.Int("items", s.Len()),
	)
	return nil
}

// RemoveSchema unloads a schema
func (c *Context) RemoveSchema(key SchemaKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.schemas[key.ID()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSchemaNotFound, key)
	}
	c.remove(s)

	c.logger.Info("Schema removed", zap.String("schema", s.Name()))
	return nil
}

// GetSchema retrieves a schema by key
func (c *Context) GetSchema(key SchemaKey) (*Schema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.schemas[key.ID()]
	return s, ok
}

// Schemas returns all loaded schemas sorted by name
func (c *Context) Schemas() []*Schema {
	c.mu.RLock()
	out := make([]*Schema, 0, len(c.schemas))
	for _, s := range c.schemas {
		out = append(out, s)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].key.ID() < out[j].key.ID()
	})
	return out
}

// Len returns the number of loaded schemas
func (c *Context) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.schemas)
}

// GetItem retrieves an item by key
func (c *Context) GetItem(key ItemKey) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.schemas[key.Schema.ID()]
	if !ok {
		return nil, false
	}
	return s.GetItem(key.Name)
}

// LookupItem resolves a reference as written inside schema from. A reference
// is either "NAME", searched in from and then in its referenced schemas, or
// "QUALIFIER:NAME" where QUALIFIER is a schema name or alias.
func (c *Context) LookupItem(from SchemaKey, ref string) (Item, bool) {
	qualifier, name := SplitReference(ref)

	c.mu.RLock()
	defer c.mu.RUnlock()

	if qualifier != "" {
		s, ok := c.resolveQualifier(qualifier)
		if !ok {
			return nil, false
		}
		return s.GetItem(name)
	}

	s, ok := c.schemas[from.ID()]
	if !ok {
		return nil, false
	}
	if item, ok := s.GetItem(name); ok {
		return item, true
	}
	for _, refKey := range s.references {
		if other, ok := c.schemas[refKey.ID()]; ok {
			if item, ok := other.GetItem(name); ok {
				return item, true
			}
		}
	}
	return nil, false
}

// Generation changes every time the set of loaded schemas changes
func (c *Context) Generation() uint64 {
	return c.generation.Load()
}

// SplitReference splits "QUALIFIER:NAME" (or "QUALIFIER.NAME") into its parts.
// An unqualified reference yields an empty qualifier.
func SplitReference(ref string) (qualifier, name string) {
	ref = strings.TrimSpace(ref)
	if i := strings.IndexAny(ref, ":."); i >= 0 {
		return strings.TrimSpace(ref[:i]), strings.TrimSpace(ref[i+1:])
	}
	return "", ref
}

func (c *Context) resolveQualifier(q string) (*Schema, bool) {
	id := strings.ToUpper(q)
	if s, ok := c.schemas[id]; ok {
		return s, true
	}
	if schemaID, ok := c.aliases[id]; ok {
		s, ok := c.schemas[schemaID]
		return s, ok
	}
	return nil, false
}

// caller holds c.mu
func (c *Context) checkAlias(s *Schema) error {
	if s.alias == "" {
		return nil
	}
	alias := strings.ToUpper(s.alias)
	if owner, ok := c.aliases[alias]; ok && owner != s.key.ID() {
		return fmt.Errorf("%w: alias %q of %s is used by %s", ErrDuplicateSchema, s.alias, s.key, owner)
	}
	if other, ok := c.schemas[alias]; ok && other.key.ID() != s.key.ID() {
		return fmt.Errorf("%w: alias %q of %s is the name of a loaded schema", ErrDuplicateSchema, s.alias, s.key)
	}
	return nil
}

// caller holds c.mu
func (c *Context) insert(s *Schema) {
	c.schemas[s.key.ID()] = s
	if s.alias != "" {
		c.aliases[strings.ToUpper(s.alias)] = s.key.ID()
	}
	c.generation.Add(1)
}

// caller holds c.mu
func (c *Context) remove(s *Schema) {
	delete(c.schemas, s.key.ID())
	if s.alias != "" {
		delete(c.aliases, strings.ToUpper(s.alias))
	}
	c.generation.Add(1)
}
