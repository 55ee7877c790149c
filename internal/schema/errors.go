package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidItem     = errors.New("invalid schema item")
	ErrDuplicateItem   = errors.New("duplicate schema item")
	ErrDuplicateSchema = errors.New("schema already loaded")
	ErrSchemaNotFound  = errors.New("schema not found")
)

func validateName(t ItemType, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s name cannot be empty", ErrInvalidItem, t)
	}
	if strings.ContainsAny(name, ".:*()[] \t") {
		return fmt.Errorf("%w: %s name %q contains reserved characters", ErrInvalidItem, t, name)
	}
	return nil
}

func validateRef(t ItemType, name, field, ref string) error {
	if strings.TrimSpace(ref) == "" {
		return fmt.Errorf("%w: %s %s has no %s", ErrInvalidItem, t, name, field)
	}
	return nil
}
