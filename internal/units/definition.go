package units

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// one is the reserved dimensionless identity term
	one = "ONE"
	// MaxExponent bounds the magnitude of a term exponent
	MaxExponent = 64
)

// Term is one factor of a definition: Ref raised to Exponent
type Term struct {
	Ref      string
	Exponent int
}

func (t Term) String() string {
	if t.Exponent == 1 {
		return t.Ref
	}
	return fmt.Sprintf("%s(%d)", t.Ref, t.Exponent)
}

// Parse splits a definition such as "[KILO]*M*S(-1)" into terms. Brackets
// around a reference are dropped; a reference may be qualified as ALIAS:NAME.
func Parse(definition string) ([]Term, error) {
	if strings.TrimSpace(definition) == "" {
		return nil, fmt.Errorf("empty definition")
	}

	parts := strings.Split(definition, "*")
	terms := make([]Term, 0, len(parts))
	for i, part := range parts {
		term, err := parseTerm(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("term %d of %q: %w", i+1, definition, err)
		}
		terms = append(terms, term)
	}
	return terms, nil
}

func parseTerm(s string) (Term, error) {
	if s == "" {
		return Term{}, fmt.Errorf("empty term")
	}

	ref, exp := s, 1
	if open := strings.IndexByte(s, '('); open >= 0 {
		if !strings.HasSuffix(s, ")") || strings.Count(s, "(") != 1 || strings.Count(s, ")") != 1 {
			return Term{}, fmt.Errorf("unbalanced parentheses in %q", s)
		}
		raw := strings.TrimSpace(s[open+1 : len(s)-1])
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Term{}, fmt.Errorf("exponent %q is not an integer", raw)
		}
		if n > MaxExponent || n < -MaxExponent {
			return Term{}, fmt.Errorf("exponent %d exceeds ±%d", n, MaxExponent)
		}
		ref, exp = strings.TrimSpace(s[:open]), n
	} else if strings.ContainsRune(s, ')') {
		return Term{}, fmt.Errorf("unbalanced parentheses in %q", s)
	}

	if strings.HasPrefix(ref, "[") || strings.HasSuffix(ref, "]") {
		if !strings.HasPrefix(ref, "[") || !strings.HasSuffix(ref, "]") {
			return Term{}, fmt.Errorf("unbalanced brackets in %q", s)
		}
		ref = strings.TrimSpace(ref[1 : len(ref)-1])
	}

	if ref == "" {
		return Term{}, fmt.Errorf("missing reference in %q", s)
	}
	if strings.ContainsAny(ref, "[]() \t") {
		return Term{}, fmt.Errorf("invalid reference %q", ref)
	}
	return Term{Ref: ref, Exponent: exp}, nil
}

func isOne(ref string) bool {
	return strings.EqualFold(ref, one)
}
