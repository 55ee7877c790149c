package units

import (
	"math/big"
	"sort"
	"strings"

	"github.com/GriffinCanCode/AgentOS/units/internal/schema"
)

// Signature maps irreducible base items to their exponents. Exponents are
// rational; entries whose exponent sums to zero are dropped.
type Signature struct {
	exps map[string]*big.Rat
	keys map[string]schema.ItemKey
}

func newSignature() Signature {
	return Signature{exps: make(map[string]*big.Rat), keys: make(map[string]schema.ItemKey)}
}

func baseSignature(key schema.ItemKey) Signature {
	s := newSignature()
	s.add(key, big.NewRat(1, 1))
	return s
}

func (s Signature) add(key schema.ItemKey, exp *big.Rat) {
	id := key.ID()
	cur, ok := s.exps[id]
	if !ok {
		cur = new(big.Rat)
	}
	sum := new(big.Rat).Add(cur, exp)
	if sum.Sign() == 0 {
		delete(s.exps, id)
		delete(s.keys, id)
		return
	}
	s.exps[id] = sum
	s.keys[id] = key
}

// addScaled adds every entry of other multiplied by n
func (s Signature) addScaled(other Signature, n int) {
	factor := big.NewRat(int64(n), 1)
	for id, exp := range other.exps {
		s.add(other.keys[id], new(big.Rat).Mul(exp, factor))
	}
}

// Len returns the number of base items
func (s Signature) Len() int {
	return len(s.exps)
}

// Exponent returns the exponent of key, zero when absent
func (s Signature) Exponent(key schema.ItemKey) *big.Rat {
	if exp, ok := s.exps[key.ID()]; ok {
		return new(big.Rat).Set(exp)
	}
	return new(big.Rat)
}

// Keys returns the base items sorted by canonical key
func (s Signature) Keys() []schema.ItemKey {
	ids := s.sortedIDs()
	out := make([]schema.ItemKey, len(ids))
	for i, id := range ids {
		out[i] = s.keys[id]
	}
	return out
}

// Equal reports whether both signatures have the same bases and exponents
func (s Signature) Equal(other Signature) bool {
	if len(s.exps) != len(other.exps) {
		return false
	}
	for id, exp := range s.exps {
		o, ok := other.exps[id]
		if !ok || o.Cmp(exp) != 0 {
			return false
		}
	}
	return true
}

// String renders the signature in definition syntax, e.g. "LENGTH*TIME(-1)".
// A dimensionless signature renders as ONE.
func (s Signature) String() string {
	if len(s.exps) == 0 {
		return one
	}
	ids := s.sortedIDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		name := s.keys[id].Name
		exp := s.exps[id]
		switch {
		case exp.IsInt() && exp.Num().Int64() == 1:
			parts[i] = name
		case exp.IsInt():
			parts[i] = name + "(" + exp.Num().String() + ")"
		default:
			parts[i] = name + "(" + exp.RatString() + ")"
		}
	}
	return strings.Join(parts, "*")
}

func (s Signature) sortedIDs() []string {
	ids := make([]string, 0, len(s.exps))
	for id := range s.exps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
