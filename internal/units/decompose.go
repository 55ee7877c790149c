package units

import (
	"strings"

	"github.com/GriffinCanCode/AgentOS/units/internal/schema"
)

// Decomposition is an item reduced to irreducible base items
type Decomposition struct {
	Item schema.ItemKey
	// Terms holds base units for units and constants, base phenomena for
	// phenomena.
	Terms Signature
	// Dimension holds base phenomena.
	Dimension Signature
	// ToBase converts a value of the item into its base terms. It is the
	// identity for phenomena.
	ToBase LinearMap
}

type reduction struct {
	toBase    ratMap
	terms     Signature
	dimension Signature
}

// walker reduces definitions for a single request. It is not safe for
// concurrent use; the converter creates one per call.
type walker struct {
	ctx      *schema.Context
	maxDepth int
	stack    []schema.Item
	memo     map[string]*reduction
}

func newWalker(ctx *schema.Context, maxDepth int) *walker {
	return &walker{
		ctx:      ctx,
		maxDepth: maxDepth,
		memo:     make(map[string]*reduction),
	}
}

func (w *walker) reduce(item schema.Item) (*reduction, error) {
	id := item.Key().ID()
	if r, ok := w.memo[id]; ok {
		return r, nil
	}
	for i, active := range w.stack {
		if active.Key().ID() == id {
			return nil, newError(KindCircularDefinition, item.Key(), "%s", w.cycle(i, item))
		}
	}
	if len(w.stack) >= w.maxDepth {
		return nil, newError(KindCircularDefinition, item.Key(),
			"definition nesting exceeds %d levels", w.maxDepth)
	}

	w.stack = append(w.stack, item)
	defer func() { w.stack = w.stack[:len(w.stack)-1] }()

	var (
		r   *reduction
		err error
	)
	switch item.ItemType() {
	case schema.ItemTypePhenomenon:
		r, err = w.reducePhenomenon(item.(*schema.Phenomenon))
	case schema.ItemTypeUnit:
		r, err = w.reduceUnit(item.(*schema.Unit))
	case schema.ItemTypeConstant:
		r, err = w.reduceConstant(item.(*schema.Constant))
	default:
		err = newError(KindInvalidDefinition, item.Key(), "%s has no definition", item.ItemType())
	}
	if err != nil {
		return nil, err
	}
	if err := r.toBase.check(); err != nil {
		return nil, newError(KindInvalidDefinition, item.Key(), "%v", err)
	}

	w.memo[id] = r
	return r, nil
}

func (w *walker) reducePhenomenon(p *schema.Phenomenon) (*reduction, error) {
	terms, err := w.parse(p, p.Definition())
	if err != nil {
		return nil, err
	}
	if w.isSelf(p, terms) {
		sig := baseSignature(p.Key())
		return &reduction{toBase: identityRat(), terms: sig, dimension: sig}, nil
	}

	dim := newSignature()
	for _, t := range terms {
		if t.Exponent == 0 || isOne(t.Ref) {
			continue
		}
		item, err := w.lookup(p, t.Ref)
		if err != nil {
			return nil, err
		}
		if item.ItemType() != schema.ItemTypePhenomenon {
			return nil, newError(KindInvalidDefinition, p.Key(),
				"phenomenon definition references %s %s", item.ItemType(), item.Key())
		}
		sub, err := w.reduce(item)
		if err != nil {
			return nil, err
		}
		dim.addScaled(sub.dimension, t.Exponent)
	}
	return &reduction{toBase: identityRat(), terms: dim, dimension: dim}, nil
}

func (w *walker) reduceUnit(u *schema.Unit) (*reduction, error) {
	phenomenon, err := w.phenomenonOf(u, u.PhenomenonRef())
	if err != nil {
		return nil, err
	}
	system, err := w.lookup(u, u.UnitSystemRef())
	if err != nil {
		return nil, err
	}
	if system.ItemType() != schema.ItemTypeUnitSystem {
		return nil, newError(KindInvalidDefinition, u.Key(),
			"unit system reference %s is a %s", system.Key(), system.ItemType())
	}

	own, err := ratFromItem(u.Numerator(), u.Denominator(), u.Offset())
	if err != nil {
		return nil, newError(KindInvalidDefinition, u.Key(), "%v", err)
	}
	terms, err := w.parse(u, u.Definition())
	if err != nil {
		return nil, err
	}

	if w.isSelf(u, terms) {
		if !own.isIdentity() {
			return nil, newError(KindInvalidDefinition, u.Key(),
				"base unit cannot declare a ratio or an offset")
		}
		return &reduction{
			toBase:    identityRat(),
			terms:     baseSignature(u.Key()),
			dimension: phenomenon.dimension,
		}, nil
	}

	if own.hasOffset() && !singleLinearTerm(terms) {
		return nil, newError(KindInvalidOffsetUnit, u.Key(),
			"offset requires a definition of exactly one term with exponent 1, got %q", u.Definition())
	}

	r, err := w.combine(u, terms)
	if err != nil {
		return nil, err
	}
	r.toBase = own.compose(r.toBase)

	if !r.dimension.Equal(phenomenon.dimension) {
		return nil, newError(KindInvalidDefinition, u.Key(),
			"definition reduces to %s but phenomenon %s is %s",
			r.dimension, u.PhenomenonRef(), phenomenon.dimension)
	}
	return r, nil
}

func (w *walker) reduceConstant(c *schema.Constant) (*reduction, error) {
	phenomenon, err := w.phenomenonOf(c, c.PhenomenonRef())
	if err != nil {
		return nil, err
	}
	own, err := ratFromItem(c.Numerator(), c.Denominator(), 0)
	if err != nil {
		return nil, newError(KindInvalidDefinition, c.Key(), "%v", err)
	}
	terms, err := w.parse(c, c.Definition())
	if err != nil {
		return nil, err
	}

	r, err := w.combine(c, terms)
	if err != nil {
		return nil, err
	}
	if r.toBase.hasOffset() {
		return nil, newError(KindInvalidOffsetUnit, c.Key(), "constant cannot be defined through an offset unit")
	}
	r.toBase = own.compose(r.toBase)

	if !r.dimension.Equal(phenomenon.dimension) {
		return nil, newError(KindInvalidDefinition, c.Key(),
			"definition reduces to %s but phenomenon %s is %s",
			r.dimension, c.PhenomenonRef(), phenomenon.dimension)
	}
	return r, nil
}

// combine multiplies the maps of unit and constant terms, each raised to its
// exponent, and sums their signatures.
func (w *walker) combine(owner schema.Item, terms []Term) (*reduction, error) {
	out := &reduction{toBase: identityRat(), terms: newSignature(), dimension: newSignature()}
	count := 0

	for _, t := range terms {
		if t.Exponent == 0 || isOne(t.Ref) {
			continue
		}
		item, err := w.lookup(owner, t.Ref)
		if err != nil {
			return nil, err
		}
		if item.ItemType() != schema.ItemTypeUnit && item.ItemType() != schema.ItemTypeConstant {
			return nil, newError(KindInvalidDefinition, owner.Key(),
				"%s definition references %s %s", owner.ItemType(), item.ItemType(), item.Key())
		}
		sub, err := w.reduce(item)
		if err != nil {
			return nil, err
		}

		if !sub.toBase.canRaise(t.Exponent) {
			return nil, newError(KindInvalidDefinition, owner.Key(),
				"%s raised to %d exceeds the supported precision", item.Key(), t.Exponent)
		}
		raised, ok := sub.toBase.raise(t.Exponent)
		if !ok {
			return nil, newError(KindInvalidOffsetUnit, owner.Key(),
				"%s carries an offset and cannot be raised to %d", item.Key(), t.Exponent)
		}
		if count == 0 {
			out.toBase = raised
		} else if out.toBase, ok = out.toBase.multiply(raised); !ok {
			return nil, newError(KindInvalidOffsetUnit, owner.Key(),
				"%s cannot be multiplied with other terms because an offset is involved", item.Key())
		}
		count++

		out.terms.addScaled(sub.terms, t.Exponent)
		out.dimension.addScaled(sub.dimension, t.Exponent)
	}
	return out, nil
}

func (w *walker) phenomenonOf(owner schema.Item, ref string) (*reduction, error) {
	item, err := w.lookup(owner, ref)
	if err != nil {
		return nil, err
	}
	if item.ItemType() != schema.ItemTypePhenomenon {
		return nil, newError(KindInvalidDefinition, owner.Key(),
			"phenomenon reference %s is a %s", item.Key(), item.ItemType())
	}
	return w.reduce(item)
}

func (w *walker) lookup(owner schema.Item, ref string) (schema.Item, error) {
	item, ok := w.ctx.LookupItem(owner.Key().Schema, ref)
	if !ok {
		return nil, newError(KindUnknownReference, owner.Key(),
			"%q not found in schema %s or its references", ref, owner.Key().Schema)
	}
	return item, nil
}

func (w *walker) parse(item schema.Item, definition string) ([]Term, error) {
	terms, err := Parse(definition)
	if err != nil {
		e := newError(KindInvalidDefinition, item.Key(), "cannot parse definition")
		e.Err = err
		return nil, e
	}
	return terms, nil
}

// isSelf reports whether the definition is exactly the item's own name, which
// marks a base unit or base phenomenon. ONE is never a base.
func (w *walker) isSelf(item schema.Item, terms []Term) bool {
	if len(terms) != 1 || terms[0].Exponent != 1 || isOne(terms[0].Ref) {
		return false
	}
	qualifier, name := schema.SplitReference(terms[0].Ref)
	if !strings.EqualFold(name, item.Name()) {
		return false
	}
	if qualifier == "" {
		return true
	}
	target, ok := w.ctx.LookupItem(item.Key().Schema, terms[0].Ref)
	return ok && target.Key().Equals(item.Key())
}

func (w *walker) cycle(from int, item schema.Item) string {
	names := make([]string, 0, len(w.stack)-from+1)
	for _, active := range w.stack[from:] {
		names = append(names, active.Key().String())
	}
	names = append(names, item.Key().String())
	return "definition cycle " + strings.Join(names, " -> ")
}

func singleLinearTerm(terms []Term) bool {
	return len(terms) == 1 && terms[0].Exponent == 1 && !isOne(terms[0].Ref)
}

func (r *reduction) decomposition(key schema.ItemKey) Decomposition {
	return Decomposition{Item: key, Terms: r.terms, Dimension: r.dimension, ToBase: r.toBase.float()}
}
