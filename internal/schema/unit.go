package schema

// Unit is a measurement unit. Offset is added before the ratio is applied,
// so a value converts into the definition's terms as
//
//	value_in_definition = (value + Offset) * Numerator/Denominator
//
// FAHRENHEIT defined as CELSIUS therefore carries Numerator 5, Denominator 9
// and Offset -32.
//
// A unit defined as itself is the base unit of its phenomenon.
type Unit struct {
	itemBase
	phenomenon  string
	unitSystem  string
	definition  string
	numerator   float64
	denominator float64
	offset      float64
}

// UnitProps holds the fields of a Unit. Nil ratio fields default to 1 and a
// nil offset defaults to 0.
type UnitProps struct {
	Name        string
	Phenomenon  string
	UnitSystem  string
	Definition  string
	Numerator   *float64
	Denominator *float64
	Offset      *float64
	Label       string
	Description string
}

// NewUnit creates a unit owned by the given schema
func NewUnit(schema SchemaKey, p UnitProps) (*Unit, error) {
	if err := validateName(ItemTypeUnit, p.Name); err != nil {
		return nil, err
	}
	if err := validateRef(ItemTypeUnit, p.Name, "phenomenon", p.Phenomenon); err != nil {
		return nil, err
	}
	if err := validateRef(ItemTypeUnit, p.Name, "unit system", p.UnitSystem); err != nil {
		return nil, err
	}
	return &Unit{
		itemBase:    itemBase{key: ItemKey{Schema: schema, Name: p.Name}, label: p.Label, description: p.Description},
		phenomenon:  p.Phenomenon,
		unitSystem:  p.UnitSystem,
		definition:  p.Definition,
		numerator:   valueOr(p.Numerator, 1),
		denominator: valueOr(p.Denominator, 1),
		offset:      valueOr(p.Offset, 0),
	}, nil
}

func (u *Unit) ItemType() ItemType { return ItemTypeUnit }

// PhenomenonRef returns the raw phenomenon reference, possibly alias-qualified
func (u *Unit) PhenomenonRef() string { return u.phenomenon }

// UnitSystemRef returns the raw unit system reference, possibly alias-qualified
func (u *Unit) UnitSystemRef() string { return u.unitSystem }

func (u *Unit) Definition() string   { return u.definition }
func (u *Unit) Numerator() float64   { return u.numerator }
func (u *Unit) Denominator() float64 { return u.denominator }
func (u *Unit) Offset() float64      { return u.offset }
func (u *Unit) HasOffset() bool      { return u.offset != 0 }

// Props returns a copy of the fields used to create u
func (u *Unit) Props() UnitProps {
	return UnitProps{
		Name:        u.Name(),
		Phenomenon:  u.phenomenon,
		UnitSystem:  u.unitSystem,
		Definition:  u.definition,
		Numerator:   Float(u.numerator),
		Denominator: Float(u.denominator),
		Offset:      Float(u.offset),
		Label:       u.label,
		Description: u.description,
	}
}

// Constant is a numeric factor usable as a term in unit definitions. It never
// carries an offset.
type Constant struct {
	itemBase
	phenomenon  string
	definition  string
	numerator   float64
	denominator float64
}

// ConstantProps holds the fields of a Constant. Nil ratio fields default to 1.
type ConstantProps struct {
	Name        string
	Phenomenon  string
	Definition  string
	Numerator   *float64
	Denominator *float64
	Label       string
	Description string
}

// NewConstant creates a constant owned by the given schema
func NewConstant(schema SchemaKey, p ConstantProps) (*Constant, error) {
	if err := validateName(ItemTypeConstant, p.Name); err != nil {
		return nil, err
	}
	if err := validateRef(ItemTypeConstant, p.Name, "phenomenon", p.Phenomenon); err != nil {
		return nil, err
	}
	return &Constant{
		itemBase:    itemBase{key: ItemKey{Schema: schema, Name: p.Name}, label: p.Label, description: p.Description},
		phenomenon:  p.Phenomenon,
		definition:  p.Definition,
		numerator:   valueOr(p.Numerator, 1),
		denominator: valueOr(p.Denominator, 1),
	}, nil
}

func (c *Constant) ItemType() ItemType { return ItemTypeConstant }

// PhenomenonRef returns the raw phenomenon reference, possibly alias-qualified
func (c *Constant) PhenomenonRef() string { return c.phenomenon }

func (c *Constant) Definition() string   { return c.definition }
func (c *Constant) Numerator() float64   { return c.numerator }
func (c *Constant) Denominator() float64 { return c.denominator }

// Props returns a copy of the fields used to create c
func (c *Constant) Props() ConstantProps {
	return ConstantProps{
		Name:        c.Name(),
		Phenomenon:  c.phenomenon,
		Definition:  c.definition,
		Numerator:   Float(c.numerator),
		Denominator: Float(c.denominator),
		Label:       c.label,
		Description: c.description,
	}
}

// Float returns a pointer to v, for optional props fields
func Float(v float64) *float64 {
	return &v
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
