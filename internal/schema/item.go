package schema

// ItemType discriminates the closed set of schema item kinds
type ItemType int

const (
	ItemTypeUnknown ItemType = iota
	ItemTypePhenomenon
	ItemTypeUnitSystem
	ItemTypeUnit
	ItemTypeConstant
)

// String returns the string representation of the item type
func (t ItemType) String() string {
	switch t {
	case ItemTypePhenomenon:
		return "Phenomenon"
	case ItemTypeUnitSystem:
		return "UnitSystem"
	case ItemTypeUnit:
		return "Unit"
	case ItemTypeConstant:
		return "Constant"
	default:
		return "Unknown"
	}
}

// Item is implemented by Phenomenon, UnitSystem, Unit and Constant only.
type Item interface {
	Key() ItemKey
	Name() string
	ItemType() ItemType
	Label() string
	Description() string

	sealed()
}

type itemBase struct {
	key         ItemKey
	label       string
	description string
}

func (b itemBase) Key() ItemKey        { return b.key }
func (b itemBase) Name() string        { return b.key.Name }
func (b itemBase) Label() string       { return b.label }
func (b itemBase) Description() string { return b.description }
func (b itemBase) sealed()             {}

// Phenomenon is a physical quantity kind. Its definition is an expression over
// other phenomena; a phenomenon defined as itself is a base dimension.
type Phenomenon struct {
	itemBase
	definition string
}

// PhenomenonProps holds the fields of a Phenomenon
type PhenomenonProps struct {
	Name        string
	Definition  string
	Label       string
	Description string
}

// NewPhenomenon creates a phenomenon owned by the given schema
func NewPhenomenon(schema SchemaKey, p PhenomenonProps) (*Phenomenon, error) {
	if err := validateName(ItemTypePhenomenon, p.Name); err != nil {
		return nil, err
	}
	return &Phenomenon{
		itemBase:   itemBase{key: ItemKey{Schema: schema, Name: p.Name}, label: p.Label, description: p.Description},
		definition: p.Definition,
	}, nil
}

func (p *Phenomenon) ItemType() ItemType { return ItemTypePhenomenon }
func (p *Phenomenon) Definition() string { return p.definition }

// Props returns a copy of the fields used to create p
func (p *Phenomenon) Props() PhenomenonProps {
	return PhenomenonProps{Name: p.Name(), Definition: p.definition, Label: p.label, Description: p.description}
}

// UnitSystem is a classification tag with no behavior
type UnitSystem struct {
	itemBase
}

// UnitSystemProps holds the fields of a UnitSystem
type UnitSystemProps struct {
	Name        string
	Label       string
	Description string
}

// NewUnitSystem creates a unit system owned by the given schema
func NewUnitSystem(schema SchemaKey, p UnitSystemProps) (*UnitSystem, error) {
	if err := validateName(ItemTypeUnitSystem, p.Name); err != nil {
		return nil, err
	}
	return &UnitSystem{
		itemBase: itemBase{key: ItemKey{Schema: schema, Name: p.Name}, label: p.Label, description: p.Description},
	}, nil
}

func (u *UnitSystem) ItemType() ItemType { return ItemTypeUnitSystem }

// Props returns a copy of the fields used to create u
func (u *UnitSystem) Props() UnitSystemProps {
	return UnitSystemProps{Name: u.Name(), Label: u.label, Description: u.description}
}
