package ledger

// Category classifies a quotation line item
type Category string

const (
	CategoryMaterials   Category = "MATERIALS"
	CategoryLabor       Category = "LABOR"
	CategoryEquipment   Category = "EQUIPMENT"
	CategoryTransport   Category = "TRANSPORT"
	CategorySubcontract Category = "SUBCONTRACT"
	CategoryOther       Category = "OTHER"
)

var validCategories = map[Category]bool{
	CategoryMaterials:   true,
	CategoryLabor:       true,
	CategoryEquipment:   true,
	CategoryTransport:   true,
	CategorySubcontract: true,
	CategoryOther:       true,
}

// IsValid returns true if the category is one of the fixed categories
func (c Category) IsValid() bool {
	return validCategories[c]
}

// Unit is the unit of measure for a quotation line item
type Unit string

const (
	UnitPiece       Unit = "PCS"
	UnitHour        Unit = "HR"
	UnitDay         Unit = "DAY"
	UnitMeter       Unit = "M"
	UnitSquareMeter Unit = "SQM"
	UnitCubicMeter  Unit = "CUM"
	UnitKilogram    Unit = "KG"
	UnitLumpSum     Unit = "LS"
)

var validUnits = map[Unit]bool{
	UnitPiece:       true,
	UnitHour:        true,
	UnitDay:         true,
	UnitMeter:       true,
	UnitSquareMeter: true,
	UnitCubicMeter:  true,
	UnitKilogram:    true,
	UnitLumpSum:     true,
}

// IsValid returns true if the unit is one of the fixed units
func (u Unit) IsValid() bool {
	return validUnits[u]
}

// Defaults applied to a freshly added line item
const (
	DefaultCategory = CategoryMaterials
	DefaultUnit     = UnitPiece
	DefaultQuantity = 1.0
)

// Updatable line item field names
const (
	FieldCode        = "code"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldUnit        = "unit"
	FieldQuantity    = "quantity"
	FieldUnitPrice   = "unitPrice"
)
