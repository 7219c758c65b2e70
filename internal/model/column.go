package model

// Field is one of the eleven dashboard fields.
type Field int

const (
	FieldDate Field = iota
	FieldPlatform
	FieldCategory
	FieldProduct
	FieldSKU
	FieldRevenue
	FieldReturns
	FieldQuantity
	FieldReturnQty
	FieldDispatchStatus
	FieldCourier

	// NumFields is the number of mapped fields.
	NumFields = int(FieldCourier) + 1
)

var fieldNames = [NumFields]string{
	"Date",
	"Platform",
	"Category",
	"Product",
	"SKU",
	"Revenue",
	"Returns",
	"Quantity",
	"Return Qty",
	"Dispatch Status",
	"Courier",
}

// sourceColumns holds the exact worksheet header each field is copied from.
// "Dispatch Coruier partner" is spelled as it appears in the workbook.
var sourceColumns = [NumFields]string{
	"Final Order date",
	"Main Parties",
	"Group Name",
	"Item Desc",
	"Alias",
	"Sale (Amt.)",
	"Sale Return (Amt.)",
	"Sale (Qty.)",
	"Sale Return (Qty.)",
	"Dispatch Status",
	"Dispatch Coruier partner",
}

// Fields returns all mapped fields in output order.
func Fields() []Field {
	fs := make([]Field, NumFields)
	for i := range fs {
		fs[i] = Field(i)
	}
	return fs
}

// Name returns the dashboard name of the field.
func (f Field) Name() string {
	if f < 0 || int(f) >= NumFields {
		return ""
	}
	return fieldNames[f]
}

func (f Field) String() string { return f.Name() }

// Source returns the raw column name the field is copied from.
func (f Field) Source() string {
	if f < 0 || int(f) >= NumFields {
		return ""
	}
	return sourceColumns[f]
}

// Column describes one known worksheet column.
type Column struct {
	Name   string
	Kind   Kind
	Mapped bool
	Field  Field // meaningful only when Mapped
	Note   string
}

// Catalog lists the known columns of the sales worksheet in sheet order.
// Columns that are not mapped are ignored by the mapper.
var Catalog = []Column{
	{Name: "VchNo", Kind: KindText, Note: "voucher number"},
	{Name: "VchDate", Kind: KindDate, Note: "voucher date"},
	{Name: "Final Order date", Kind: KindDate, Mapped: true, Field: FieldDate},
	{Name: "Tax Type", Kind: KindText},
	{Name: "Party Name", Kind: KindText},
	{Name: "Main Parties", Kind: KindText, Mapped: true, Field: FieldPlatform, Note: "sales channel"},
	{Name: "Group Name", Kind: KindText, Mapped: true, Field: FieldCategory},
	{Name: "Item Desc", Kind: KindText, Mapped: true, Field: FieldProduct},
	{Name: "Alias", Kind: KindText, Mapped: true, Field: FieldSKU},
	{Name: "HSNCode", Kind: KindText},
	{Name: "Order ID", Kind: KindText},
	{Name: "Qty.", Kind: KindNumber},
	{Name: "Sale (Qty.)", Kind: KindNumber, Mapped: true, Field: FieldQuantity},
	{Name: "Sale Return (Qty.)", Kind: KindNumber, Mapped: true, Field: FieldReturnQty},
	{Name: "Sale (Amt.)", Kind: KindNumber, Mapped: true, Field: FieldRevenue},
	{Name: "Sale Return (Amt.)", Kind: KindNumber, Mapped: true, Field: FieldReturns},
	{Name: "Invoice Amt", Kind: KindNumber},
	{Name: "Narration", Kind: KindText, Note: "mostly empty"},
	{Name: "OrgVchNo", Kind: KindText},
	{Name: "Org..VchDate", Kind: KindDate},
	{Name: "StockUpdationDate", Kind: KindDate},
	{Name: "Refund Reasons", Kind: KindText},
	{Name: "Dispatch Status", Kind: KindText, Mapped: true, Field: FieldDispatchStatus},
	{Name: "Dispatch Coruier partner", Kind: KindText, Mapped: true, Field: FieldCourier, Note: "misspelled in source"},
}

// KeyColumn is the natural key used to identify rows in error reports.
const KeyColumn = "VchNo"

var catalogByName = func() map[string]Column {
	m := make(map[string]Column, len(Catalog))
	for _, c := range Catalog {
		m[c.Name] = c
	}
	return m
}()

// LookupColumn returns the catalog entry for an exact column name.
func LookupColumn(name string) (Column, bool) {
	c, ok := catalogByName[name]
	return c, ok
}

// ColumnKind returns the expected kind of a column. Unknown columns are text.
func ColumnKind(name string) Kind {
	if c, ok := catalogByName[name]; ok {
		return c.Kind
	}
	return KindText
}
