package storage

import "fmt"

// Table is a closed set of destination tables the import pipeline may load
// into. Keeping this a typed constant (rather than a free-form table name
// string) makes an unsupported destination a compile error instead of a
// runtime mismatch deep inside the loader.
type Table int

const (
	TablePurchaseOrders Table = iota
)

// ImportMode controls what the loader does with existing rows.
type ImportMode int

const (
	// ModeReplace clears the table (and resets its id sequence) inside the
	// import transaction before inserting. Used for the first file of a batch.
	ModeReplace ImportMode = iota
	// ModeAppend inserts without clearing. Duplicate suppression across files
	// is deliberately absent; callers own it via Replace-first ordering.
	ModeAppend
)

func (t Table) Name() string {
	switch t {
	case TablePurchaseOrders:
		return "purchase_orders"
	default:
		return fmt.Sprintf("unknown_table_%d", int(t))
	}
}

func (m ImportMode) String() string {
	if m == ModeReplace {
		return "replace"
	}
	return "append"
}

// purchaseOrderColumns are the loadable columns of purchase_orders, in schema
// order. The surrogate id is excluded: it is never imported.
var purchaseOrderColumns = []string{
	"Entity",
	"Site_Location",
	"Entity_Level_2",
	"Entity_Level_3",
	"SCSS_Category_Team",
	"UNSPSC_Code",
	"UNSPSC_Segment_Title",
	"UNSPSC_Family_Title",
	"UNSPSC_Class_Title",
	"UNSPSC_Commodity_Title",
	"PO_Year",
	"PO_Month",
	"PO_Week",
	"PO_Date",
	"Destination_Location",
	"Destination_Location_Name",
	"Ship_To",
	"Ship_To_Name",
	"Special_Handling",
	"Rush_Flag",
	"PO_Number",
	"PO_Line_Number",
	"Oracle_Item_Number",
	"Item_Description",
	"Item_Type",
	"PO_Quantity_Ordered",
	"PO_Quantity_Ordered_LUOM",
	"Buy_UOM",
	"Buy_UOM_Multiplier",
	"Manufacturer_Name",
	"Manufacturer_Number",
	"Supplier_Number",
	"Supplier_Name",
	"Supplier_Site",
	"ValueLink_Flag",
	"Cost_Center_Group",
	"PPI_Flag",
}

// Columns returns the loadable column set of the table, in schema order.
func (t Table) Columns() []string {
	switch t {
	case TablePurchaseOrders:
		return purchaseOrderColumns
	default:
		return nil
	}
}

func (t Table) columnSet() map[string]struct{} {
	cols := t.Columns()
	set := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		set[c] = struct{}{}
	}
	return set
}
