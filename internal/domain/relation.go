package domain

// DeletePolicy is what happens to a dependent row when the row it references is deleted.
type DeletePolicy int

const (
	// Cascade deletes the dependent row.
	Cascade DeletePolicy = iota
	// SetNull clears the reference and keeps the dependent row.
	SetNull
)

func (p DeletePolicy) String() string {
	switch p {
	case Cascade:
		return "CASCADE"
	case SetNull:
		return "SET NULL"
	default:
		return "UNKNOWN"
	}
}

// Relation describes one foreign key of the schema.
type Relation struct {
	Table    string
	Column   string
	Parent   string
	Nullable bool
	OnDelete DeletePolicy
}

// Relations lists every foreign key in both schemas. The migrations must declare the same policies.
var Relations = []Relation{
	{Table: "products", Column: "category_id", Parent: "categories", Nullable: true, OnDelete: SetNull},
	{Table: "carts", Column: "customer_id", Parent: "customers", OnDelete: Cascade},
	{Table: "cart_items", Column: "product_id", Parent: "products", OnDelete: Cascade},
	{Table: "cart_items", Column: "cart_id", Parent: "carts", OnDelete: Cascade},
	{Table: "orders", Column: "customer_id", Parent: "customers", Nullable: true, OnDelete: SetNull},
	{Table: "order_history", Column: "customer_id", Parent: "customers", OnDelete: Cascade},
	{Table: "order_history", Column: "order_id", Parent: "orders", OnDelete: Cascade},
	{Table: "checkout_details", Column: "customer_id", Parent: "customers", Nullable: true, OnDelete: SetNull},
	{Table: "checkout_details", Column: "order_id", Parent: "orders", Nullable: true, OnDelete: SetNull},
	{Table: "books", Column: "author_id", Parent: "authors", OnDelete: Cascade},
	{Table: "books", Column: "publisher_id", Parent: "publishers", OnDelete: Cascade},
	{Table: "reviews", Column: "book_id", Parent: "books", OnDelete: Cascade},
	{Table: "borrow_records", Column: "member_id", Parent: "library_members", Nullable: true, OnDelete: SetNull},
	{Table: "borrow_records", Column: "book_id", Parent: "books", Nullable: true, OnDelete: SetNull},
}

// DependentsOf returns the relations whose parent is table.
func DependentsOf(table string) []Relation {
	var out []Relation
	for _, r := range Relations {
		if r.Parent == table {
			out = append(out, r)
		}
	}
	return out
}
