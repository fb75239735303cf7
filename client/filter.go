package client

// Filter is one node of the query filter grammar: either a compound and/or
// over sub-filters, or a leaf predicate on a single property.
type Filter struct {
	And      []*Filter `json:"and,omitempty"`
	Or       []*Filter `json:"or,omitempty"`
	Property string    `json:"property,omitempty"`
	Title    condition `json:"title,omitempty"`
	RichText condition `json:"rich_text,omitempty"`
	Select   condition `json:"select,omitempty"`
	Number   condition `json:"number,omitempty"`
	Checkbox condition `json:"checkbox,omitempty"`
	Date     condition `json:"date,omitempty"`
}

type condition map[string]any

// And combines filters; all must match.
func And(filters ...*Filter) *Filter { return &Filter{And: filters} }

// Or combines filters; any may match.
func Or(filters ...*Filter) *Filter { return &Filter{Or: filters} }

// TitleEquals matches records whose title property equals value.
func TitleEquals(property, value string) *Filter {
	return &Filter{Property: property, Title: condition{"equals": value}}
}

// TextEquals matches records whose rich-text property equals value.
func TextEquals(property, value string) *Filter {
	return &Filter{Property: property, RichText: condition{"equals": value}}
}

// SelectEquals matches records whose select property names value.
func SelectEquals(property, value string) *Filter {
	return &Filter{Property: property, Select: condition{"equals": value}}
}

// NumberEquals matches records whose number property equals value.
func NumberEquals(property string, value float64) *Filter {
	return &Filter{Property: property, Number: condition{"equals": value}}
}

// CheckboxEquals matches records whose checkbox property equals value.
func CheckboxEquals(property string, value bool) *Filter {
	return &Filter{Property: property, Checkbox: condition{"equals": value}}
}

// DateEquals matches records whose date property falls on the given day.
func DateEquals(property, iso string) *Filter {
	return &Filter{Property: property, Date: condition{"equals": iso}}
}

// DateAfter matches records dated strictly after the given instant.
func DateAfter(property, iso string) *Filter {
	return &Filter{Property: property, Date: condition{"after": iso}}
}

// DateOnOrAfter matches records dated on or after the given instant.
func DateOnOrAfter(property, iso string) *Filter {
	return &Filter{Property: property, Date: condition{"on_or_after": iso}}
}

// DateOnOrBefore matches records dated on or before the given instant.
func DateOnOrBefore(property, iso string) *Filter {
	return &Filter{Property: property, Date: condition{"on_or_before": iso}}
}

// Direction orders query results.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// Sort orders query results by one property.
type Sort struct {
	Property  string    `json:"property"`
	Direction Direction `json:"direction"`
}

// SortBy builds a sort expression.
func SortBy(property string, direction Direction) Sort {
	return Sort{Property: property, Direction: direction}
}
