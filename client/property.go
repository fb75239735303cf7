package client

import "encoding/json"

// Kind identifies the wire representation of a single property.
type Kind string

// Property kinds supported by the codec. Formula is read-only: it decodes
// from query results but is never encoded back.
const (
	KindTitle    Kind = "title"
	KindRichText Kind = "rich_text"
	KindNumber   Kind = "number"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
	KindDate     Kind = "date"
	KindPeople   Kind = "people"
	KindFormula  Kind = "formula"
)

// PropertyValue is a tagged union over the typed property envelopes the
// workspace service exchanges. Accessors on a mismatched variant return the
// zero value rather than failing; absence is indistinguishable from zero.
type PropertyValue struct {
	kind  Kind
	str   string
	num   float64
	b     bool
	names []string
	null  bool
}

// Title returns a title value, the identity field of a record.
func Title(s string) PropertyValue { return PropertyValue{kind: KindTitle, str: s} }

// Text returns a rich-text value.
func Text(s string) PropertyValue { return PropertyValue{kind: KindRichText, str: s} }

// Number returns a numeric value.
func Number(f float64) PropertyValue { return PropertyValue{kind: KindNumber, num: f} }

// NullNumber returns an empty numeric value.
func NullNumber() PropertyValue { return PropertyValue{kind: KindNumber, null: true} }

// Select returns a select value naming one option.
func Select(name string) PropertyValue { return PropertyValue{kind: KindSelect, str: name} }

// NullSelect returns an unset select value.
func NullSelect() PropertyValue { return PropertyValue{kind: KindSelect, null: true} }

// Checkbox returns a boolean value.
func Checkbox(b bool) PropertyValue { return PropertyValue{kind: KindCheckbox, b: b} }

// Date returns a date value holding an ISO-8601 string.
func Date(iso string) PropertyValue { return PropertyValue{kind: KindDate, str: iso} }

// NullDate returns an unset date value.
func NullDate() PropertyValue { return PropertyValue{kind: KindDate, null: true} }

// People returns a people value holding display names.
func People(names ...string) PropertyValue {
	return PropertyValue{kind: KindPeople, names: names}
}

// Formula returns a computed numeric value as decoded from the store.
func Formula(f float64) PropertyValue { return PropertyValue{kind: KindFormula, num: f} }

// Kind reports which variant the value holds.
func (v PropertyValue) Kind() Kind { return v.kind }

// IsNull reports whether the value is an explicit null.
func (v PropertyValue) IsNull() bool { return v.null }

// String returns the text content for title, rich_text, select and date
// variants, and "" for everything else.
func (v PropertyValue) String() string {
	switch v.kind {
	case KindTitle, KindRichText, KindSelect, KindDate:
		if v.null {
			return ""
		}
		return v.str
	default:
		return ""
	}
}

// Float returns the numeric content for number and formula variants, and 0
// for everything else.
func (v PropertyValue) Float() float64 {
	switch v.kind {
	case KindNumber, KindFormula:
		if v.null {
			return 0
		}
		return v.num
	default:
		return 0
	}
}

// Bool returns the checkbox content, false for everything else.
func (v PropertyValue) Bool() bool {
	if v.kind != KindCheckbox {
		return false
	}
	return v.b
}

// Names returns the people display names, nil for everything else.
func (v PropertyValue) Names() []string {
	if v.kind != KindPeople {
		return nil
	}
	return v.names
}

// zeroValue returns the defensive-decode fallback for a kind.
func zeroValue(k Kind) PropertyValue {
	switch k {
	case KindNumber:
		return NullNumber()
	case KindSelect:
		return NullSelect()
	case KindDate:
		return NullDate()
	case KindCheckbox:
		return Checkbox(false)
	case KindPeople:
		return People()
	case KindFormula:
		return Formula(0)
	case KindRichText:
		return Text("")
	default:
		return Title("")
	}
}

// Wire shapes shared by encode and decode.
type richText struct {
	Text textContent `json:"text"`
}

type textContent struct {
	Content string `json:"content"`
}

type selectOption struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

type person struct {
	Name string `json:"name"`
}

type formulaValue struct {
	Type   string   `json:"type"`
	Number *float64 `json:"number"`
}

// envelope wraps the value in the wire shape for its kind. fraction marks
// numbers the store keeps as 0-1 while the domain passes 0-100; the division
// happens here exactly once.
func (v PropertyValue) envelope(fraction bool) any {
	switch v.kind {
	case KindTitle:
		return map[string]any{"title": []richText{{Text: textContent{Content: v.str}}}}
	case KindRichText:
		return map[string]any{"rich_text": []richText{{Text: textContent{Content: v.str}}}}
	case KindNumber:
		if v.null {
			return map[string]any{"number": nil}
		}
		n := v.num
		if fraction {
			n = n / 100
		}
		return map[string]any{"number": n}
	case KindSelect:
		if v.null {
			return map[string]any{"select": nil}
		}
		return map[string]any{"select": selectOption{Name: v.str}}
	case KindCheckbox:
		return map[string]any{"checkbox": v.b}
	case KindDate:
		if v.null {
			return map[string]any{"date": nil}
		}
		return map[string]any{"date": dateValue{Start: v.str}}
	case KindPeople:
		people := make([]person, 0, len(v.names))
		for _, n := range v.names {
			people = append(people, person{Name: n})
		}
		return map[string]any{"people": people}
	default:
		return nil
	}
}

// decodeProperty reads one wire envelope against its declared field. A
// mismatched type tag, an absent field or a malformed body all fall back to
// the kind's zero value; decoding never fails.
func decodeProperty(raw json.RawMessage, f Field) PropertyValue {
	if len(raw) == 0 {
		return zeroValue(f.Kind)
	}

	var env struct {
		Type     string         `json:"type"`
		Title    []richText     `json:"title"`
		RichText []richText     `json:"rich_text"`
		Number   *float64       `json:"number"`
		Select   *selectOption  `json:"select"`
		Checkbox bool           `json:"checkbox"`
		Date     *dateValue     `json:"date"`
		People   []person       `json:"people"`
		Formula  *formulaValue  `json:"formula"`
	}
	// Response envelopes carry a type tag; request-shaped payloads do not.
	// A present tag that disagrees with the schema falls back to zero, an
	// absent tag trusts the declared kind.
	if err := json.Unmarshal(raw, &env); err != nil || (env.Type != "" && env.Type != string(f.Kind)) {
		return zeroValue(f.Kind)
	}

	switch f.Kind {
	case KindTitle:
		if len(env.Title) == 0 {
			return Title("")
		}
		return Title(env.Title[0].Text.Content)
	case KindRichText:
		if len(env.RichText) == 0 {
			return Text("")
		}
		return Text(env.RichText[0].Text.Content)
	case KindNumber:
		if env.Number == nil {
			return NullNumber()
		}
		n := *env.Number
		if f.Fraction {
			n = n * 100
		}
		return Number(n)
	case KindSelect:
		if env.Select == nil {
			return NullSelect()
		}
		return Select(env.Select.Name)
	case KindCheckbox:
		return Checkbox(env.Checkbox)
	case KindDate:
		if env.Date == nil {
			return NullDate()
		}
		return Date(env.Date.Start)
	case KindPeople:
		if len(env.People) == 0 {
			return People()
		}
		names := make([]string, 0, len(env.People))
		for _, p := range env.People {
			names = append(names, p.Name)
		}
		return People(names...)
	case KindFormula:
		if env.Formula == nil || env.Formula.Type != "number" || env.Formula.Number == nil {
			return Formula(0)
		}
		return Formula(*env.Formula.Number)
	default:
		return zeroValue(f.Kind)
	}
}
