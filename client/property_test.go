package client

import (
	"encoding/json"
	"reflect"
	"testing"
)

// reencode marshals an encoded property payload and parses it back into the
// raw form the decode path consumes.
func reencode(t *testing.T, props Properties) map[string]json.RawMessage {
	t.Helper()
	data, err := json.Marshal(props)
	if err != nil {
		t.Fatalf("marshal properties: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal properties: %v", err)
	}
	return raw
}

func TestPropertyRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value PropertyValue
	}{
		{"title", Field{Kind: KindTitle}, Title("Jane Doe")},
		{"rich_text", Field{Kind: KindRichText}, Text("QC passed")},
		{"number", Field{Kind: KindNumber}, Number(38)},
		{"null_number", Field{Kind: KindNumber}, NullNumber()},
		{"fraction_number", Field{Kind: KindNumber, Fraction: true}, Number(25)},
		{"select", Field{Kind: KindSelect}, Select("Day (7a-7p)")},
		{"null_select", Field{Kind: KindSelect}, NullSelect()},
		{"checkbox_true", Field{Kind: KindCheckbox}, Checkbox(true)},
		{"checkbox_false", Field{Kind: KindCheckbox}, Checkbox(false)},
		{"date", Field{Kind: KindDate}, Date("2024-01-15")},
		{"null_date", Field{Kind: KindDate}, NullDate()},
		{"people", Field{Kind: KindPeople}, People("A. Supervisor", "B. Lead")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := NewSchema(map[string]Field{"F": tt.field})
			props, err := schema.Encode(Record{"F": tt.value})
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			got := schema.Decode(reencode(t, props))["F"]
			if !reflect.DeepEqual(got, tt.value) {
				t.Errorf("round trip got %#v, want %#v", got, tt.value)
			}
		})
	}
}

func TestFractionConvertsOnceEachWay(t *testing.T) {
	schema := NewSchema(map[string]Field{"Idle Time %": {Kind: KindNumber, Fraction: true}})

	props, err := schema.Encode(Record{"Idle Time %": Number(25)})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	env, ok := props["Idle Time %"].(map[string]any)
	if !ok {
		t.Fatalf("got envelope %T, want map", props["Idle Time %"])
	}
	if n := env["number"].(float64); n != 0.25 {
		t.Errorf("encoded %v, want wire fraction 0.25", n)
	}

	raw := map[string]json.RawMessage{
		"Idle Time %": json.RawMessage(`{"type":"number","number":0.25}`),
	}
	if got := schema.Decode(raw)["Idle Time %"].Float(); got != 25 {
		t.Errorf("decoded %v, want domain percentage 25", got)
	}
}

func TestDecodeMismatchedTypeYieldsZero(t *testing.T) {
	numberEnvelope := json.RawMessage(`{"type":"number","number":42}`)

	tests := []struct {
		name string
		kind Kind
		raw  json.RawMessage
		want PropertyValue
	}{
		{"title_from_number", KindTitle, numberEnvelope, Title("")},
		{"rich_text_from_number", KindRichText, numberEnvelope, Text("")},
		{"number_from_title", KindNumber, json.RawMessage(`{"type":"title","title":[]}`), NullNumber()},
		{"select_from_number", KindSelect, numberEnvelope, NullSelect()},
		{"checkbox_from_number", KindCheckbox, numberEnvelope, Checkbox(false)},
		{"date_from_number", KindDate, numberEnvelope, NullDate()},
		{"people_from_number", KindPeople, numberEnvelope, People()},
		{"formula_from_number", KindFormula, numberEnvelope, Formula(0)},
		{"malformed_body", KindNumber, json.RawMessage(`{`), NullNumber()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeProperty(tt.raw, Field{Kind: tt.kind})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeAbsentFieldYieldsZero(t *testing.T) {
	schema := NewSchema(map[string]Field{
		"Staff Member": {Kind: KindTitle},
		"Samples":      {Kind: KindNumber},
		"Shift":        {Kind: KindSelect},
		"Supervisor":   {Kind: KindPeople},
		"Score":        {Kind: KindFormula},
	})

	rec := schema.Decode(map[string]json.RawMessage{})

	if got := rec["Staff Member"].String(); got != "" {
		t.Errorf("absent title decoded to %q", got)
	}
	if !rec["Samples"].IsNull() || rec["Samples"].Float() != 0 {
		t.Errorf("absent number decoded to %#v", rec["Samples"])
	}
	if got := rec["Shift"].String(); got != "" {
		t.Errorf("absent select decoded to %q", got)
	}
	if got := rec["Supervisor"].Names(); len(got) != 0 {
		t.Errorf("absent people decoded to %v", got)
	}
	if got := rec["Score"].Float(); got != 0 {
		t.Errorf("absent formula decoded to %v", got)
	}
}

func TestFormulaDecodesNumberVariantOnly(t *testing.T) {
	f := Field{Kind: KindFormula}

	got := decodeProperty(json.RawMessage(`{"type":"formula","formula":{"type":"number","number":87.5}}`), f)
	if got.Float() != 87.5 {
		t.Errorf("got %v, want 87.5", got.Float())
	}

	got = decodeProperty(json.RawMessage(`{"type":"formula","formula":{"type":"string","string":"n/a"}}`), f)
	if got.Float() != 0 {
		t.Errorf("non-number formula decoded to %v, want 0", got.Float())
	}
}

func TestAccessorsOnMismatchedVariant(t *testing.T) {
	if got := Number(5).String(); got != "" {
		t.Errorf("Number.String() = %q", got)
	}
	if got := Title("x").Float(); got != 0 {
		t.Errorf("Title.Float() = %v", got)
	}
	if Title("x").Bool() {
		t.Error("Title.Bool() = true")
	}
	if got := Checkbox(true).Names(); got != nil {
		t.Errorf("Checkbox.Names() = %v", got)
	}
}
