package client

import (
	"errors"
	"testing"
)

func perfTestSchema() Schema {
	return NewSchema(map[string]Field{
		"Staff Member":      {Kind: KindTitle},
		"Date":              {Kind: KindDate},
		"Samples Processed": {Kind: KindNumber},
		"Performance Score": {Kind: KindFormula},
		"Notes":             {Kind: KindRichText},
	})
}

func TestEncodeOmitsAbsentFields(t *testing.T) {
	schema := perfTestSchema()
	props, err := schema.Encode(Record{
		"Staff Member": Title("Jane Doe"),
		"Date":         Date("2024-01-15"),
	})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if len(props) != 2 {
		t.Errorf("got %d fields, want 2 (partial update)", len(props))
	}
	if _, ok := props["Samples Processed"]; ok {
		t.Error("absent field was encoded")
	}
	if _, ok := props["Notes"]; ok {
		t.Error("absent field was encoded")
	}
}

func TestEncodeSkipsFormulaFields(t *testing.T) {
	schema := perfTestSchema()
	props, err := schema.Encode(Record{
		"Staff Member":      Title("Jane Doe"),
		"Performance Score": Formula(92),
	})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if _, ok := props["Performance Score"]; ok {
		t.Error("formula field was encoded; formulas are read-only")
	}
}

func TestEncodeRejectsMismatchedKind(t *testing.T) {
	schema := perfTestSchema()
	_, err := schema.Encode(Record{"Samples Processed": Title("not a number")})
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("got %v, want *SchemaError", err)
	}
	if schemaErr.Field != "Samples Processed" {
		t.Errorf("got field %q", schemaErr.Field)
	}
}

func TestEncodeNewRequiresTitle(t *testing.T) {
	schema := perfTestSchema()

	_, err := schema.EncodeNew(Record{"Date": Date("2024-01-15")})
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("got %v, want *SchemaError", err)
	}
	if schemaErr.Field != "Staff Member" {
		t.Errorf("got field %q, want Staff Member", schemaErr.Field)
	}

	_, err = schema.EncodeNew(Record{"Staff Member": Title("")})
	if !errors.As(err, &schemaErr) {
		t.Fatalf("empty title: got %v, want *SchemaError", err)
	}

	props, err := schema.EncodeNew(Record{"Staff Member": Title("Jane Doe")})
	if err != nil {
		t.Fatalf("EncodeNew() error: %v", err)
	}
	if _, ok := props["Staff Member"]; !ok {
		t.Error("title field missing from encoded payload")
	}
}

func TestTitleField(t *testing.T) {
	if got := perfTestSchema().TitleField(); got != "Staff Member" {
		t.Errorf("TitleField() = %q, want Staff Member", got)
	}
	if got := NewSchema(map[string]Field{"N": {Kind: KindNumber}}).TitleField(); got != "" {
		t.Errorf("TitleField() = %q, want empty", got)
	}
}
