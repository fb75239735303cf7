package client

import "encoding/json"

// Record maps field names to property values, one conceptual row in a
// collection. Fields absent from a Record are simply not written.
type Record map[string]PropertyValue

// Field declares how a single schema field travels on the wire. Fraction
// marks numbers the store keeps as a 0-1 ratio while the domain passes 0-100.
type Field struct {
	Kind     Kind
	Fraction bool
}

// Schema is the fixed field layout of one collection, shared by the encode
// and decode paths.
type Schema struct {
	fields map[string]Field
	title  string
}

// NewSchema builds a schema from the declared fields. Exactly one field must
// be the title kind; it is the record's identity field.
func NewSchema(fields map[string]Field) Schema {
	s := Schema{fields: fields}
	for name, f := range fields {
		if f.Kind == KindTitle {
			s.title = name
			break
		}
	}
	return s
}

// TitleField returns the name of the schema's identity field.
func (s Schema) TitleField() string { return s.title }

// Fields returns the declared field set.
func (s Schema) Fields() map[string]Field { return s.fields }

// Encode wraps each record value present in the schema into its wire
// envelope. Fields absent from the record are omitted, giving partial-update
// semantics. Formula fields are read-only and never encoded. A value whose
// variant does not match the declared kind is a schema violation.
func (s Schema) Encode(rec Record) (Properties, error) {
	props := make(Properties, len(rec))
	for name, f := range s.fields {
		v, ok := rec[name]
		if !ok {
			continue
		}
		if f.Kind == KindFormula {
			continue
		}
		if v.Kind() != f.Kind {
			return nil, &SchemaError{Field: name, Reason: "value kind " + string(v.Kind()) + " does not match declared " + string(f.Kind)}
		}
		props[name] = v.envelope(f.Fraction)
	}
	return props, nil
}

// EncodeNew encodes a record destined for creation. The title field must be
// present and non-empty; the store has no identity for the row yet, so a
// missing natural key would create an unaddressable record.
func (s Schema) EncodeNew(rec Record) (Properties, error) {
	if s.title == "" {
		return nil, &SchemaError{Field: "(title)", Reason: "schema declares no title field"}
	}
	v, ok := rec[s.title]
	if !ok || v.String() == "" {
		return nil, &SchemaError{Field: s.title, Reason: "required title field missing on create"}
	}
	return s.Encode(rec)
}

// Decode reads a wire property map against the schema. A field whose type
// tag does not match the declared kind, or which is absent entirely, decodes
// to the kind's zero value. Decode never fails.
func (s Schema) Decode(props map[string]json.RawMessage) Record {
	rec := make(Record, len(s.fields))
	for name, f := range s.fields {
		rec[name] = decodeProperty(props[name], f)
	}
	return rec
}
