package model

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

// Attributes holds JSON members that are not part of a record's fixed shape.
// Updates may introduce them; they are rendered back next to the known fields.
type Attributes map[string]json.RawMessage

func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

var knownFields sync.Map // reflect.Type -> map[string]struct{}

// fieldNames returns the JSON member names declared by the struct behind v.
func fieldNames(v interface{}) map[string]struct{} {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := knownFields.Load(t); ok {
		return cached.(map[string]struct{})
	}

	names := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName := strings.SplitN(tag, ",", 2)[0]
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		names[name] = struct{}{}
	}

	knownFields.Store(t, names)
	return names
}

// marshalWithAttributes encodes v and folds attrs into the resulting object.
// Known fields always win over an attribute of the same name.
func marshalWithAttributes(v interface{}, attrs Attributes) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(attrs) == 0 {
		return data, err
	}

	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	for k, val := range attrs {
		if _, exists := doc[k]; !exists {
			doc[k] = val
		}
	}
	return json.Marshal(doc)
}

// unmarshalWithAttributes decodes data into v and returns every member v
// does not declare. Only members whose keys match a declared JSON name
// exactly reach v; encoding/json would otherwise fold case and let "AGE" or
// "medicalrecordnumber" land on a declared field.
func unmarshalWithAttributes(data []byte, v interface{}) (Attributes, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	known := fieldNames(v)
	exact := make(map[string]json.RawMessage, len(doc))
	var attrs Attributes
	for k, val := range doc {
		if _, ok := known[k]; ok {
			exact[k] = val
			continue
		}
		if attrs == nil {
			attrs = make(Attributes)
		}
		attrs[k] = val
	}

	filtered, err := json.Marshal(exact)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(filtered, v); err != nil {
		return nil, err
	}
	return attrs, nil
}

// Merge overlays every member of patch onto the JSON form of current and
// decodes the result back into a fresh T. Members named in protected are
// never overwritten, and a null for a declared field keeps the prior value.
func Merge[T any](current T, patch map[string]json.RawMessage, protected ...string) (T, error) {
	var merged T

	base, err := json.Marshal(current)
	if err != nil {
		return merged, err
	}

	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &doc); err != nil {
		return merged, err
	}

	skip := make(map[string]struct{}, len(protected))
	for _, name := range protected {
		skip[name] = struct{}{}
	}
	known := fieldNames(&merged)
	for k, v := range patch {
		if _, ok := skip[k]; ok {
			continue
		}
		if _, ok := known[k]; ok && isNull(v) {
			continue
		}
		doc[k] = v
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return merged, err
	}
	if err := json.Unmarshal(out, &merged); err != nil {
		return merged, err
	}
	return merged, nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append(make([]string, 0, len(in)), in...)
}
