// Package thrown gives structural access to values of unknown shape: decoded
// JSON documents, Go errors and arbitrary structs. The classifier probes these
// values by path the same way a dynamic caller would inspect a thrown object.
package thrown

import (
	"encoding/json"
	"errors"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNotObject is returned by Decode when the value has no object form.
var ErrNotObject = errors.New("thrown value is not an object")

// Value wraps a thrown value. The JSON form is computed once on first use.
// A Value is not safe for concurrent use.
type Value struct {
	raw     any
	doc     []byte
	encoded bool
	cyclic  bool
}

// New wraps v. Raw JSON (json.RawMessage) is decoded first so it is probed as
// the document it contains.
func New(v any) *Value {
	if rm, ok := v.(json.RawMessage); ok {
		var decoded any
		if err := jsonAPI.Unmarshal(rm, &decoded); err == nil {
			v = decoded
		}
	}
	return &Value{raw: v}
}

// Raw returns the wrapped value.
func (v *Value) Raw() any {
	return v.raw
}

// IsNil reports whether the wrapped value is nil or a nil pointer.
func (v *Value) IsNil() bool {
	if v.raw == nil {
		return true
	}
	rv := reflect.ValueOf(v.raw)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// IsObject reports whether the value has fields: a map, a struct, a pointer to
// either, or any error.
func (v *Value) IsObject() bool {
	if v.IsNil() {
		return false
	}
	if _, ok := v.raw.(error); ok {
		return true
	}
	rv := reflect.ValueOf(v.raw)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	}
	return false
}

// AsError returns the value as a Go error.
func (v *Value) AsError() (error, bool) {
	if v.IsNil() {
		return nil, false
	}
	err, ok := v.raw.(error)
	return err, ok
}

// JSON returns the JSON encoding of the value, nil when it cannot be encoded.
// Values that refer back to themselves have no JSON form.
func (v *Value) JSON() []byte {
	if v.encoded {
		return v.doc
	}
	v.encoded = true
	if v.IsNil() {
		return nil
	}
	if !encodable(reflect.ValueOf(v.raw)) {
		v.cyclic = true
		return nil
	}
	b, err := jsonAPI.Marshal(v.raw)
	if err != nil || !gjson.ValidBytes(b) {
		return nil
	}
	v.doc = b
	return v.doc
}

// Get returns the JSON value at a gjson path.
func (v *Value) Get(path string) gjson.Result {
	doc := v.JSON()
	if doc == nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(doc, path)
}

// String returns the non-empty string at path.
func (v *Value) String(path string) (string, bool) {
	r := v.Get(path)
	if r.Type != gjson.String || r.Str == "" {
		return "", false
	}
	return r.Str, true
}

// Message returns the value's message: a non-empty string "message" field, or
// for Go errors the error text.
func (v *Value) Message() (string, bool) {
	if !v.IsObject() {
		return "", false
	}
	if obj, ok := v.raw.(map[string]any); ok {
		if m, ok := obj["message"].(string); ok && m != "" {
			return m, true
		}
	} else if m, ok := v.String("message"); ok {
		return m, true
	}
	if err, ok := v.AsError(); ok {
		if m := err.Error(); m != "" {
			return m, true
		}
	}
	return "", false
}

// Decode decodes the object form of the value into out using json field names.
// Numbers encoded as strings are accepted, including hex with a 0x prefix.
func (v *Value) Decode(out any) error {
	var src map[string]any
	if m, ok := v.raw.(map[string]any); ok {
		src = m
	} else {
		doc := v.JSON()
		if doc == nil || !gjson.ParseBytes(doc).IsObject() {
			return ErrNotObject
		}
		if err := jsonAPI.Unmarshal(doc, &src); err != nil {
			return err
		}
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(src)
}
