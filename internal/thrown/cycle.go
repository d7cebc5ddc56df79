package thrown

import "reflect"

// maxEncodeDepth bounds how deep a value is walked before it is treated as
// having no JSON form.
const maxEncodeDepth = 512

type visitKey struct {
	ptr  uintptr
	kind reflect.Kind
	len  int
}

// encodable reports whether the JSON encoder can walk rv without recursing
// forever: no map, slice or pointer refers back to one of its ancestors, and
// nesting stays under maxEncodeDepth. Shared references that do not loop are
// fine.
func encodable(rv reflect.Value) bool {
	return walkEncodable(rv, map[visitKey]struct{}{}, 0)
}

func walkEncodable(rv reflect.Value, path map[visitKey]struct{}, depth int) bool {
	if depth > maxEncodeDepth {
		return false
	}
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return walkEncodable(rv.Elem(), path, depth+1)
	case reflect.Ptr, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return true
		}
		key := visitKey{ptr: rv.Pointer(), kind: rv.Kind()}
		if rv.Kind() == reflect.Slice {
			key.len = rv.Len()
		}
		if _, seen := path[key]; seen {
			return false
		}
		path[key] = struct{}{}
		defer delete(path, key)
		switch rv.Kind() {
		case reflect.Ptr:
			return walkEncodable(rv.Elem(), path, depth+1)
		case reflect.Map:
			iter := rv.MapRange()
			for iter.Next() {
				if !walkEncodable(iter.Value(), path, depth+1) {
					return false
				}
			}
			return true
		default:
			return walkElems(rv, path, depth)
		}
	case reflect.Array:
		return walkElems(rv, path, depth)
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			if f := t.Field(i); !f.IsExported() && !f.Anonymous {
				continue
			}
			if !walkEncodable(rv.Field(i), path, depth+1) {
				return false
			}
		}
	}
	return true
}

func walkElems(rv reflect.Value, path map[visitKey]struct{}, depth int) bool {
	for i := 0; i < rv.Len(); i++ {
		if !walkEncodable(rv.Index(i), path, depth+1) {
			return false
		}
	}
	return true
}
