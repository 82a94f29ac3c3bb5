// Package countparse resolves an integer count from the heterogeneous
// payloads the backend returns for view-count lookups.
//
// A payload may be a bare number, an array whose length is the count, or an
// object exposing one of several conventional field names, possibly one
// level down. Extraction is an ordered list of rules; the first rule that
// recognizes the payload wins and everything else defaults to zero.
package countparse

import (
	"bytes"
	"encoding/json"
	"sort"
)

// rule is one recognizer over the raw payload.
type rule struct {
	name  string
	apply func(raw json.RawMessage) (int, bool)
}

// Rules in precedence order: direct number, array length, top-level count
// fields, then the same fields one object level down.
var rules = []rule{
	{name: "number", apply: asNumber},
	{name: "array_length", apply: asArrayLength},
	{name: "count_field", apply: objectField("count")},
	{name: "total_views_field", apply: objectField("totalViews")},
	{name: "total_field", apply: objectField("total")},
	{name: "nested_object", apply: asNested},
}

// Extract resolves a count from raw. Unrecognized or invalid payloads,
// including null, resolve to zero. Counts never go negative.
func Extract(raw json.RawMessage) int {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0
	}
	for _, r := range rules {
		if n, ok := r.apply(trimmed); ok {
			if n < 0 {
				return 0
			}
			return n
		}
	}
	return 0
}

func asNumber(raw json.RawMessage) (int, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return int(f), true
}

func asArrayLength(raw json.RawMessage) (int, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, false
	}
	return len(items), true
}

// objectField recognizes a numeric field on a top-level object.
func objectField(field string) func(raw json.RawMessage) (int, bool) {
	return func(raw json.RawMessage) (int, bool) {
		obj, ok := asObject(raw)
		if !ok {
			return 0, false
		}
		val, ok := obj[field]
		if !ok {
			return 0, false
		}
		return asNumber(val)
	}
}

// asNested descends exactly one object level and retries the count, total
// views and items-length conventions there. Keys are visited in sorted order
// so extraction is deterministic when several nested objects match.
func asNested(raw json.RawMessage) (int, bool) {
	obj, ok := asObject(raw)
	if !ok {
		return 0, false
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		inner, ok := asObject(obj[k])
		if !ok {
			continue
		}
		for _, field := range []string{"count", "totalViews"} {
			if val, ok := inner[field]; ok {
				if n, ok := asNumber(val); ok {
					return n, true
				}
			}
		}
		if items, ok := inner["items"]; ok {
			if n, ok := asArrayLength(items); ok {
				return n, true
			}
		}
	}
	return 0, false
}

func asObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}
