package coerce

import (
	"reflect"
	"testing"
)

func TestCloneNormalizesAndDetaches(t *testing.T) {
	payload := map[string]any{
		"volume": 42,
		"nested": map[string]any{"flag": true},
	}

	cloned := Clone(payload)
	if cloned["volume"] != float64(42) {
		t.Fatalf("expected numeric normalization to float64, got %#v", cloned["volume"])
	}

	nested, ok := cloned["nested"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map, got %T", cloned["nested"])
	}
	nested["flag"] = false
	if payload["nested"].(map[string]any)["flag"] != true {
		t.Fatalf("expected clone to be detached from payload")
	}

	if Clone(nil) != nil {
		t.Fatalf("expected nil clone for nil payload")
	}
}

func TestAsMap(t *testing.T) {
	if _, ok := AsMap(nil); ok {
		t.Fatalf("expected nil to not be a map")
	}
	if _, ok := AsMap("text"); ok {
		t.Fatalf("expected string to not be a map")
	}

	m, ok := AsMap(map[string]any{"a": 1})
	if !ok || m["a"] != 1 {
		t.Fatalf("expected passthrough map, got %#v (ok=%v)", m, ok)
	}

	type values map[string]any
	m, ok = AsMap(values{"a": 1})
	if !ok || m["a"] != 1 {
		t.Fatalf("expected named map type to convert, got %#v (ok=%v)", m, ok)
	}
}

func TestNumber(t *testing.T) {
	cases := []struct {
		text    string
		want    float64
		wantErr bool
	}{
		{text: "42", want: 42},
		{text: " 3.5 ", want: 3.5},
		{text: "-1", want: -1},
		{text: "", wantErr: true},
		{text: "abc", wantErr: true},
	}
	for _, tc := range cases {
		got, err := Number(tc.text)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.text)
			}
			continue
		}
		if err != nil {
			t.Fatalf("number %q: %v", tc.text, err)
		}
		if got != tc.want {
			t.Fatalf("number %q: got %v want %v", tc.text, got, tc.want)
		}
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		value any
		want  string
	}{
		{value: nil, want: ""},
		{value: "text", want: "text"},
		{value: true, want: "true"},
		{value: float64(42), want: "42"},
		{value: float64(3.5), want: "3.5"},
		{value: 7, want: "7"},
	}
	for _, tc := range cases {
		if got := String(tc.value); got != tc.want {
			t.Fatalf("string %#v: got %q want %q", tc.value, got, tc.want)
		}
	}
}

func TestEqualBridgesNumericTypes(t *testing.T) {
	if !Equal(float64(1), 1) {
		t.Fatalf("expected float64(1) == int(1)")
	}
	if !Equal(int64(5), float64(5)) {
		t.Fatalf("expected int64(5) == float64(5)")
	}
	if Equal(float64(1), "1") {
		t.Fatalf("expected number and string to differ")
	}
	if !Equal("x", "x") || Equal("x", "y") {
		t.Fatalf("expected string equality semantics")
	}
	if !Equal(true, true) || Equal(true, false) {
		t.Fatalf("expected bool equality semantics")
	}
	if !Equal(nil, nil) {
		t.Fatalf("expected nil == nil")
	}
	if !reflect.DeepEqual(map[string]any{"a": 1}, map[string]any{"a": 1}) {
		t.Fatalf("sanity: DeepEqual on maps")
	}
}
