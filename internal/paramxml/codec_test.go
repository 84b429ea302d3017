package paramxml

import (
	"math"
	"testing"

	"github.com/qbic-pipelines/mqrund/internal/schema"
)

func TestEncodePinned(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want string
	}{
		{"true", true, "true"},
		{"false", false, "false"},
		{"zero int", 0, "0"},
		{"zero float", 0.0, "0"},
		{"integer valued float", 1.0, "1"},
		{"fractional float", 1.5, "1.5"},
		{"large scientific", 1e20, "1E+20"},
		{"nan", math.NaN(), "NaN"},
		{"string", "abc", "abc"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := encode(c.in)
			if err != nil {
				t.Fatalf("encode(%v) returned error: %v", c.in, err)
			}
			if got != c.want {
				t.Errorf("encode(%v) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestDecodePinned(t *testing.T) {
	trueStr := "true"
	if v, err := decode(&trueStr, schema.ScalarBoolean); err != nil || v != true {
		t.Errorf("decode(%q, boolean) = %v, %v; want true, nil", trueStr, v, err)
	}

	capTrue := "True"
	if _, err := decode(&capTrue, schema.ScalarBoolean); err == nil {
		t.Errorf("decode(%q, boolean) should fail on case mismatch", capTrue)
	}

	padded := " 3 "
	v, err := decode(&padded, schema.ScalarInteger)
	if err != nil {
		t.Fatalf("decode(%q, integer) returned error: %v", padded, err)
	}
	if v != 3 {
		t.Errorf("decode(%q, integer) = %v, want 3", padded, v)
	}
}

func TestDecodeNilIsAbsentMarker(t *testing.T) {
	v, err := decode(nil, schema.ScalarString)
	if err != nil {
		t.Fatalf("decode(nil, string) returned error: %v", err)
	}
	if v != nil {
		t.Errorf("decode(nil, string) = %v, want nil", v)
	}
}
