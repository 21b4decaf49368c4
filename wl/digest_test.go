// ABOUTME: Tests for canonical serialization of label counts and final digest synthesis.
// ABOUTME: Pins the textual rendering and checks the empty-sequence digest.
package wl

import "testing"

func TestSerialize(t *testing.T) {
	tests := []struct {
		name string
		seq  []LabelCount
		want string
	}{
		{name: "empty", seq: nil, want: "[]"},
		{name: "single", seq: []LabelCount{{"ab", 1}}, want: `[("ab", 1)]`},
		{name: "multiple", seq: []LabelCount{{"ab", 2}, {"cd", 1}}, want: `[("ab", 2), ("cd", 1)]`},
		{name: "quotes escaped", seq: []LabelCount{{`a"b`, 3}}, want: `[("a\"b", 3)]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Serialize(tt.seq); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSerializeDistinguishesPairBoundaries(t *testing.T) {
	a := Serialize([]LabelCount{{"ab", 1}, {"c", 1}})
	b := Serialize([]LabelCount{{"a", 1}, {"bc", 1}})
	if a == b {
		t.Errorf("expected different renderings, both were %s", a)
	}
}

func TestSynthesizeEmpty(t *testing.T) {
	got, err := Synthesize(nil, 16)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := Compress("[]", 16)
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestSynthesizeInvalidSize(t *testing.T) {
	if _, err := Synthesize(nil, 65); err == nil {
		t.Error("expected error for digest size 65")
	}
}
