package main

import (
	"reflect"
	"testing"
)

func TestParseIndices(t *testing.T) {
	tests := []struct {
		spec  string
		order int
		want  []int
	}{
		{"0", 1, []int{0}},
		{"3,1,7", 1, []int{3, 1, 7}},
		{"2-5", 1, []int{2, 3, 4, 5}},
		{"0, 4-6, 9", 1, []int{0, 4, 5, 6, 9}},
		{"", 0, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
	}

	for _, tt := range tests {
		got, err := parseIndices(tt.spec, tt.order)
		if err != nil {
			t.Errorf("parseIndices(%q): %v", tt.spec, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseIndices(%q) = %v, want %v", tt.spec, got, tt.want)
		}
	}
}

func TestParseIndicesErrors(t *testing.T) {
	for _, spec := range []string{"abc", "5-2", "1,,x", ","} {
		if _, err := parseIndices(spec, 1); err == nil {
			t.Errorf("parseIndices(%q): expected error", spec)
		}
	}
}
