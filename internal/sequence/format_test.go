package sequence

import (
	"errors"
	"reflect"
	"testing"
)

func TestFormatter_Format(t *testing.T) {
	f := Formatter{Separator: "_", PadWidth: 3}

	tests := []struct {
		name    string
		numbers []int
		want    string
	}{
		{"pair", []int{1, 2}, "001_002"},
		{"single", []int{285}, "285"},
		{"zero", []int{0}, "000"},
		{"wider than pad", []int{1234, 5}, "1234_005"},
		{"triple", []int{10, 11, 12}, "010_011_012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Format(tt.numbers); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.numbers, got, tt.want)
			}
		})
	}
}

func TestFormatter_Parse(t *testing.T) {
	f := Formatter{Separator: "_", PadWidth: 3}

	tests := []struct {
		name    string
		input   string
		arity   int
		want    []int
		wantErr bool
	}{
		{"separated", "002_001", 2, []int{2, 1}, false},
		{"whitespace separated", "002 001", 2, []int{2, 1}, false},
		{"concatenated", "002001", 2, []int{2, 1}, false},
		{"single number", "285", 1, []int{285}, false},
		{"single unpadded", "7", 1, []int{7}, false},
		{"surrounding spaces", "  031_032  ", 2, []int{31, 32}, false},
		{"wrong arity separated", "001", 2, nil, true},
		{"too many parts", "001_002_003", 2, nil, true},
		{"non-numeric part", "001_abc", 2, nil, true},
		{"negative part", "001_-02", 2, nil, true},
		{"empty", "", 2, nil, true},
		{"blank", "   ", 2, nil, true},
		{"concatenated wrong length", "0020011", 2, nil, true},
		{"concatenated too short", "0201", 2, nil, true},
		{"letters only", "abc", 1, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Parse(tt.input, tt.arity)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q, %d) = %v, want error", tt.input, tt.arity, got)
				}
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("Parse(%q) error type = %T, want *ParseError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q, %d) error = %v", tt.input, tt.arity, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q, %d) = %v, want %v", tt.input, tt.arity, got, tt.want)
			}
		})
	}
}

func TestFormatter_RoundTrip(t *testing.T) {
	f := Formatter{Separator: "_", PadWidth: 3}

	cases := [][]int{
		{0},
		{1, 2},
		{31, 32},
		{999, 1000},
		{5, 6, 7},
	}

	for _, numbers := range cases {
		got, err := f.Parse(f.Format(numbers), len(numbers))
		if err != nil {
			t.Errorf("Parse(Format(%v)) error = %v", numbers, err)
			continue
		}
		if !reflect.DeepEqual(got, numbers) {
			t.Errorf("Parse(Format(%v)) = %v", numbers, got)
		}
	}
}

func TestNextStart(t *testing.T) {
	tests := []struct {
		previousLast int
		skipFactor   int
		want         int
	}{
		{2, 1, 4},
		{2, 0, 3},
		{5, 3, 9},
		{0, 0, 1},
	}

	for _, tt := range tests {
		if got := NextStart(tt.previousLast, tt.skipFactor); got != tt.want {
			t.Errorf("NextStart(%d, %d) = %d, want %d", tt.previousLast, tt.skipFactor, got, tt.want)
		}
	}
}
