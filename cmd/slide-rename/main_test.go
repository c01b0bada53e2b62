package main

import "testing"

func TestParseEdit(t *testing.T) {
	tests := []struct {
		input   string
		index   int
		text    string
		wantErr bool
	}{
		{"3=031_032", 3, "031_032", false},
		{"0=001 002", 0, "001 002", false},
		{" 12 =005_006", 12, "005_006", false},
		{"3x=031_032", 0, "", true},
		{"=031_032", 0, "", true},
		{"three=031_032", 0, "", true},
		{"031_032", 0, "", true},
	}

	for _, tt := range tests {
		index, text, err := parseEdit(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseEdit(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if index != tt.index || text != tt.text {
			t.Errorf("parseEdit(%q) = %d, %q, want %d, %q", tt.input, index, text, tt.index, tt.text)
		}
	}
}
