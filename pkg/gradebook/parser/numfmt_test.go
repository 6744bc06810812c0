package parser

import "testing"

func TestIsDateNumFmt(t *testing.T) {
	tests := []struct {
		id       int
		expected bool
	}{
		{0, false},  // General
		{2, false},  // 0.00
		{14, true},  // m/d/yyyy
		{22, true},  // m/d/yy h:mm
		{45, true},  // mm:ss
		{49, false}, // @
		{57, true},  // CJK date
		{164, false},
	}

	for _, tt := range tests {
		if result := IsDateNumFmt(tt.id); result != tt.expected {
			t.Errorf("IsDateNumFmt(%d) = %v, expected %v", tt.id, result, tt.expected)
		}
	}
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"dd/mm/yyyy", true},
		{"yyyy-mm-dd hh:mm:ss", true},
		{"[$-409]d-mmm-yy;@", true},
		{"[h]:mm", true},
		{"[mm]", true},
		{"h:mm AM/PM", true},
		{"General", false},
		{"0.00", false},
		{"#,##0 \"đồng\"", false},
		{"0 \"days\"", false},
		{"[Red]0.00;[Blue]-0.00", false},
		{"0.00E+00", false},
		{"@", false},
		{"0\\d", false},
		{"_(* #,##0_);_(* (#,##0);_(* \"-\"_);_(@_)", false},
		{"0.00;dd/mm/yyyy", false},
		{"\"unterminated", false},
	}

	for _, tt := range tests {
		if result := IsDateFormatCode(tt.code); result != tt.expected {
			t.Errorf("IsDateFormatCode(%q) = %v, expected %v", tt.code, result, tt.expected)
		}
	}
}
