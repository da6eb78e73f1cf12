package style

import "testing"

func TestHexToRGBA(t *testing.T) {
	tests := []struct {
		color string
		alpha string
		want  string
	}{
		{"#3b82f6", "0.15", "rgba(59, 130, 246, 0.15)"},
		{"#FFFFFF", "1", "rgba(255, 255, 255, 1)"},
		{"  #000000 ", "0.5", "rgba(0, 0, 0, 0.5)"},
		{"#fff", "0.5", "#fff"},
		{"rebeccapurple", "0.5", "rebeccapurple"},
		{"rgba(1, 2, 3, 0.4)", "0.9", "rgba(1, 2, 3, 0.4)"},
		{"#12345g", "0.5", "#12345g"},
		{"3b82f6", "0.15", "rgba(59, 130, 246, 0.15)"},
		{"3b82f6a", "0.15", "3b82f6a"},
	}
	for _, tt := range tests {
		if got := HexToRGBA(tt.color, tt.alpha); got != tt.want {
			t.Errorf("HexToRGBA(%q, %q) = %q, want %q", tt.color, tt.alpha, got, tt.want)
		}
	}
}
