package domain

import "testing"

func TestDecorateChannelName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"General", "[General]"},
		{"Late night raid", "[Late night raid]"},
		{"", "[]"},
		{"[already]", "[[already]]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DecorateChannelName(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
