package condominio

import "testing"

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Residencial Aurora", "residencial-aurora"},
		{"  jardim-europa  ", "jardim-europa"},
		{"VILA REAL", "vila-real"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range tests {
		if got := normalizeSlug(tc.in); got != tc.want {
			t.Errorf("normalizeSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
