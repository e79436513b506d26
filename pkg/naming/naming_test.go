package naming

import "testing"

func TestToIdentifierCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"external link", "ExternalLink"},
		{"trash", "Trash"},
		{"arrow_up-2", "ArrowUp2"},
		{"  Chevron   Down  ", "ChevronDown"},
		{"ExternalLink", "Externallink"},
		{"24px grid", "_24pxGrid"},
		{"1", "_1"},
		{"", "_"},
		{"!!!", "_"},
		{"icon/close (small)", "IconcloseSmall"},
		{"Café menu", "CafeMenu"},
		{"Ärger", "Arger"},
		{"日本 icon", "Icon"},
		{"trailing-", "Trailing"},
		{"icons", "Icons"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ToIdentifierCase(tt.in); got != tt.want {
				t.Errorf("ToIdentifierCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToPathCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Design System", "design-system"},
		{"  Icons__v2 ", "icons-v2"},
		{"--a--b--", "a-b"},
		{"Components", "components"},
		{"Brand & Logos", "brand-logos"},
		{"Café", "cafe"},
		{"", ""},
		{"???", ""},
		{"2024 Icons", "2024-icons"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ToPathCase(tt.in); got != tt.want {
				t.Errorf("ToPathCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
