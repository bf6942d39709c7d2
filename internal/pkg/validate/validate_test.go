package validate

import "testing"

func TestEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"user.name@example.co.in", true},
		{"no-at-sign.com", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
		{"user@nodot", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := Email(tc.in); got != tc.want {
			t.Errorf("Email(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPhone(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"9876543210", true},
		{"6000000000", true},
		{"5876543210", false}, // must start 6-9
		{"98765", false},
		{"98765432101", false},
		{"98765-4321", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := Phone(tc.in); got != tc.want {
			t.Errorf("Phone(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPassword(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Passw0rd", true},
		{"abc12345", true},
		{"abcdefgh", false}, // no digit
		{"12345678", false}, // no letter
		{"ab12", false},     // too short
		{"pass word1", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := Password(tc.in); got != tc.want {
			t.Errorf("Password(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
