package subdomain

import (
	"reflect"
	"testing"
)

func TestIsSubdomain(t *testing.T) {
	tests := []struct {
		name   string
		host   string
		domain string
		want   bool
	}{
		{"apex", "foo.com", "foo.com", true},
		{"child", "bar.foo.com", "foo.com", true},
		{"nested child", "a.b.foo.com", "foo.com", true},
		{"upper case and trailing dot", "BAR.Foo.com.", "foo.com", true},
		{"wildcard prefix", "*.bar.foo.com", "foo.com", true},
		{"suffix without label boundary", "barfoo.com", "foo.com", false},
		{"different domain", "bar.example.com", "foo.com", false},
		{"parent of target", "com", "foo.com", false},
		{"leading hyphen label", "-bar.foo.com", "foo.com", false},
		{"empty label", "bar..foo.com", "foo.com", false},
		{"invalid characters", "b@r.foo.com", "foo.com", false},
		{"empty", "", "foo.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSubdomain(tt.host, tt.domain); got != tt.want {
				t.Errorf("IsSubdomain(%q, %q) = %v, want %v", tt.host, tt.domain, got, tt.want)
			}
		})
	}
}

func TestValidateDomain(t *testing.T) {
	got, err := ValidateDomain("  Example.COM. ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "example.com" {
		t.Errorf("got %q, want %q", got, "example.com")
	}

	for _, bad := range []string{"", "com", "co.uk", "https://example.com", "example.com/path", "exa mple.com"} {
		if _, err := ValidateDomain(bad); err == nil {
			t.Errorf("ValidateDomain(%q): expected error", bad)
		}
	}
}

func TestSet(t *testing.T) {
	s := NewSet("b.foo.com", "a.foo.com")
	if !s.Add("c.foo.com") {
		t.Error("expected c.foo.com to be new")
	}
	if s.Add("a.foo.com") {
		t.Error("expected a.foo.com to be a duplicate")
	}

	other := NewSet("d.foo.com", "a.foo.com")
	s.Union(other)

	want := []string{"a.foo.com", "b.foo.com", "c.foo.com", "d.foo.com"}
	if got := s.Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
	if s.Len() != 4 {
		t.Errorf("got %d names, want 4", s.Len())
	}
	if !NewSet("x", "y").Equal(NewSet("y", "x")) {
		t.Error("expected sets with the same names to be equal")
	}
}
