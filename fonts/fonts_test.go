package fonts

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
)

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestFaceFallsBackToGoRegular(t *testing.T) {
	r := newResolver(t)
	f := r.Face("No Such Family", 20)
	if f == nil {
		t.Fatal("Face returned nil")
	}
	if f.Source() != r.fallback {
		t.Error("unknown family should use the fallback source")
	}
	if f.Size() != 20 {
		t.Errorf("Size() = %v, want 20", f.Size())
	}
}

func TestLookupReportsMissingFamily(t *testing.T) {
	r := newResolver(t)
	if _, err := r.Lookup("Arial"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup(Arial) error = %v, want ErrNotFound", err)
	}
}

func TestGenericFamilies(t *testing.T) {
	r := newResolver(t)
	tests := []struct {
		family string
		mono   bool
	}{
		{"sans-serif", false},
		{"serif", false},
		{"monospace", true},
		{"  MONOSPACE ", true},
		{`"monospace"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.family, func(t *testing.T) {
			src, err := r.Lookup(tt.family)
			if err != nil {
				t.Fatalf("Lookup error = %v", err)
			}
			if (src == r.mono) != tt.mono {
				t.Errorf("Lookup(%q) mono = %v, want %v", tt.family, src == r.mono, tt.mono)
			}
		})
	}
}

func TestRegisteredFamily(t *testing.T) {
	r := newResolver(t)
	before := r.Face("Go Bold", 12)
	if err := r.Register("Go Bold", gobold.TTF); err != nil {
		t.Fatalf("Register error = %v", err)
	}
	after := r.Face("go bold", 12)
	if after.Source() == r.fallback {
		t.Error("registered family should not use the fallback")
	}
	if before == after {
		t.Error("Register should invalidate cached faces")
	}
}

func TestRegisterRejectsGarbage(t *testing.T) {
	r := newResolver(t)
	if err := r.Register("junk", []byte("not a font")); err == nil {
		t.Error("Register accepted invalid font data")
	}
}

func TestFamilyListPicksFirstAvailable(t *testing.T) {
	r := newResolver(t)
	if err := r.Register("Brand", gobold.TTF); err != nil {
		t.Fatal(err)
	}
	brand, _ := r.Lookup("Brand")

	src, err := r.Lookup("Missing, Brand, monospace")
	if err != nil {
		t.Fatalf("Lookup error = %v", err)
	}
	if src != brand {
		t.Error("expected the first available family in the list")
	}

	src, err = r.Lookup("Missing, , monospace")
	if err != nil || src != r.mono {
		t.Errorf("Lookup = %v, %v; want monospace", src, err)
	}
}

func TestFacesAreCached(t *testing.T) {
	r := newResolver(t)
	a := r.Face("sans-serif", 16)
	b := r.Face("sans-serif", 16)
	if a != b {
		t.Error("same family and size should return the cached face")
	}
	if c := r.Face("sans-serif", 17); c == a {
		t.Error("different sizes must not share a face")
	}
}

func TestSystemLookupDisabledByDefault(t *testing.T) {
	r := newResolver(t)
	_, _ = r.Lookup("DejaVu Sans")
	if r.fontMap != nil {
		t.Error("system fonts scanned without WithSystemFonts")
	}
}
