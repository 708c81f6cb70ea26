package presets

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCatalog(t *testing.T) {
	c := Catalog()
	if len(c) != 7 {
		t.Fatalf("len(Catalog()) = %d, want 7", len(c))
	}
	if c[0] != (Preset{"Facebook Post", 1200, 630}) {
		t.Errorf("first preset = %v", c[0])
	}
	c[0].Width = 1
	if Catalog()[0].Width != 1200 {
		t.Error("Catalog returned shared storage")
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		want Preset
	}{
		{"a4 landscape", Preset{"A4 Landscape", 3508, 2480}},
		{"YouTube Thumbnail", Preset{"YouTube Thumbnail", 1280, 720}},
		{"instagram/story", Preset{"Story", 1080, 1920}},
		{"Facebook/Cover", Preset{"Cover", 1125, 633}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(tt.name)
			if err != nil || got != tt.want {
				t.Errorf("Find(%q) = %v, %v; want %v", tt.name, got, err, tt.want)
			}
		})
	}
	for _, bad := range []string{"Story", "tiktok/story", "facebook/banner"} {
		if _, err := Find(bad); !errors.Is(err, ErrUnknown) {
			t.Errorf("Find(%q) error = %v, want ErrUnknown", bad, err)
		}
	}
}

func TestGroups(t *testing.T) {
	fb, err := Group("facebook")
	if err != nil || len(fb) != 5 {
		t.Fatalf("Group(facebook) = %d presets, %v", len(fb), err)
	}
	ig, err := Group("Instagram")
	if err != nil || len(ig) != 2 || ig[1].Width != 320 {
		t.Errorf("Group(instagram) = %v, %v", ig, err)
	}
	for _, g := range GroupNames() {
		if _, err := Group(g); err != nil {
			t.Errorf("GroupNames lists %q but Group fails: %v", g, err)
		}
	}
}

func TestParseSize(t *testing.T) {
	p, err := ParseSize(" 640X480 ")
	if err != nil || p.Width != 640 || p.Height != 480 {
		t.Errorf("ParseSize = %v, %v", p, err)
	}
	for _, bad := range []string{"640", "0x10", "ax4", "4x-1", ""} {
		if _, err := ParseSize(bad); err == nil {
			t.Errorf("ParseSize(%q) succeeded", bad)
		}
	}
}

func TestNamedPicker(t *testing.T) {
	ctx := context.Background()
	got, err := Named{Name: "twitter post"}.Pick(ctx, Catalog())
	if err != nil || got.Width != 1024 {
		t.Errorf("Pick = %v, %v", got, err)
	}
	if _, err := (Named{}).Pick(ctx, Catalog()); !errors.Is(err, ErrCanceled) {
		t.Errorf("empty name error = %v, want ErrCanceled", err)
	}
}

func TestPromptPicker(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"second", "2\n", "Instagram Post", nil},
		{"retry after bad input", "zero\n99\n7\n", "A4 Landscape", nil},
		{"empty line cancels", "\n", "", ErrCanceled},
		{"q cancels", "q\n", "", ErrCanceled},
		{"eof cancels", "", "", ErrCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Prompt{In: strings.NewReader(tt.input), Out: &out}.Pick(context.Background(), Catalog())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got.Name != tt.want {
				t.Errorf("picked %q, want %q", got.Name, tt.want)
			}
			if !strings.Contains(out.String(), "1) Facebook Post (1200x630)") {
				t.Errorf("listing missing entries:\n%s", out.String())
			}
		})
	}
}
