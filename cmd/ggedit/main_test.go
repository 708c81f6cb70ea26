package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/ggedit/layer"
)

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDecodeScriptValidation(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"minimal", `{"layers":[{"text":"hi"}]}`, ""},
		{"size", `{"width":10,"height":20,"layers":[]}`, ""},
		{"half size", `{"width":10,"layers":[]}`, "together"},
		{"preset and size", `{"preset":"A4 Portrait","width":1,"height":1,"layers":[]}`, "either"},
		{"empty layer", `{"layers":[{}]}`, "exactly one"},
		{"both kinds", `{"layers":[{"text":"a","image":"b.png"}]}`, "exactly one"},
		{"style on image", `{"layers":[{"image":"b.png","color":"red"}]}`, "text style"},
		{"removal on text", `{"layers":[{"text":"a","removeBackground":true}]}`, "removeBackground"},
		{"unknown field", `{"layers":[],"zoom":2}`, "unknown field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeScript(strings.NewReader(tt.json))
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestScriptLayerEdits(t *testing.T) {
	s, err := DecodeScript(strings.NewReader(`{"layers":[{"text":"a","x":5,"width":40,"fontSize":30,"color":"red"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	var props []string
	for _, e := range s.Layers[0].Edits() {
		props = append(props, e.Property().String())
	}
	want := []string{layer.PropWidth.String(), layer.PropX.String(), layer.PropFontSize.String(), layer.PropColor.String()}
	if strings.Join(props, ",") != strings.Join(want, ",") {
		t.Errorf("edits = %v, want %v", props, want)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"out.png":  "png",
		"out.JPG":  "jpeg",
		"out.jpeg": "jpeg",
		"a/b.tif":  "tiff",
		"x.bmp":    "bmp",
		"x.gif":    "",
		"noext":    "",
		"":         "",
	}
	for in, want := range tests {
		if got := formatFromPath(in); got != want {
			t.Errorf("formatFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestComposeEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "red.png"), 20, 20, color.NRGBA{R: 255, A: 255})
	script := `{
		"width": 100, "height": 50, "background": "white",
		"layers": [
			{"image": "red.png", "x": 10, "y": 10},
			{"text": "hi", "x": 60, "y": 5, "fontSize": 16, "fontFamily": "monospace", "color": "#0000ff"}
		]
	}`
	path := filepath.Join(dir, "s.json")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript(path)
	if err != nil {
		t.Fatal(err)
	}

	enc, err := compose(context.Background(), s, composeOptions{format: "png"})
	if err != nil {
		t.Fatalf("compose error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(enc.Data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("size = %v", b)
	}
	if r, g, _, _ := img.At(20, 20).RGBA(); r>>8 != 255 || g>>8 != 0 {
		t.Errorf("image layer pixel = %v", img.At(20, 20))
	}
	if r, g, b, _ := img.At(2, 45).RGBA(); r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("background pixel = %v, want white", img.At(2, 45))
	}
}

func TestComposeMissingImage(t *testing.T) {
	s := &Script{Layers: []ScriptLayer{{Image: "nope.png"}}, dir: t.TempDir()}
	if _, err := compose(context.Background(), s, composeOptions{}); err == nil {
		t.Error("expected error for missing image")
	}
}

func TestComposeRemovalNeedsKey(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 4, 4, color.White)
	s := &Script{Layers: []ScriptLayer{{Image: "a.png", RemoveBackground: true}}, dir: dir}
	_, err := compose(context.Background(), s, composeOptions{})
	if err == nil || !strings.Contains(err.Error(), envRemoveBgKey) {
		t.Errorf("error = %v, want missing key", err)
	}
}

func TestComposeRemoval(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.Header.Get("X-Api-Key") != "k" {
			http.Error(w, "bad key", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_ = png.Encode(w, image.NewNRGBA(image.Rect(0, 0, 4, 4)))
	}))
	defer srv.Close()

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 4, 4, color.White)
	s := &Script{
		Width: 4, Height: 4,
		Layers: []ScriptLayer{{Image: "a.png", RemoveBackground: true}},
		dir:    dir,
	}
	enc, err := compose(context.Background(), s, composeOptions{removeBgKey: "k", removeBgURL: srv.URL})
	if err != nil {
		t.Fatalf("compose error = %v", err)
	}
	if hits != 1 {
		t.Errorf("service hits = %d", hits)
	}
	img, err := png.Decode(bytes.NewReader(enc.Data))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := img.At(2, 2).RGBA(); a != 0 {
		t.Errorf("alpha = %d, want background removed", a)
	}
}

func TestComposePickPreset(t *testing.T) {
	s := &Script{Layers: []ScriptLayer{{Text: "x"}}}
	var prompt bytes.Buffer
	enc, err := compose(context.Background(), s, composeOptions{
		pickPreset: true,
		in:         strings.NewReader("3\n"),
		out:        &prompt,
	})
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(enc.Data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 1024 || b.Dy() != 512 {
		t.Errorf("size = %v, want Twitter Post 1024x512", b)
	}
}

func TestPresetsCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"presets", "instagram"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	want := "Story (1080x1920)\nProfile Picture (320x320)\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestFormatsCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"formats"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "jpeg  image/jpeg") {
		t.Errorf("output = %q", out.String())
	}
}

func TestComposeCommandWritesFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "s.json")
	if err := os.WriteFile(script, []byte(`{"width":8,"height":8,"layers":[{"text":"a"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "out.jpg")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"compose", script, "-o", outPath})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "image/jpeg") {
		t.Errorf("output = %q", out.String())
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Error(err)
	}
}
