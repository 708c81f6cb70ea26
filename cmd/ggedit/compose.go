package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/ggedit"
	"github.com/gogpu/ggedit/bgremove"
	"github.com/gogpu/ggedit/codec"
	"github.com/gogpu/ggedit/fonts"
	"github.com/gogpu/ggedit/presets"
	"github.com/gogpu/ggedit/render"
	"github.com/spf13/cobra"
)

type composeOptions struct {
	output      string
	format      string
	pickPreset  bool
	systemFonts bool
	fontCache   string

	removeBgKey string
	removeBgURL string

	in  io.Reader
	out io.Writer
}

func newComposeCmd() *cobra.Command {
	var o composeOptions
	cmd := &cobra.Command{
		Use:   "compose SCRIPT",
		Short: "Render a layer script to an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := LoadScript(args[0])
			if err != nil {
				return err
			}
			o.removeBgKey = os.Getenv(envRemoveBgKey)
			o.removeBgURL = os.Getenv(envRemoveBgURL)
			o.in = cmd.InOrStdin()
			o.out = cmd.ErrOrStderr()
			if o.format == "" {
				o.format = formatFromPath(o.output)
			}

			enc, err := compose(cmd.Context(), s, o)
			if err != nil {
				return err
			}
			path := o.output
			if path == "" {
				path = enc.Filename
			}
			if err := os.WriteFile(path, enc.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d bytes)\n", path, enc.MIMEType, len(enc.Data))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "", "output file (default edited-image.<format>)")
	f.StringVarP(&o.format, "format", "f", "", "export format: "+strings.Join(codec.Formats(), ", ")+" (default from output extension, else png)")
	f.BoolVar(&o.pickPreset, "pick-preset", false, "choose the canvas size from the preset catalog interactively")
	f.BoolVar(&o.systemFonts, "system-fonts", false, "look up font families among installed fonts")
	f.StringVar(&o.fontCache, "font-cache", "", "directory for the system font index (default user cache dir)")
	return cmd
}

// formatFromPath maps an output extension to an export format, or "" when
// the extension is not a known format.
func formatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	if _, err := codec.LookupEncoder(ext); err == nil && ext != "" {
		return ext
	}
	return ""
}

func compose(ctx context.Context, s *Script, o composeOptions) (*codec.Encoded, error) {
	var fontOpts []fonts.Option
	if o.systemFonts {
		fontOpts = append(fontOpts, fonts.WithSystemFonts(o.fontCache))
	}
	resolver, err := fonts.New(fontOpts...)
	if err != nil {
		return nil, err
	}
	for family, path := range s.Fonts {
		data, err := os.ReadFile(s.Path(path))
		if err != nil {
			return nil, fmt.Errorf("font %s: %w", family, err)
		}
		if err := resolver.Register(family, data); err != nil {
			return nil, err
		}
	}

	opts := []ggedit.Option{ggedit.WithFonts(resolver)}
	switch {
	case s.Preset != "":
		p, err := presets.Find(s.Preset)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ggedit.WithCanvasSize(p.Width, p.Height))
	case s.Width != 0:
		opts = append(opts, ggedit.WithCanvasSize(s.Width, s.Height))
	}
	if s.Background != "" {
		bg, err := render.ParseColor(s.Background)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ggedit.WithBackground(bg))
	}
	if s.needsRemoval() {
		if o.removeBgKey == "" {
			return nil, fmt.Errorf("background removal requested but %s is not set", envRemoveBgKey)
		}
		var clientOpts []bgremove.Option
		if o.removeBgURL != "" {
			clientOpts = append(clientOpts, bgremove.WithEndpoint(o.removeBgURL))
		}
		opts = append(opts, ggedit.WithRemover(bgremove.NewClient(o.removeBgKey, clientOpts...)))
	}

	ed, err := ggedit.New(opts...)
	if err != nil {
		return nil, err
	}

	if o.pickPreset {
		_, err := ed.ChooseCanvasSize(ctx, presets.Prompt{In: o.in, Out: o.out})
		if err != nil && !errors.Is(err, presets.ErrCanceled) {
			return nil, err
		}
	}

	bitmaps, err := s.decodeImages(ctx)
	if err != nil {
		return nil, err
	}

	for i, sl := range s.Layers {
		if sl.Image != "" {
			ed.AddImageLayer(bitmaps[i].Bitmap)
		} else {
			ed.AddTextLayer(sl.Text)
		}
		for _, edit := range sl.Edits() {
			if err := ed.SetLayerProperty(edit); err != nil {
				return nil, fmt.Errorf("layer %d: %w", i, err)
			}
		}
		if sl.Scale != nil {
			ed.ScaleSelected(*sl.Scale)
		}
		if sl.RemoveBackground {
			if err := <-ed.RemoveBackground(ctx); err != nil {
				return nil, fmt.Errorf("layer %d: %w", i, err)
			}
		}
	}
	ed.SelectLayer(nil)

	return ed.ExportImage(o.format)
}

func (s *Script) needsRemoval() bool {
	for _, l := range s.Layers {
		if l.RemoveBackground {
			return true
		}
	}
	return false
}

// decodeImages decodes every image layer concurrently. The result is
// indexed like s.Layers; text layers have zero entries.
func (s *Script) decodeImages(ctx context.Context) ([]codec.Result, error) {
	var (
		readers []io.Reader
		index   []int
	)
	for i, l := range s.Layers {
		if l.Image == "" {
			continue
		}
		f, err := os.Open(s.Path(l.Image))
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		defer f.Close()
		readers = append(readers, f)
		index = append(index, i)
	}

	out := make([]codec.Result, len(s.Layers))
	var errs []error
	for j, r := range codec.NewDecoder().DecodeAll(ctx, readers) {
		i := index[j]
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("layer %d (%s): %w", i, s.Layers[i].Image, r.Err))
			continue
		}
		out[i] = r
	}
	return out, errors.Join(errs...)
}
