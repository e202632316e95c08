package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"texpeek/pkg/config"
	"texpeek/pkg/history"
	"texpeek/pkg/ktx"
	"texpeek/pkg/oiio"
	"texpeek/pkg/preview"
	"texpeek/pkg/texture"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func GetCommand() *cobra.Command {
	var (
		out       string
		exposure  float64
		display   string
		view      string
		level     int
		layer     int
		face      int
		depth     int
		allLevels bool
		plain     bool
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render one sub-image (or every mip level) to a tonemapped PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			src := args[0]
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			r := preview.NewRenderer(oiio.New(cfg.Tools.Oiiotool), ktx.New(cfg.Tools.Ktx))
			attachJournal(r, cfg)

			hdr, err := r.Header(c.Context(), src)
			if err != nil {
				return err
			}

			if out == "" {
				out = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ".png"
			}

			if plain {
				if err := r.Oiio.Convert(c.Context(), src, out); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", out)
				return nil
			}

			if display == "" || view == "" {
				d, v := oiio.DefaultSelection(r.Oiio.ColorConfig(c.Context()))
				if display == "" {
					display = d
				}
				if view == "" {
					view = v
				}
			}

			sel := texture.Selection{
				Level:    level,
				Layer:    layer,
				Face:     face,
				Depth:    depth,
				Exposure: exposure,
				Display:  display,
				View:     view,
			}.ClampTo(hdr)

			if !allLevels {
				return renderOne(c, r, src, hdr, sel, out)
			}
			return renderAllLevels(c, r, src, hdr, sel, out)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Output PNG path (default: <basename>.png)")
	cmd.Flags().Float64VarP(&exposure, "exposure", "e", 0, "Exposure adjustment in EV stops")
	cmd.Flags().StringVar(&display, "display", "", "OCIO display (default: discovered default)")
	cmd.Flags().StringVar(&view, "view", "", `OCIO view, or "No Tonemapping" (default: discovered default)`)
	cmd.Flags().IntVar(&level, "level", 0, "Mip level")
	cmd.Flags().IntVar(&layer, "layer", 0, "Array layer")
	cmd.Flags().IntVar(&face, "face", 0, "Cube face (0-5)")
	cmd.Flags().IntVar(&depth, "depth", 0, "Volume slice")
	cmd.Flags().BoolVar(&allLevels, "all-levels", false, "Render every mip level, numbering the outputs")
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain conversion, no exposure or display transform")
	return cmd
}

func attachJournal(r *preview.Renderer, cfg *config.Config) {
	path := cfg.HistoryPath
	if path == "" {
		path = history.DefaultPath()
	}
	journal, err := history.Open(path)
	if err != nil {
		slog.Debug("render journal unavailable", "err", err)
		return
	}
	r.Journal = journal
}

func renderOne(c *cobra.Command, r *preview.Renderer, src string, hdr texture.Header, sel texture.Selection, out string) error {
	data, err := r.Render(c.Context(), src, hdr, sel)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func renderAllLevels(c *cobra.Command, r *preview.Renderer, src string, hdr texture.Header, sel texture.Selection, out string) error {
	base := strings.TrimSuffix(out, filepath.Ext(out))

	bar := progressbar.Default(int64(hdr.LevelCount), "rendering mip levels")
	for lvl := 0; lvl < hdr.LevelCount; lvl++ {
		sel.Level = lvl
		data, err := r.Render(c.Context(), src, hdr, sel)
		if err != nil {
			return fmt.Errorf("level %d: %w", lvl, err)
		}
		path := fmt.Sprintf("%s.level%d.png", base, lvl)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		_ = bar.Add(1)
	}
	return bar.Finish()
}
