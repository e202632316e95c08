package sheet

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"texpeek/pkg/config"
	"texpeek/pkg/ktx"
	"texpeek/pkg/oiio"
	"texpeek/pkg/preview"
	"texpeek/pkg/sheet"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func GetCommand() *cobra.Command {
	var (
		out      string
		cellSize int
		exposure float64
		display  string
		view     string
	)

	cmd := &cobra.Command{
		Use:   "sheet <file>",
		Short: "Compose a contact sheet of all cube faces or mip levels",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			src := args[0]
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			r := preview.NewRenderer(oiio.New(cfg.Tools.Oiiotool), ktx.New(cfg.Tools.Ktx))

			hdr, err := r.Header(c.Context(), src)
			if err != nil {
				return err
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

			opts := sheet.Options{
				CellSize: cellSize,
				Exposure: exposure,
				Display:  display,
				View:     view,
			}

			bar := progressbar.Default(int64(len(sheet.Plan(hdr))), "rendering tiles")
			img, err := sheet.Build(c.Context(), r, src, hdr, opts, func() { _ = bar.Add(1) })
			if err != nil {
				return err
			}
			_ = bar.Finish()

			if out == "" {
				out = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ".sheet.png"
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				return fmt.Errorf("failed to encode contact sheet: %w", err)
			}
			fmt.Printf("wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Output PNG path (default: <basename>.sheet.png)")
	cmd.Flags().IntVar(&cellSize, "cell", 256, "Tile edge length in pixels")
	cmd.Flags().Float64VarP(&exposure, "exposure", "e", 0, "Exposure adjustment in EV stops")
	cmd.Flags().StringVar(&display, "display", "", "OCIO display (default: discovered default)")
	cmd.Flags().StringVar(&view, "view", "", `OCIO view, or "No Tonemapping"`)
	return cmd
}
