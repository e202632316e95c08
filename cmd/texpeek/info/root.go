package info

import (
	"fmt"

	"texpeek/pkg/config"
	"texpeek/pkg/ktx"
	"texpeek/pkg/oiio"
	"texpeek/pkg/preview"

	"github.com/spf13/cobra"
)

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print container metadata for an EXR, HDR or KTX2 file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			r := preview.NewRenderer(oiio.New(cfg.Tools.Oiiotool), ktx.New(cfg.Tools.Ktx))

			hdr, err := r.Header(c.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("File:   %s\n", args[0])
			fmt.Printf("Size:   %d x %d\n", hdr.PixelWidth, hdr.PixelHeight)
			if hdr.Format != "" {
				fmt.Printf("Format: %s\n", hdr.Format)
			}
			fmt.Printf("Levels: %d\n", hdr.LevelCount)
			fmt.Printf("Layers: %d\n", hdr.LayerCount)
			fmt.Printf("Faces:  %d\n", hdr.FaceCount)
			fmt.Printf("Depth:  %d\n", hdr.PixelDepth)
			return nil
		},
	}
}
