package serve

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"texpeek/pkg/config"
	"texpeek/pkg/history"
	"texpeek/pkg/ktx"
	"texpeek/pkg/oiio"
	"texpeek/pkg/picker"
	"texpeek/pkg/preview"

	"github.com/spf13/cobra"
)

func GetCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve an interactive preview page for one file",
		Long: `Serve an interactive preview page for one file.

The page shows the tonemapped image with selectors for mip level, array
layer, cube face, volume slice, exposure and OCIO display/view. Changing a
selector re-runs the external tools and pushes the new image over a
websocket. Without a file argument a fuzzy picker runs over the previewable
files below the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			r := preview.NewRenderer(oiio.New(cfg.Tools.Oiiotool), ktx.New(cfg.Tools.Ktx))
			attachJournal(r, cfg)

			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				path, err = picker.Pick(c.Context(), r, cwd)
				if err != nil {
					if err == picker.ErrAborted {
						return nil
					}
					return err
				}
			}

			if listen == "" {
				listen = cfg.Serve.Listen
			}

			server := preview.NewServer(r, path)
			fmt.Printf("previewing %s at http://%s/\n", path, listen)
			return http.ListenAndServe(listen, server.Handler())
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (default from config)")
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
