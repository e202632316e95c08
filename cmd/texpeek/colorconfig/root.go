package colorconfig

import (
	"fmt"

	"texpeek/pkg/config"
	"texpeek/pkg/oiio"

	"github.com/spf13/cobra"
)

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "colorconfig",
		Short: "List the OCIO displays and views oiiotool reports",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			tool := oiio.New(cfg.Tools.Oiiotool)
			if v, err := tool.Version(c.Context()); err == nil {
				fmt.Printf("# %s\n", v)
			}

			for _, d := range tool.ColorConfig(c.Context()) {
				marker := ""
				if d.IsDefault {
					marker = " (default)"
				}
				fmt.Printf("%s%s\n", d.Name, marker)
				for _, v := range d.Views {
					marker = ""
					if v.IsDefault {
						marker = " (default)"
					}
					fmt.Printf("  %s%s\n", v.Name, marker)
				}
			}
			return nil
		},
	}
}
