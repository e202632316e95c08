package history

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	Registry.Register(func(c *cobra.Command) {
		var limit int

		cmd := &cobra.Command{
			Use:   "list",
			Short: "List recent render invocations, newest first",
			RunE: func(c *cobra.Command, args []string) error {
				journal, err := openJournal()
				if err != nil {
					return err
				}
				defer journal.Close()

				entries, err := journal.List(limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Println("no renders recorded")
					return nil
				}

				for _, e := range entries {
					when := time.Unix(e.Timestamp, 0).Format("2006-01-02 15:04:05")
					line := fmt.Sprintf("%s  %-5s  %s  level=%d face=%d layer=%d depth=%d  %+.2fEV  %dms",
						when, e.Kind, e.Path, e.Level, e.Face, e.Layer, e.Depth, e.Exposure, e.DurationMS)
					if e.Outcome != "ok" {
						line += "  FAILED: " + e.Error
					}
					fmt.Println(line)
				}
				return nil
			},
		}
		cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum entries to show")
		c.AddCommand(cmd)
	})
}
