package history

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	Registry.Register(func(c *cobra.Command) {
		c.AddCommand(&cobra.Command{
			Use:   "clear",
			Short: "Delete all recorded renders",
			RunE: func(c *cobra.Command, args []string) error {
				journal, err := openJournal()
				if err != nil {
					return err
				}
				defer journal.Close()

				if err := journal.Clear(); err != nil {
					return fmt.Errorf("failed to clear render journal: %w", err)
				}
				fmt.Println("render journal cleared")
				return nil
			},
		})
	})
}
