package history

import (
	"texpeek/pkg/config"
	"texpeek/pkg/history"
	"texpeek/pkg/registry"

	"github.com/spf13/cobra"
)

var Registry registry.CommandRegistry

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the render journal",
	}
	return Registry.FillCommands(cmd)
}

func openJournal() (*history.Journal, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	path := cfg.HistoryPath
	if path == "" {
		path = history.DefaultPath()
	}
	return history.Open(path)
}
