package registry

import (
	"github.com/spf13/cobra"
)

// CommandRegistry collects command constructors so that subcommand packages
// can attach themselves to their parent from init() without import cycles.
type CommandRegistry struct {
	fillers []func(parent *cobra.Command)
}

// Register adds a filler that attaches one or more commands to the parent.
func (r *CommandRegistry) Register(filler func(parent *cobra.Command)) {
	r.fillers = append(r.fillers, filler)
}

// FromGetter registers a command constructor directly.
func (r *CommandRegistry) FromGetter(getter func() *cobra.Command) {
	r.Register(func(parent *cobra.Command) {
		parent.AddCommand(getter())
	})
}

// FillCommands runs every registered filler against the parent and returns it.
func (r *CommandRegistry) FillCommands(parent *cobra.Command) *cobra.Command {
	for _, filler := range r.fillers {
		filler(parent)
	}
	return parent
}

// GetCommand is an alias for FillCommands.
func (r *CommandRegistry) GetCommand(parent *cobra.Command) *cobra.Command {
	return r.FillCommands(parent)
}
