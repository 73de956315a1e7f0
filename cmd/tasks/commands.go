package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotasks/nanotasks"
	"github.com/arthur-debert/nanotasks/types"
)

// resolveTask maps a typed id or id prefix to a stored task
func (cli *CLI) resolveTask(board *nanotasks.Board, operation, ref string) (types.Task, error) {
	id, err := board.Store().Resolve(ref)
	if err != nil {
		return types.Task{}, WrapError(operation, err)
	}
	task, err := board.Store().Get(id)
	if err != nil {
		return types.Task{}, WrapError(operation, err)
	}
	return task, nil
}

// emptyTextError replaces the generic empty-text validation failure with the
// message the user sees for that command.
func emptyTextError(operation, message string, err error) error {
	var invalid *types.ValidationError
	if errors.As(err, &invalid) && invalid.Field == "text" {
		return NewValidationError(operation, message, err)
	}
	return WrapError(operation, err)
}

// shortID returns the display id of one task within the whole collection
func (cli *CLI) shortID(board *nanotasks.Board, id string) string {
	return shortIDs(board.Store().List())[id]
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return NewValidationError(cmd.Name(), "wrong number of arguments", nil, "Usage: "+usage)
		}
		return nil
	}
}
