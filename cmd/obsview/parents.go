package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hupe1980/obsview/dataset"
)

// ErrObservationOutOfRange is returned for an observation index outside [0, N).
var ErrObservationOutOfRange = errors.New("observation index out of range")

func newParentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parents <file> <obs>",
		Short: "List the groups containing an observation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse observation index: %w", err)
			}
			data, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printParents(out(cmd), data.Tree, obs)
		},
	}
}

func printParents(w io.Writer, tree *dataset.GroupTree, obs int) error {
	if obs < 0 || obs >= tree.ObservationCount() {
		return fmt.Errorf("%w: %d (have %d)", ErrObservationOutOfRange, obs, tree.ObservationCount())
	}
	for _, p := range tree.ParentGroups(obs) {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}
