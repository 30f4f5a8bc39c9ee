package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/obsview/dataset"
)

func newGroupsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "groups <file>",
		Short: "List the group hierarchy",
		Long:  `Print every group depth-first with the number of observations it references.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printGroups(out(cmd), data.Tree)
		},
	}
}

func printGroups(w io.Writer, tree *dataset.GroupTree) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tPATH\tOBSERVATIONS")

	err := tree.Walk(func(n *dataset.Node, depth int) error {
		name, path := n.Name, n.Path
		if n.IsRoot() {
			name, path = dataset.RootName, "/"
		}

		count := "-"
		switch {
		case n.IsRoot():
			count = strconv.Itoa(tree.ObservationCount())
		case n.HasObsIDs():
			ids, err := tree.ResolveObsIDs(n.Path)
			if err != nil {
				return err
			}
			count = strconv.Itoa(len(ids))
		}

		fmt.Fprintf(tw, "%s%s\t%s\t%s\n", strings.Repeat("  ", depth), name, path, count)
		return nil
	})
	if err != nil {
		return err
	}
	return tw.Flush()
}
