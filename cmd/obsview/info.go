package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/obsview"
	"github.com/hupe1980/obsview/dataset"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Summarize a file",
		Long:  `Print observation count, coordinate extents, the QC distribution, variables and global attributes.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printInfo(out(cmd), data)
		},
	}
}

func printInfo(w io.Writer, data *obsview.Data) error {
	s := data.Dataset.Summarize()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File:\t%s\n", data.Name)
	fmt.Fprintf(tw, "Codec:\t%s\n", data.Codec)
	fmt.Fprintf(tw, "Size:\t%d bytes\n", data.Bytes)
	fmt.Fprintf(tw, "Observations:\t%d\n", s.Observations)
	fmt.Fprintf(tw, "Groups:\t%d\n", data.Tree.Len()-1)
	fmt.Fprintf(tw, "Latitude:\t%s\n", formatExtent(s.Lat))
	fmt.Fprintf(tw, "Longitude:\t%s\n", formatExtent(s.Lon))
	fmt.Fprintf(tw, "Vertical:\t%s\n", formatExtent(s.Vertical))
	fmt.Fprintf(tw, "Time:\t%s\n", formatExtent(s.Time))
	fmt.Fprintf(tw, "Variables:\t%s\n", strings.Join(s.Variables, ", "))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "QC\tCOUNT")
	for code, n := range s.QCCounts {
		fmt.Fprintf(tw, "%d\t%d\n", code, n)
	}
	fmt.Fprintf(tw, "%d\t%d\n", dataset.QCUnassigned, s.Unassigned)
	if s.OutOfRange > 0 {
		fmt.Fprintf(tw, "other\t%d\n", s.OutOfRange)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(data.Attributes) == 0 {
		return nil
	}
	keys := make([]string, 0, len(data.Attributes))
	for k := range data.Attributes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ATTRIBUTE\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%v\n", k, data.Attributes[k])
	}
	return tw.Flush()
}

func formatExtent(e dataset.Extent) string {
	if !e.Valid {
		return "-"
	}
	return fmt.Sprintf("[%g, %g]", e.Min, e.Max)
}
