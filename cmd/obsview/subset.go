package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hupe1980/obsview"
	"github.com/hupe1980/obsview/filter"
)

type subsetFlags struct {
	groups  []string
	mode    string
	qc      string
	indices bool
	bounds  map[string]*float64
}

var boundFlags = []string{"lat-min", "lat-max", "lon-min", "lon-max", "time-min", "time-max"}

func newSubsetFlags() *subsetFlags {
	return &subsetFlags{bounds: make(map[string]*float64, len(boundFlags))}
}

func (f *subsetFlags) register(fs *pflag.FlagSet) {
	fs.StringSliceVar(&f.groups, "group", nil, "group name or path (repeatable)")
	fs.StringVar(&f.mode, "mode", "", "group combination: union or intersection")
	fs.StringVar(&f.qc, "qc", "", "retained QC codes, e.g. 0,1,2")
	fs.BoolVar(&f.indices, "indices", false, "print the selected observation indices")
	for _, name := range boundFlags {
		f.bounds[name] = new(float64)
		fs.Float64Var(f.bounds[name], name, 0, "inclusive "+strings.ReplaceAll(name, "-", " ")+" bound")
	}
}

func newSubsetCmd(a *app) *cobra.Command {
	f := newSubsetFlags()

	cmd := &cobra.Command{
		Use:   "subset <file>",
		Short: "Select observations",
		Long: `Select observations by group, bounding box, time window and QC code.
The request is read from the subset section of the config file; flags override it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.cfg.Subset
			if err := f.apply(cmd.Flags(), &sc); err != nil {
				return err
			}
			req, err := sc.Request()
			if err != nil {
				return err
			}

			data, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			res, err := a.engine.Subset(data, req)
			if err != nil {
				return err
			}
			return printSubset(out(cmd), data.Dataset.Len(), res, f.indices)
		},
	}

	f.register(cmd.Flags())
	return cmd
}

// apply overrides sc with every flag set on the command line.
func (f *subsetFlags) apply(fs *pflag.FlagSet, sc *SubsetConfig) error {
	if fs.Changed("group") {
		sc.Groups = f.groups
	}
	if fs.Changed("mode") {
		sc.Mode = f.mode
	}
	if fs.Changed("qc") {
		sel, err := filter.ParseQCSelection(f.qc)
		if err != nil {
			return err
		}
		sc.QC = sel.Codes()
	}

	targets := map[string]**float64{
		"lat-min":  &sc.LatMin,
		"lat-max":  &sc.LatMax,
		"lon-min":  &sc.LonMin,
		"lon-max":  &sc.LonMax,
		"time-min": &sc.TimeMin,
		"time-max": &sc.TimeMax,
	}
	for _, name := range boundFlags {
		if fs.Changed(name) {
			*targets[name] = filter.Bound(*f.bounds[name])
		}
	}
	return nil
}

func printSubset(w io.Writer, total int, res *obsview.SubsetResult, indices bool) error {
	fmt.Fprintf(w, "Selected %d of %d observations\n", res.Len(), total)
	if res.Warning != nil {
		fmt.Fprintf(w, "Warning: %s\n", res.Warning)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tIN\tOUT\tTIME")
	for _, st := range res.Stages {
		if st.Skipped {
			fmt.Fprintf(tw, "%s\t-\t-\tskipped\n", st.Stage)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", st.Stage, st.In, st.Out, st.Duration)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !indices || res.IsEmpty() {
		return nil
	}
	parts := make([]string, len(res.Indices))
	for i, idx := range res.Indices {
		parts[i] = strconv.Itoa(idx)
	}
	_, err := fmt.Fprintf(w, "\n%s\n", strings.Join(parts, ","))
	return err
}
