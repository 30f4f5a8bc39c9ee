package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/obsview"
)

// app carries state shared by every command.
type app struct {
	cfgFile  string
	logLevel string

	cfg    *Config
	engine *obsview.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "obsview",
		Short: "Inspect and subset observation sequence files",
		Long: `obsview reads DART observation sequence files in netCDF format and
selects observations by group membership, bounding box, time window and
quality-control code. Files may be local paths, s3://bucket/key or
minio://bucket/key references, optionally gzip, zstd or lz4 compressed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newInfoCmd(a),
		newGroupsCmd(a),
		newParentsCmd(a),
		newSubsetCmd(a),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}

	logger, err := cfg.Logging.Logger()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.engine = obsview.New(
		obsview.WithLogger(logger),
		obsview.WithStagingDir(cfg.Staging.Dir),
		obsview.WithChunkSize(cfg.Staging.ChunkSize),
		obsview.WithResourceController(cfg.Staging.Controller()),
		obsview.WithReadOptions(cfg.Read.Apply),
	)
	return nil
}

// load resolves ref and decodes the file it names.
func (a *app) load(ctx context.Context, ref string) (*obsview.Data, error) {
	src, err := openSource(ctx, a.cfg, ref)
	if err != nil {
		return nil, err
	}
	return a.engine.Load(ctx, src.store, src.name)
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
