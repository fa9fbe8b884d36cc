// clms-upload copies one product file into a CLMS producer bucket under a
// YYYY/MM/DD prefix, tagging the object with upload metadata.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/clms-cdse/clms-upload/config"
	"github.com/clms-cdse/clms-upload/internal/app"
	"github.com/clms-cdse/clms-upload/internal/flags"
	"github.com/clms-cdse/clms-upload/internal/logging"
	"github.com/clms-cdse/clms-upload/uploader"
)

const workflowName = "clms_upload"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCmd().ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "upload interrupted by user")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	common := flags.NewCommon()
	var bucket string

	cmd := &cobra.Command{
		Use:           "clms-upload",
		Short:         "Upload a single product file to a CLMS producer S3 bucket",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), common, bucket)
		},
	}

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.AddFlagSet(common.NewFlagSet())
	fs.StringVarP(&bucket, "bucket", "b", "",
		"S3 bucket of the CLMS producer.")
	return cmd
}

func run(ctx context.Context, common *flags.Common, bucket string) error {
	// No flag combination is fatal at parse time; validation happens here,
	// just before the upload call.
	if common.LocalFile == "" {
		return errors.New("no input file provided (use --local-file)")
	}
	if bucket == "" {
		return errors.New("no producer bucket provided (use --bucket)")
	}

	log := logging.NewLogger(common.Verbose, common.LogJSON)

	cfg, err := config.FromEnv(config.DefaultRemote)
	if err != nil {
		return err
	}
	if cfg == nil {
		cfg, err = app.LoadFileConfig(config.DefaultRemote,
			"S3 credentials not present, export RCLONE_CONFIG_CLMS_* or configure the CLMS remote in rclone.conf")
		if err != nil {
			return err
		}
	}

	transfer, err := app.NewTransfer(ctx, cfg, common.Direct)
	if err != nil {
		return err
	}

	up := &uploader.Uploader{
		Transfer: transfer,
		Config:   cfg,
		Log:      log,
		Remote:   config.DefaultRemote,
		Workflow: workflowName,
	}
	if err := up.Upload(ctx, uploader.Request{
		LocalFile:     common.LocalFile,
		Bucket:        bucket,
		UseDatePrefix: true,
		SkipExisting:  common.SkipExisting,
	}); err != nil {
		return err
	}

	fmt.Printf("successfully uploaded %s\n", common.LocalFile)
	return nil
}
