// cryohydro-upload copies one product file into the fixed
// CLMS-CRYOHYDRO-INGESTION bucket under a caller-supplied path, tagging the
// object with upload metadata. Credentials come from explicit flags, a
// "accessKeyId:secretAccessKey" file, or rclone's config file.
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
	"github.com/clms-cdse/clms-upload/rclone"
	"github.com/clms-cdse/clms-upload/uploader"
)

const (
	workflowName    = "clms_upload"
	ingestionBucket = "CLMS-CRYOHYDRO-INGESTION"
)

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
	var (
		s3Path          string
		credentialsPath string
		accessKeyID     string
		secretAccessKey string
	)

	cmd := &cobra.Command{
		Use:           "cryohydro-upload",
		Short:         "Upload a single product file to the CLMS CRYOHYDRO ingestion bucket",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), common, s3Path, credentialsPath, accessKeyID, secretAccessKey)
		},
	}

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.AddFlagSet(common.NewFlagSet())
	fs.StringVarP(&s3Path, "path-s3", "p", "",
		"Relative destination path in the "+ingestionBucket+" bucket.")
	fs.StringVarP(&credentialsPath, "credentials", "c", "",
		`File holding a single "accessKeyId:secretAccessKey" line.`)
	fs.StringVarP(&accessKeyID, "id", "i", "",
		"S3 access key id (optional if using the config file).")
	fs.StringVarP(&secretAccessKey, "secret", "k", "",
		"S3 secret access key (optional if using the config file).")
	return cmd
}

func run(ctx context.Context, common *flags.Common, s3Path, credentialsPath, accessKeyID, secretAccessKey string) error {
	if common.LocalFile == "" || s3Path == "" {
		return errors.New("both --local-file and --path-s3 must be provided")
	}

	log := logging.NewLogger(common.Verbose, common.LogJSON)

	cfg, err := resolveConfig(ctx, credentialsPath, accessKeyID, secretAccessKey, common.Direct)
	if err != nil {
		return err
	}

	transfer, err := app.NewTransfer(ctx, cfg, common.Direct)
	if err != nil {
		return err
	}

	up := &uploader.Uploader{
		Transfer:     transfer,
		Config:       cfg,
		Log:          log,
		Remote:       config.DefaultRemote,
		Workflow:     workflowName,
		TagAccessKey: true,
	}
	if err := up.Upload(ctx, uploader.Request{
		LocalFile:    common.LocalFile,
		Bucket:       ingestionBucket,
		Fragment:     s3Path,
		SkipExisting: common.SkipExisting,
	}); err != nil {
		return err
	}

	fmt.Printf("successfully uploaded %s\n", common.LocalFile)
	return nil
}

// resolveConfig prefers explicit credentials (flags or credentials file) and
// registers them as the CLMS remote through rclone's own config mechanism;
// otherwise it falls back to rclone's config file.
func resolveConfig(ctx context.Context, credentialsPath, accessKeyID, secretAccessKey string, direct bool) (*config.Config, error) {
	if credentialsPath != "" {
		id, secret, err := config.ParseCredentials(credentialsPath)
		if err != nil {
			return nil, err
		}
		accessKeyID, secretAccessKey = id, secret
	}

	if accessKeyID != "" || secretAccessKey != "" {
		if accessKeyID == "" || secretAccessKey == "" {
			return nil, errors.New("both --id and --secret must be provided")
		}
		cfg := config.Default(accessKeyID, secretAccessKey)
		if !direct {
			rc := rclone.New()
			if !rc.IsAvailable() {
				return nil, app.ErrRcloneNotFound
			}
			err := rc.CreateRemote(ctx, config.DefaultRemote, rclone.RemoteParams{
				Type:               cfg.Type,
				Provider:           cfg.Provider,
				EnvAuth:            cfg.EnvAuth,
				AccessKeyID:        cfg.AccessKeyID,
				SecretAccessKey:    cfg.SecretAccessKey,
				Region:             cfg.Region,
				Endpoint:           cfg.Endpoint,
				LocationConstraint: cfg.LocationConstraint,
			})
			if err != nil {
				return nil, err
			}
		}
		return cfg, nil
	}

	return app.LoadFileConfig(config.DefaultRemote,
		"S3 credentials not present, please provide through --id and --secret")
}
