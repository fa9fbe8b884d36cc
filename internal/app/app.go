// Package app wires configuration and transfer backends for the upload
// binaries.
package app

import (
	"context"
	"errors"
	"os"

	"github.com/clms-cdse/clms-upload/config"
	"github.com/clms-cdse/clms-upload/rclone"
	"github.com/clms-cdse/clms-upload/s3remote"
	"github.com/clms-cdse/clms-upload/uploader"
)

// ErrRcloneNotFound is returned when the rclone backend is requested but the
// binary is not on PATH.
var ErrRcloneNotFound = errors.New(
	"rclone binary has not been detected, see https://rclone.org/install/")

// NewTransfer picks the transfer backend: rclone by default, the S3 API when
// direct is set.
func NewTransfer(ctx context.Context, cfg *config.Config, direct bool) (uploader.Transfer, error) {
	if direct {
		return s3remote.New(ctx, cfg)
	}
	rc := rclone.New()
	if !rc.IsAvailable() {
		return nil, ErrRcloneNotFound
	}
	return rc, nil
}

// LoadFileConfig reads the named remote from rclone's config file. When the
// file does not exist at all, hint is returned verbatim so each binary can
// tell the user how to supply credentials.
func LoadFileConfig(remote, hint string) (*config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.New(hint)
	}
	return config.Load(path, remote)
}
