// Package rclone is the production transfer backend: it shells out to the
// rclone binary, which owns retries, multipart decisions, checksum
// negotiation, and its own config file.
package rclone

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/clms-cdse/clms-upload/uploader"
)

// DefaultBin is the rclone binary name resolved from PATH.
const DefaultBin = "rclone"

// Client invokes a local rclone binary.
type Client struct {
	bin string
}

func New() *Client { return NewWithBin(DefaultBin) }

func NewWithBin(bin string) *Client {
	bin = strings.TrimSpace(bin)
	if bin == "" {
		bin = DefaultBin
	}
	return &Client{bin: bin}
}

// IsAvailable reports whether the rclone binary can be found on PATH.
func (c *Client) IsAvailable() bool {
	_, err := exec.LookPath(c.bin)
	return err == nil
}

// Copy runs `rclone copy src dst` with the given options. rclone's stderr is
// folded into the returned error.
func (c *Client) Copy(ctx context.Context, src, dst string, opts uploader.CopyOptions) error {
	cmd := exec.CommandContext(ctx, c.bin, buildCopyArgs(src, dst, opts)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("rclone copy failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func buildCopyArgs(src, dst string, opts uploader.CopyOptions) []string {
	args := []string{"copy", src, dst}
	if opts.IgnoreExisting {
		args = append(args, "--ignore-existing")
	}
	if opts.NoCheckBucket {
		args = append(args, "--s3-no-check-bucket")
	}
	if opts.Retries > 0 {
		args = append(args, "--retries="+strconv.Itoa(opts.Retries))
	}
	if opts.LowLevelRetries > 0 {
		args = append(args, "--low-level-retries="+strconv.Itoa(opts.LowLevelRetries))
	}
	if opts.Checksum {
		args = append(args, "--checksum")
	}
	if opts.DisableMultipart {
		args = append(args, "--s3-use-multipart-uploads=false")
	}
	if len(opts.Metadata) > 0 {
		args = append(args, "--metadata")
		keys := make([]string, 0, len(opts.Metadata))
		for k := range opts.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			args = append(args, "--metadata-set", k+"="+opts.Metadata[k])
		}
	}
	return args
}

// RemoteParams are the fixed parameters of an S3 remote created through
// `rclone config create`.
type RemoteParams struct {
	Type               string
	Provider           string
	EnvAuth            bool
	AccessKeyID        string
	SecretAccessKey    string
	Region             string
	Endpoint           string
	LocationConstraint string
}

func (p RemoteParams) validate() error {
	switch {
	case p.Type == "":
		return errors.New("remote type is required")
	case p.Provider == "":
		return errors.New("remote provider is required")
	case p.AccessKeyID == "":
		return errors.New("access key id is required")
	case p.SecretAccessKey == "":
		return errors.New("secret access key is required")
	case p.Region == "":
		return errors.New("region is required")
	case p.Endpoint == "":
		return errors.New("endpoint is required")
	}
	return nil
}

// CreateRemote creates or updates a named remote through rclone's own config
// mechanism; this component never writes the config file itself.
func (c *Client) CreateRemote(ctx context.Context, name string, p RemoteParams) error {
	if name == "" {
		return errors.New("remote name is required")
	}
	if err := p.validate(); err != nil {
		return fmt.Errorf("remote %q: %w", name, err)
	}

	args := []string{
		"config", "create", name, p.Type,
		"provider=" + p.Provider,
		"env_auth=" + strconv.FormatBool(p.EnvAuth),
		"access_key_id=" + p.AccessKeyID,
		"secret_access_key=" + p.SecretAccessKey,
		"region=" + p.Region,
		"endpoint=" + p.Endpoint,
	}
	if p.LocationConstraint != "" {
		args = append(args, "location_constraint="+p.LocationConstraint)
	}
	args = append(args, "--non-interactive")

	cmd := exec.CommandContext(ctx, c.bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("rclone config create failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
