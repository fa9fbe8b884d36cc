// Package uploader copies a single local file into a CLMS S3 bucket through
// an injected transfer backend, tagging the object with descriptive metadata.
package uploader

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/clms-cdse/clms-upload/config"
)

// Retry bounds handed to the transfer backend. Transient network failures are
// the backend's problem; this layer never retries.
const (
	defaultRetries         = 20
	defaultLowLevelRetries = 20
)

// Transfer is the copy primitive behind the uploader. The production
// implementation shells out to rclone; s3remote talks to the S3 API directly.
type Transfer interface {
	// IsAvailable reports whether the backend can be used at all.
	IsAvailable() bool
	// Copy transfers src to the destination address "remote:bucket/prefix".
	Copy(ctx context.Context, src, dst string, opts CopyOptions) error
}

// CopyOptions is the fixed option set passed to Transfer.Copy.
type CopyOptions struct {
	IgnoreExisting   bool // leave objects that already exist alone
	Checksum         bool // compare by checksum, not mtime
	NoCheckBucket    bool // skip the destination-bucket existence check
	DisableMultipart bool
	Retries          int
	LowLevelRetries  int
	Metadata         map[string]string
}

// Request describes one upload. Constructed from CLI input, consumed once.
type Request struct {
	LocalFile string
	Bucket    string
	// Fragment is the destination path below the bucket; a trailing slash
	// is stripped. Ignored when UseDatePrefix is set.
	Fragment      string
	UseDatePrefix bool // place the object under <bucket>/YYYY/MM/DD/
	SkipExisting  bool // keep an existing remote object instead of replacing it
}

// Uploader performs metadata-tagged single-file uploads.
type Uploader struct {
	Transfer Transfer
	Config   *config.Config
	Log      *slog.Logger

	// Remote is the rclone remote name, e.g. "CLMS".
	Remote string
	// Workflow is recorded as the WorkflowName metadata tag.
	Workflow string
	// TagAccessKey additionally records the access key id as s3-public-key.
	TagAccessKey bool
}

// Upload computes metadata for req.LocalFile and copies it to the destination
// bucket. All failures come back as *UploadError.
func (u *Uploader) Upload(ctx context.Context, req Request) error {
	if req.LocalFile == "" {
		return &UploadError{Msg: "no input file provided"}
	}
	if req.Bucket == "" {
		return &UploadError{Msg: "no destination bucket provided"}
	}

	meta, err := ComputeMetadata(req.LocalFile)
	if err != nil {
		return err
	}

	fragment := strings.TrimSuffix(req.Fragment, "/")
	if req.UseDatePrefix {
		fragment = meta.Uploaded.Format("2006/01/02")
	}

	key := JoinKey(req.Bucket, fragment)
	dst := u.Remote + ":" + key
	sourcePath := JoinKey(key, filepath.Base(req.LocalFile))

	tags := map[string]string{
		"uploaded":               meta.Uploaded.Format(TimeLayout),
		"WorkflowName":           u.Workflow,
		"source-s3-endpoint-url": u.Config.Endpoint,
		"source-s3-path":         "s3://" + sourcePath,
		"file-size":              strconv.FormatInt(meta.Size, 10),
		"md5":                    meta.MD5,
		"last-modified":          meta.LastModified.Format(TimeLayout),
	}
	if u.TagAccessKey {
		tags["s3-public-key"] = u.Config.AccessKeyID
	}

	u.Log.Info("uploading",
		slog.String("file", req.LocalFile),
		slog.String("destination", dst),
		slog.Int64("size", meta.Size),
		slog.String("md5", meta.MD5))

	opts := CopyOptions{
		IgnoreExisting:   req.SkipExisting,
		Checksum:         true,
		NoCheckBucket:    true,
		DisableMultipart: true,
		Retries:          defaultRetries,
		LowLevelRetries:  defaultLowLevelRetries,
		Metadata:         tags,
	}
	if err := u.Transfer.Copy(ctx, req.LocalFile, dst, opts); err != nil {
		return uploadErrorf(err, "uploading file %s", req.LocalFile)
	}
	return nil
}

// JoinKey joins key parts with single slashes, dropping empty segments so
// concatenation never produces doubled separators.
func JoinKey(parts ...string) string {
	var segs []string
	for _, p := range parts {
		for _, s := range strings.Split(p, "/") {
			if s != "" {
				segs = append(segs, s)
			}
		}
	}
	return strings.Join(segs, "/")
}
