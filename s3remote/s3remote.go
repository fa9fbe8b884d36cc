// Package s3remote uploads through the S3 API directly, for hosts without an
// rclone binary. Multipart is never used: the upload contract disables it, so
// a single PutObject suffices.
package s3remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/clms-cdse/clms-upload/config"
	"github.com/clms-cdse/clms-upload/uploader"
)

// Client implements uploader.Transfer against the S3 API.
type Client struct {
	s3 *s3.Client
}

// New builds a Client from the resolved remote configuration.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// Ceph and other S3-compatible stores expect path-style addressing.
		o.UsePathStyle = true
	})
	return &Client{s3: client}, nil
}

// IsAvailable always holds; there is no external binary to probe.
func (c *Client) IsAvailable() bool { return true }

// Copy puts src at the destination address. Destination addresses keep the
// rclone "remote:bucket/prefix" form; the remote name is ignored here.
func (c *Client) Copy(ctx context.Context, src, dst string, opts uploader.CopyOptions) error {
	bucket, prefix, err := SplitDestination(dst)
	if err != nil {
		return err
	}
	key := uploader.JoinKey(prefix, filepath.Base(src))

	if opts.IgnoreExisting {
		exists, err := c.exists(ctx, bucket, key)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
	}

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		Metadata:      opts.Metadata,
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

func (c *Client) exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var re *awshttp.ResponseError
		if errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("stat s3://%s/%s: %w", bucket, key, err)
	}
	return true, nil
}

// SplitDestination splits "remote:bucket/prefix" into bucket and prefix.
// The remote name (anything before the first colon) is dropped.
func SplitDestination(dst string) (bucket, prefix string, err error) {
	if i := strings.IndexByte(dst, ':'); i >= 0 {
		dst = dst[i+1:]
	}
	dst = strings.Trim(dst, "/")
	if dst == "" {
		return "", "", fmt.Errorf("destination %q has no bucket", dst)
	}
	parts := strings.SplitN(dst, "/", 2)
	bucket = parts[0]
	if len(parts) == 2 {
		prefix = parts[1]
	}
	return bucket, prefix, nil
}
