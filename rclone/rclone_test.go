package rclone

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clms-cdse/clms-upload/uploader"
)

func fullOptions() uploader.CopyOptions {
	return uploader.CopyOptions{
		Checksum:         true,
		NoCheckBucket:    true,
		DisableMultipart: true,
		Retries:          20,
		LowLevelRetries:  20,
		Metadata: map[string]string{
			"uploaded":     "2024-03-09T14:05:07",
			"WorkflowName": "clms_upload",
			"file-size":    "11",
		},
	}
}

func TestBuildCopyArgs(t *testing.T) {
	args := buildCopyArgs("/tmp/product.bin", "CLMS:bucket/a/b", fullOptions())

	assert.Equal(t, []string{"copy", "/tmp/product.bin", "CLMS:bucket/a/b"}, args[:3])
	assert.Contains(t, args, "--s3-no-check-bucket")
	assert.Contains(t, args, "--retries=20")
	assert.Contains(t, args, "--low-level-retries=20")
	assert.Contains(t, args, "--checksum")
	assert.Contains(t, args, "--s3-use-multipart-uploads=false")
	assert.Contains(t, args, "--metadata")
	assert.NotContains(t, args, "--ignore-existing")
}

func TestBuildCopyArgs_ignoreExisting(t *testing.T) {
	opts := fullOptions()
	opts.IgnoreExisting = true
	args := buildCopyArgs("src", "dst", opts)
	assert.Contains(t, args, "--ignore-existing")
}

func TestBuildCopyArgs_metadataSortedPairs(t *testing.T) {
	args := buildCopyArgs("src", "dst", fullOptions())

	var pairs []string
	for i, a := range args {
		if a == "--metadata-set" {
			pairs = append(pairs, args[i+1])
		}
	}
	// Deterministic key order, independent of map iteration.
	assert.Equal(t, []string{
		"WorkflowName=clms_upload",
		"file-size=11",
		"uploaded=2024-03-09T14:05:07",
	}, pairs)
}

func TestBuildCopyArgs_zeroOptions(t *testing.T) {
	args := buildCopyArgs("src", "dst", uploader.CopyOptions{})
	assert.Equal(t, []string{"copy", "src", "dst"}, args)
}

func TestIsAvailable_unknownBinary(t *testing.T) {
	c := NewWithBin("definitely-not-a-real-binary-7f3a")
	assert.False(t, c.IsAvailable())
}

func TestNewWithBin_defaultsOnEmpty(t *testing.T) {
	c := NewWithBin("  ")
	assert.Equal(t, DefaultBin, c.bin)
}

func validParams() RemoteParams {
	return RemoteParams{
		Type:               "s3",
		Provider:           "Ceph",
		EnvAuth:            true,
		AccessKeyID:        "ABC",
		SecretAccessKey:    "XYZ",
		Region:             "default",
		Endpoint:           "https://s3.example.com",
		LocationConstraint: "default",
	}
}

func TestCreateRemote_validation(t *testing.T) {
	c := NewWithBin("definitely-not-a-real-binary-7f3a")

	err := c.CreateRemote(context.Background(), "", validParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")

	mutations := []struct {
		name   string
		mutate func(*RemoteParams)
	}{
		{"type", func(p *RemoteParams) { p.Type = "" }},
		{"provider", func(p *RemoteParams) { p.Provider = "" }},
		{"access key", func(p *RemoteParams) { p.AccessKeyID = "" }},
		{"secret", func(p *RemoteParams) { p.SecretAccessKey = "" }},
		{"region", func(p *RemoteParams) { p.Region = "" }},
		{"endpoint", func(p *RemoteParams) { p.Endpoint = "" }},
	}
	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			p := validParams()
			m.mutate(&p)
			assert.Error(t, c.CreateRemote(context.Background(), "CLMS", p))
		})
	}
}
