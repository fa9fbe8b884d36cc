package s3remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDestination(t *testing.T) {
	tests := []struct {
		dst    string
		bucket string
		prefix string
	}{
		{"CLMS:bucket/a/b", "bucket", "a/b"},
		{"CLMS:bucket", "bucket", ""},
		{"CLMS:bucket/", "bucket", ""},
		{"bucket/a", "bucket", "a"},
		{"CLMS:CLMS-CRYOHYDRO-INGESTION/foo/bar", "CLMS-CRYOHYDRO-INGESTION", "foo/bar"},
	}
	for _, tt := range tests {
		bucket, prefix, err := SplitDestination(tt.dst)
		require.NoError(t, err, "SplitDestination(%q)", tt.dst)
		assert.Equal(t, tt.bucket, bucket, "bucket of %q", tt.dst)
		assert.Equal(t, tt.prefix, prefix, "prefix of %q", tt.dst)
	}
}

func TestSplitDestination_noBucket(t *testing.T) {
	for _, dst := range []string{"CLMS:", "", ":", "CLMS://"} {
		_, _, err := SplitDestination(dst)
		assert.Error(t, err, "SplitDestination(%q)", dst)
	}
}
