package uploader

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"time"
)

// TimeLayout is the timestamp format used for all metadata tags.
const TimeLayout = "2006-01-02T15:04:05"

// Metadata describes the file being uploaded. Computed fresh per invocation
// and discarded after the transfer.
type Metadata struct {
	Uploaded     time.Time // when the upload was initiated
	LastModified time.Time // file system mtime of the source
	Size         int64     // bytes
	MD5          string    // lowercase hex digest of the full contents
}

// ComputeMetadata stats and reads the file at path. The file must exist;
// a missing file is reported as *UploadError before any transfer is attempted.
func ComputeMetadata(path string) (*Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, uploadErrorf(err, "file does not exist: %s", path)
		}
		return nil, uploadErrorf(err, "stat %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, uploadErrorf(err, "calculating file metadata for %s", path)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, uploadErrorf(err, "calculating file metadata for %s", path)
	}

	return &Metadata{
		Uploaded:     time.Now(),
		LastModified: info.ModTime(),
		Size:         info.Size(),
		MD5:          hex.EncodeToString(h.Sum(nil)),
	}, nil
}
