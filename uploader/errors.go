package uploader

import "fmt"

// UploadError is the single error category for the upload sequence: missing
// input file, metadata computation failure, or transfer invocation failure.
type UploadError struct {
	Msg string
	Err error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *UploadError) Unwrap() error { return e.Err }

func uploadErrorf(err error, format string, args ...any) *UploadError {
	return &UploadError{Msg: fmt.Sprintf(format, args...), Err: err}
}
