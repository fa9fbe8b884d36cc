package config

import (
	"os"
	"strings"
)

// CredentialsError reports a missing, empty, or malformed credentials file.
type CredentialsError struct {
	Msg string
	Err error
}

func (e *CredentialsError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *CredentialsError) Unwrap() error { return e.Err }

// ParseCredentials reads a credentials file whose first non-empty line has
// the form "accessKeyId:secretAccessKey".
func ParseCredentials(path string) (accessKeyID, secretAccessKey string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", &CredentialsError{Msg: "credentials file not found: " + path, Err: err}
		}
		return "", "", &CredentialsError{Msg: "reading credentials file " + path, Err: err}
	}

	var line string
	for _, l := range strings.Split(string(data), "\n") {
		if t := strings.TrimSpace(l); t != "" {
			line = t
			break
		}
	}
	if line == "" {
		return "", "", &CredentialsError{Msg: "credentials file is empty: " + path}
	}

	parts := strings.Split(line, ":")
	if len(parts) != 2 {
		return "", "", &CredentialsError{Msg: `invalid credentials format, expected "accessKeyId:secretAccessKey"`}
	}

	accessKeyID = strings.TrimSpace(parts[0])
	secretAccessKey = strings.TrimSpace(parts[1])
	if accessKeyID == "" || secretAccessKey == "" {
		return "", "", &CredentialsError{Msg: `invalid credentials format, expected "accessKeyId:secretAccessKey"`}
	}
	return accessKeyID, secretAccessKey, nil
}
