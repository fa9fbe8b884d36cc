// Package flags groups the CLI options shared by both upload binaries.
package flags

import "github.com/spf13/pflag"

// Common holds the flags every variant exposes.
type Common struct {
	LocalFile    string
	SkipExisting bool
	Direct       bool
	Verbose      bool
	LogJSON      bool
}

func NewCommon() *Common { return &Common{} }

func (f *Common) NewFlagSet() *pflag.FlagSet {
	fs := &pflag.FlagSet{}
	fs.StringVarP(&f.LocalFile, "local-file", "l",
		"",
		"Local file system path to the input file.")
	fs.BoolVarP(&f.SkipExisting, "skip-existing", "o",
		false,
		"Keep products already present in the destination bucket instead of replacing them.")
	fs.BoolVar(&f.Direct, "direct",
		false,
		"Upload through the S3 API instead of the rclone binary.")
	fs.BoolVar(&f.Verbose, "verbose",
		false,
		"Enable debug logging.")
	fs.BoolVar(&f.LogJSON, "log-json",
		false,
		"Emit logs as JSON.")
	return fs
}
