// Package config resolves the S3 remote configuration used by the upload
// tools, either from rclone's own config file or from RCLONE_CONFIG_<REMOTE>_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// Defaults for the CLMS remote hosted on CloudFerro.
const (
	DefaultRemote             = "CLMS"
	DefaultType               = "s3"
	DefaultProvider           = "Ceph"
	DefaultRegion             = "default"
	DefaultEndpoint           = "https://s3.waw3-1.cloudferro.com"
	DefaultLocationConstraint = "default"
)

// Config holds the parameters of one S3 remote. It mirrors an rclone remote
// section field for field.
type Config struct {
	Type               string
	Provider           string
	EnvAuth            bool
	AccessKeyID        string
	SecretAccessKey    string
	Region             string
	Endpoint           string
	LocationConstraint string
}

// Default returns the CLMS remote configuration with the given credentials.
func Default(accessKeyID, secretAccessKey string) *Config {
	return &Config{
		Type:               DefaultType,
		Provider:           DefaultProvider,
		EnvAuth:            true,
		AccessKeyID:        accessKeyID,
		SecretAccessKey:    secretAccessKey,
		Region:             DefaultRegion,
		Endpoint:           DefaultEndpoint,
		LocationConstraint: DefaultLocationConstraint,
	}
}

// DefaultPath returns the rclone config file location: $RCLONE_CONFIG if set,
// otherwise ~/.config/rclone/rclone.conf.
func DefaultPath() (string, error) {
	if p := os.Getenv("RCLONE_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rclone", "rclone.conf"), nil
}

// requiredKeys are the remote section keys that must be present for a usable
// configuration. env_auth and location_constraint are optional.
var requiredKeys = []string{
	"type",
	"provider",
	"access_key_id",
	"secret_access_key",
	"region",
	"endpoint",
}

// Load reads the named section of an rclone config file. A missing required
// key fails naming that key; no partial Config is ever returned.
func Load(path, section string) (*Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parsing rclone config %s: %w", path, err)
	}

	sec, err := f.GetSection(section)
	if err != nil {
		return nil, fmt.Errorf("rclone config %s: no %q section", path, section)
	}

	for _, key := range requiredKeys {
		if !sec.HasKey(key) || sec.Key(key).String() == "" {
			return nil, fmt.Errorf("rclone config section %q: missing key %q", section, key)
		}
	}

	return &Config{
		Type:               sec.Key("type").String(),
		Provider:           sec.Key("provider").String(),
		EnvAuth:            sec.Key("env_auth").MustBool(false),
		AccessKeyID:        sec.Key("access_key_id").String(),
		SecretAccessKey:    sec.Key("secret_access_key").String(),
		Region:             sec.Key("region").String(),
		Endpoint:           sec.Key("endpoint").String(),
		LocationConstraint: sec.Key("location_constraint").String(),
	}, nil
}

// FromEnv builds a Config from RCLONE_CONFIG_<REMOTE>_* environment variables,
// the same variables rclone itself honors. It returns (nil, nil) when no
// credentials are exported, so callers can fall back to the config file.
func FromEnv(remote string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RCLONE_CONFIG_" + strings.ToUpper(remote))
	v.AutomaticEnv()

	v.SetDefault("type", DefaultType)
	v.SetDefault("provider", DefaultProvider)
	v.SetDefault("env_auth", false)
	v.SetDefault("region", DefaultRegion)
	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("location_constraint", DefaultLocationConstraint)

	accessKeyID := v.GetString("access_key_id")
	secretAccessKey := v.GetString("secret_access_key")
	if accessKeyID == "" || secretAccessKey == "" {
		return nil, nil
	}

	return &Config{
		Type:               v.GetString("type"),
		Provider:           v.GetString("provider"),
		EnvAuth:            v.GetBool("env_auth"),
		AccessKeyID:        accessKeyID,
		SecretAccessKey:    secretAccessKey,
		Region:             v.GetString("region"),
		Endpoint:           v.GetString("endpoint"),
		LocationConstraint: v.GetString("location_constraint"),
	}, nil
}
