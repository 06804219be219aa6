package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/KatelynHaworth/ucode-sniffer/magic"
	"github.com/KatelynHaworth/ucode-sniffer/source"
	"github.com/KatelynHaworth/ucode-sniffer/ucode"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatPlist = "plist"

	defaultWorkers     = 4
	defaultReadLimit   = 1024 * 1024 /* 1MiB */
	defaultHttpTimeout = 30
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")

	supportedFormats = []string{FormatText, FormatJSON, FormatYAML, FormatPlist}
)

type Configuration struct {
	ConfigVersion int `json:"config_version" yaml:"config_version"`

	MIME        bool   `json:"mime" yaml:"mime"`
	Compress    bool   `json:"compress" yaml:"compress"`
	Workers     int    `json:"workers" yaml:"workers"`
	ReadLimit   int64  `json:"read_limit" yaml:"read_limit"`
	OutputLimit int    `json:"output_limit" yaml:"output_limit"`
	Format      string `json:"format" yaml:"format"`

	HTTP HTTPConfiguration `json:"http" yaml:"http"`
	S3   S3Configuration   `json:"s3" yaml:"s3"`
}

type HTTPConfiguration struct {
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
}

type S3Configuration struct {
	Region          string `json:"region" yaml:"region"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	PathStyle       bool   `json:"path_style" yaml:"path_style"`
	AccessKeyId     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
	SessionToken    string `json:"session_token" yaml:"session_token"`
}

// Default returns the configuration used
// when no configuration file is present.
func Default() *Configuration {
	return &Configuration{
		ConfigVersion: 1,
		Workers:       defaultWorkers,
		ReadLimit:     defaultReadLimit,
		OutputLimit:   magic.DefaultOutputLimit,
		Format:        FormatText,
		HTTP: HTTPConfiguration{
			TimeoutSeconds: defaultHttpTimeout,
		},
	}
}

// Validate checks the configuration
// values can be used.
func (config *Configuration) Validate() error {
	var errs []error

	if config.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, have %d", config.Workers))
	}

	if config.ReadLimit < int64(ucode.HeaderSize) {
		errs = append(errs, fmt.Errorf("read_limit must be at least %d, have %d", ucode.HeaderSize, config.ReadLimit))
	}

	if config.OutputLimit < 1 {
		errs = append(errs, fmt.Errorf("output_limit must be at least 1, have %d", config.OutputLimit))
	}

	if config.HTTP.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("http.timeout_seconds can't be negative, have %d", config.HTTP.TimeoutSeconds))
	}

	if !validFormat(config.Format) {
		errs = append(errs, fmt.Errorf("format must be one of %s, have '%s'", strings.Join(supportedFormats, ", "), config.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errors.Join(errs...))
	}

	return nil
}

// Flags returns the sniffer flags
// this configuration asks for.
func (config *Configuration) Flags() magic.Flag {
	flags := magic.FlagNone

	if config.MIME {
		flags |= magic.FlagMIMEType
	}

	if config.Compress {
		flags |= magic.FlagCompress
	}

	return flags
}

// SourceOptions returns the options used
// to read identification targets.
func (config *Configuration) SourceOptions() *source.Options {
	return &source.Options{
		HttpTimeout: time.Duration(config.HTTP.TimeoutSeconds) * time.Second,
		S3: source.S3Options{
			Region:          config.S3.Region,
			Endpoint:        config.S3.Endpoint,
			PathStyle:       config.S3.PathStyle,
			AccessKeyId:     config.S3.AccessKeyId,
			SecretAccessKey: config.S3.SecretAccessKey,
			SessionToken:    config.S3.SessionToken,
		},
	}
}

func (config *Configuration) resolve() error {
	for _, value := range []*string{
		&config.S3.AccessKeyId,
		&config.S3.SecretAccessKey,
		&config.S3.SessionToken,
	} {
		if envKey, found := strings.CutPrefix(*value, "ENV:"); found {
			*value = os.Getenv(envKey)
		}
	}

	return config.Validate()
}

func validFormat(format string) bool {
	for _, supported := range supportedFormats {
		if format == supported {
			return true
		}
	}

	return false
}
