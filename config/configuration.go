package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type ConfigFormat uint8

const (
	ConfigFormatJSON ConfigFormat = iota
	ConfigFormatYAML
)

// FormatForFile picks the ConfigFormat
// matching the extension of path.
func FormatForFile(path string) ConfigFormat {
	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		return ConfigFormatYAML
	}

	return ConfigFormatJSON
}

func (format ConfigFormat) decode(src io.Reader, dst any) error {
	switch format {
	case ConfigFormatJSON:
		return json.NewDecoder(src).Decode(dst)

	case ConfigFormatYAML:
		return yaml.NewDecoder(src).Decode(dst)

	default:
		return errors.New("unsupported config format")
	}
}

var ErrUnsupportedVersion = errors.New("unsupported configuration version")

type configVersion struct {
	ConfigVersion int `json:"config_version" yaml:"config_version"`
}

func (ver *configVersion) supported() bool {
	switch ver.ConfigVersion {
	case 0, 1:
		return true

	default:
		return false
	}
}

// LoadConfigurationFromFile decodes the
// configuration in srcFile on top of the
// defaults and resolves any ENV: values.
//
// When srcFile doesn't exist and missingOk
// is set the defaults are returned.
func LoadConfigurationFromFile(srcFile string, format ConfigFormat, missingOk bool) (*Configuration, error) {
	config := Default()

	src, err := os.OpenFile(srcFile, os.O_RDONLY, 0644)
	switch {
	case err != nil && missingOk && errors.Is(err, os.ErrNotExist):
		return config, config.resolve()

	case err != nil:
		return nil, fmt.Errorf("open configuration file: %w", err)
	}
	defer src.Close()

	var configVer configVersion
	if err = format.decode(src, &configVer); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config version: %w", err)
	} else if !configVer.supported() {
		return nil, fmt.Errorf("version %d: %w", configVer.ConfigVersion, ErrUnsupportedVersion)
	} else if _, err = src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to start of config: %w", err)
	}

	if err = format.decode(src, config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode configuration file: %w", err)
	}

	if err = config.resolve(); err != nil {
		return nil, err
	}

	return config, nil
}
