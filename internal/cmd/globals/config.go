package globals

import (
	"github.com/KatelynHaworth/ucode-sniffer/config"
	"github.com/KatelynHaworth/ucode-sniffer/source"
)

var (
	Config = config.Default()

	// SourceOptions is rebuilt from Config once
	// the configuration has been loaded.
	SourceOptions *source.Options
)
