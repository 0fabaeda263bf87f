package config

// LoggingSettings configures the application logger. Level and Format are
// parsed leniently by the logger factory; unknown values fall back to INFO
// and text output.
type LoggingSettings struct {
	Level          string `env:"LOG_LEVEL" envDefault:"INFO" yaml:"level"`
	Format         string `env:"LOG_FORMAT" envDefault:"text" yaml:"format"`
	FilterWarnings bool   `env:"FILTER_WARNING" envDefault:"true" yaml:"filter_warnings"`
}
