package configs

// Config holds all configuration for the application.
type Config struct {
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	Source      SourceConfig      `mapstructure:"source" validate:"required"`
	Analysis    AnalysisConfig    `mapstructure:"analysis" validate:"required"`
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Generator   GeneratorConfig   `mapstructure:"generator" validate:"required"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// FileStorageConfig holds the directory access log files are read from and generated into.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// SourceConfig describes how raw log lines become access records.
type SourceConfig struct {
	FileName    string `mapstructure:"file_name" validate:"required,relpath"`
	Format      string `mapstructure:"format" validate:"required,oneof=text json"`
	Compression string `mapstructure:"compression" validate:"required,oneof=auto none gzip zstd"`
	ExcludeBots bool   `mapstructure:"exclude_bots"`
}

// AnalysisConfig holds aggregation engine configuration.
type AnalysisConfig struct {
	BaseYear int `mapstructure:"base_year" validate:"required,min=1970,max=9993"` // first year of the 7-year window
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// GeneratorConfig holds defaults for synthetic log generation.
type GeneratorConfig struct {
	Count int   `mapstructure:"count" validate:"required,min=1"`
	Seed  int64 `mapstructure:"seed"`
}
