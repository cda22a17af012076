// Package config handles demo server configuration loading.
package config

// Config holds all server settings.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	World   WorldConfig   `yaml:"world"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// WorldConfig holds world dimensions and generation settings. A
// non-empty Map loads that text map instead of generating terrain.
type WorldConfig struct {
	Cols      int    `yaml:"cols"`
	Rows      int    `yaml:"rows"`
	Seed      int64  `yaml:"seed"`
	ChunkSize int    `yaml:"chunk_size"`
	Map       string `yaml:"map"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr: ":8080",
		},
		World: WorldConfig{
			Cols:      96,
			Rows:      64,
			Seed:      1337,
			ChunkSize: 20,
		},
		Store: StoreConfig{
			Path: "regions.db",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
