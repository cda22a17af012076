package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagListen = flag.String("listen", "", "HTTP listen address")
	flagDB     = flag.String("db", "", "SQLite database path")
	flagSeed   = flag.Int64("seed", 0, "World generation seed")
	flagCols   = flag.Int("cols", 0, "World width in tiles")
	flagRows   = flag.Int("rows", 0, "World height in tiles")
	flagChunk  = flag.Int("chunk", 0, "Region chunk size in tiles")
	flagMap    = flag.String("map", "", "Text map file to load instead of generating terrain")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagListen != "" {
		cfg.Server.ListenAddr = *flagListen
	}
	if *flagDB != "" {
		cfg.Store.Path = *flagDB
	}
	if *flagSeed != 0 {
		cfg.World.Seed = *flagSeed
	}
	if *flagCols > 0 {
		cfg.World.Cols = *flagCols
	}
	if *flagRows > 0 {
		cfg.World.Rows = *flagRows
	}
	if *flagChunk > 0 {
		cfg.World.ChunkSize = *flagChunk
	}
	if *flagMap != "" {
		cfg.World.Map = *flagMap
	}
}
