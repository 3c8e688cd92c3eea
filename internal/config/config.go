package config

// Config is the root application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Parser ParserConfig `yaml:"parser"`
	Ingest IngestConfig `yaml:"ingest"`
	Log    LogConfig    `yaml:"log"`
}

// StoreConfig holds the embedded-store settings: where the single data
// file lives and how writes are batched and locked.
type StoreConfig struct {
	DataDir              string `yaml:"data_dir"               env:"WN_DATA_DIR"               env-default:"./wordnet-data"`
	BusyTimeoutMS        int    `yaml:"busy_timeout_ms"        env:"WN_BUSY_TIMEOUT_MS"        env-default:"5000"`
	TransactionChunkSize int    `yaml:"transaction_chunk_size" env:"WN_TRANSACTION_CHUNK_SIZE" env-default:"10000"`
	MaxVars              int    `yaml:"max_vars"               env:"WN_MAX_VARS"               env-default:"900"`
}

// ParserConfig holds LMF parser settings.
type ParserConfig struct {
	ProgressEveryElements int      `yaml:"progress_every_elements" env:"WN_PARSER_PROGRESS_EVERY"   env-default:"1000"`
	AllowedVersions       []string `yaml:"allowed_versions"        env:"WN_PARSER_ALLOWED_VERSIONS" env-default:"1.0,1.1,1.2,1.3,1.4"`
}

// IngestConfig holds default flags for ingestion entrypoints.
type IngestConfig struct {
	DefaultForce  bool `yaml:"default_force"   env:"WN_INGEST_FORCE"   env-default:"false"`
	DefaultDryRun bool `yaml:"default_dry_run" env:"WN_INGEST_DRY_RUN" env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"WN_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"WN_LOG_FORMAT" env-default:"json"`
}
