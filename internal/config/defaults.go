package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "./data/db/documents.db"
	}
	if cfg.Storage.UploadsPath == "" {
		cfg.Storage.UploadsPath = "./data/uploads"
	}
	if cfg.Processing.ChunkSize == 0 {
		cfg.Processing.ChunkSize = 1000
	}
	if cfg.Processing.ChunkOverlap == 0 {
		cfg.Processing.ChunkOverlap = 200
	}
	if cfg.Processing.MinKeywordLength == 0 {
		cfg.Processing.MinKeywordLength = 3
	}
	if cfg.Processing.MaxFileSize == 0 {
		cfg.Processing.MaxFileSize = 10 * 1024 * 1024
	}
	if cfg.Processing.Encodings == nil {
		cfg.Processing.Encodings = []string{"utf-8", "latin-1"}
	}
	if len(cfg.Watch.Directories) > 0 && cfg.Watch.Recursive == nil {
		t := true
		cfg.Watch.Recursive = &t
	}
}
