package config

// UploadsConfig controls where photos are stored and how large they may be.
type UploadsConfig struct {
	Dir      string
	MaxBytes int64
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
}

func loadUploads() UploadsConfig {
	return UploadsConfig{
		Dir:      envOrDefault(envUploadsDir, defaultUploadsDir),
		MaxBytes: int64EnvOrDefault(envUploadMaxBytes, defaultUploadMaxBytes),
	}
}

func loadCORS() CORSConfig {
	return CORSConfig{AllowedOrigins: listEnvOrDefault(envCORSOrigins, []string{defaultCORSOrigins})}
}
