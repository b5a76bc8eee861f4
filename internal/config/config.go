package config

// Config holds runtime configuration for the server.
type Config struct {
	Port    string
	Storage StorageConfig
	Uploads UploadsConfig
	CORS    CORSConfig
	Metrics MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:    envOrDefault(envPort, defaultPort),
		Storage: loadStorage(),
		Uploads: loadUploads(),
		CORS:    loadCORS(),
		Metrics: loadMetrics(),
	}
}
