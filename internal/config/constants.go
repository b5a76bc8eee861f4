package config

import "time"

const (
	envPort           = "PORT"
	envMongoURI       = "MONGODB_URI"
	envMongoDatabase  = "MONGODB_DATABASE"
	envMongoTimeout   = "MONGODB_TIMEOUT"
	envMongoPoolSize  = "MONGODB_MAX_POOL_SIZE"
	envDataFile       = "PLAYERS_DATA_FILE"
	envUploadsDir     = "UPLOADS_DIR"
	envUploadMaxBytes = "UPLOAD_MAX_BYTES"
	envCORSOrigins    = "CORS_ALLOWED_ORIGINS"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort          = "8080"
	defaultMongoDatabase = "sunday-game"
	defaultMongoTimeout  = 5 * Duration(time.Second)
	defaultMongoPoolSize = 10
	defaultDataFile      = "server/data/players.json"
	defaultUploadsDir    = "public/uploads"
	// 5 MB, matching the photo size limit advertised to clients.
	defaultUploadMaxBytes = 5 * 1024 * 1024
	defaultCORSOrigins    = "*"
	defaultMetricsPort    = "9090"
	defaultServiceName    = "sunday-game-service"
)
