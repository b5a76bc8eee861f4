package config

// StorageConfig selects the player backends.
// An empty MongoURI means the document store is not configured and players live in DataFile only.
type StorageConfig struct {
	MongoURI      string
	MongoDatabase string
	MongoTimeout  Duration
	MongoPoolSize int
	DataFile      string
}

// MongoEnabled reports whether a document store connection string was supplied.
func (s StorageConfig) MongoEnabled() bool {
	return s.MongoURI != ""
}

func loadStorage() StorageConfig {
	return StorageConfig{
		MongoURI:      envOrDefault(envMongoURI, ""),
		MongoDatabase: envOrDefault(envMongoDatabase, defaultMongoDatabase),
		MongoTimeout:  durationEnvOrDefault(envMongoTimeout, defaultMongoTimeout),
		MongoPoolSize: intEnvOrDefault(envMongoPoolSize, defaultMongoPoolSize),
		DataFile:      envOrDefault(envDataFile, defaultDataFile),
	}
}
