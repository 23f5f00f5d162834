package testcontainers

// Images pinned for the integration suite.
const (
	PostgresImage = "postgres:17.0-alpine3.20"
	MongoImage    = "mongo:8.0"
)

// Environment overrides read by the suite.
const (
	PostgresImageKey = "TEST_POSTGRES_IMAGE"
	MongoImageKey    = "TEST_MONGO_IMAGE"
)
