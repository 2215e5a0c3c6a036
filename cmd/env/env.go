package env

const (
	// Prefix is the environment variable prefix of every flag
	Prefix = "CEDEARS"

	// RedisURLSuffix names the Redis URL variable, read after loading .env
	RedisURLSuffix = "_REDIS_URL"
)
