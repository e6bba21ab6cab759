package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultRedisURL is the default Redis connection URL.
	DefaultRedisURL = "redis://localhost:6379/0"

	// DefaultExpoPushURL is the Expo push notification endpoint.
	DefaultExpoPushURL = "https://exp.host/--/api/v2/push/send"
)
