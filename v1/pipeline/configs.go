package pipeline

// Config defines the HTTP surface settings.
type Config struct {
	// Address is the listen address of the HTTP server.
	Address string `yaml:"address" envconfig:"SERVER_ADDRESS" default:":8080"`

	// Role selects the routes served by this process: "all", "entrypoint" or "worker".
	Role string `yaml:"role" envconfig:"SERVER_ROLE" default:"all"`

	// WorkerURL is the base URL the entrypoint relays to.
	WorkerURL string `yaml:"worker_url" envconfig:"WORKER_URL" default:"http://localhost:8080"`

	// GinMode is passed to gin.SetMode.
	GinMode string `yaml:"gin_mode" envconfig:"GIN_MODE" default:"release"`
}
