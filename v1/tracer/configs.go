package tracer

// Config defines the tracer settings.
type Config struct {
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME" default:"tracerelay"`

	// AppEnv is recorded as deployment.environment.
	AppEnv string `yaml:"app_env" envconfig:"TRACER_APP_ENV" default:"development"`

	// EnableExport attaches a batching OTLP/HTTP exporter.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT" default:"false"`

	// Endpoint is the collector URL, e.g. "http://localhost:4318". Empty
	// falls back to the OTEL_EXPORTER_OTLP_* environment of the exporter.
	Endpoint string `yaml:"endpoint" envconfig:"TRACER_ENDPOINT"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" envconfig:"TRACER_INSECURE" default:"false"`
}
