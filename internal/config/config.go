package config

// Config holds runtime configuration for the server.
type Config struct {
	Port    string
	Logos   LogosConfig
	Plot    PlotConfig
	Auth    AuthConfig
	Upload  UploadConfig
	Metrics MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:    envOrDefault(envPort, defaultPort),
		Logos:   loadLogos(),
		Plot:    loadPlot(),
		Auth:    loadAuth(),
		Upload:  loadUpload(),
		Metrics: loadMetrics(),
	}
}
