package config

const (
	envPort          = "PORT"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogosSource   = "LOGOS_SOURCE_DIR"
	envLogosOutput   = "LOGOS_OUTPUT_DIR"
	envLogoSize      = "LOGO_SIZE"
	envLogoCanonical = "LOGO_CANONICAL_NAMES"
	envLogoWorkers   = "LOGO_WORKERS"
	envLogoRefresh   = "LOGO_REFRESH_INTERVAL"
	envSidebarImage  = "SIDEBAR_IMAGE"
	envPlotCategory  = "PLOT_CATEGORY_COLUMN"
	envPlotAxis      = "PLOT_AXIS_POLICY"
	envPlotZoom      = "PLOT_LOGO_ZOOM"
	envPlotWidth     = "PLOT_WIDTH"
	envPlotHeight    = "PLOT_HEIGHT"
	envPreviewRows   = "PREVIEW_ROWS"
	envAuthFile      = "AUTH_CREDENTIALS_FILE"
	envAuthUsers     = "AUTH_USERS"
	envAuthRate      = "AUTH_ATTEMPTS_PER_MINUTE"
	envUploadMax     = "UPLOAD_MAX_BYTES"
	envSecureCookies = "SECURE_COOKIES"
	envSessionMax    = "SESSION_MAX"

	defaultPort        = "8501"
	defaultMetricsPort = "9090"
	defaultServiceName = "logo-scatter-service"

	defaultLogosSource   = "./logos"
	defaultLogosOutput   = "./normalized_logos"
	defaultLogoSize      = 50
	defaultLogoCanonical = true
	defaultLogoWorkers   = 4
	// Zero disables periodic re-normalization; logos are processed once at boot.
	defaultLogoRefresh  = Duration(0)
	defaultSidebarImage = "performancefield_logo.jpeg"

	defaultPlotCategory = "Equipo"
	defaultPlotAxis     = "data"
	defaultPlotZoom     = 0.4
	// 10x6 inches at 100 DPI.
	defaultPlotWidth   = 1000
	defaultPlotHeight  = 600
	defaultPreviewRows = 200

	defaultAuthRate   = 5
	defaultUploadMax  = int64(10 << 20)
	defaultSessionMax = 1000
)
