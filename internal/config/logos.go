package config

// LogosConfig controls the logo normalization step and where logos are served from.
type LogosConfig struct {
	SourceDir       string
	OutputDir       string
	Size            int      // target width and height in pixels
	CanonicalNames  bool     // rewrite output file names through naming.Key
	Workers         int      // parallel resize workers
	RefreshInterval Duration // zero runs normalization once at boot
	SidebarImage    string
}

func loadLogos() LogosConfig {
	return LogosConfig{
		SourceDir:       envOrDefault(envLogosSource, defaultLogosSource),
		OutputDir:       envOrDefault(envLogosOutput, defaultLogosOutput),
		Size:            intEnvOrDefault(envLogoSize, defaultLogoSize),
		CanonicalNames:  boolEnvOrDefault(envLogoCanonical, defaultLogoCanonical),
		Workers:         intEnvOrDefault(envLogoWorkers, defaultLogoWorkers),
		RefreshInterval: durationEnvOrDefault(envLogoRefresh, defaultLogoRefresh),
		SidebarImage:    envOrDefault(envSidebarImage, defaultSidebarImage),
	}
}
