package config

// AuthConfig points at the credential sources for the access gate.
// The gate stays disabled when neither source yields a credential.
type AuthConfig struct {
	CredentialsFile   string
	Users             string // inline "user:secret,user2:secret2"
	AttemptsPerMinute int
	SecureCookies     bool
	MaxSessions       int
}

// UploadConfig bounds spreadsheet uploads.
type UploadConfig struct {
	MaxBytes int64
}

func loadAuth() AuthConfig {
	return AuthConfig{
		CredentialsFile:   envOrDefault(envAuthFile, ""),
		Users:             envOrDefault(envAuthUsers, ""),
		AttemptsPerMinute: intEnvOrDefault(envAuthRate, defaultAuthRate),
		SecureCookies:     boolEnvOrDefault(envSecureCookies, false),
		MaxSessions:       intEnvOrDefault(envSessionMax, defaultSessionMax),
	}
}

func loadUpload() UploadConfig {
	return UploadConfig{
		MaxBytes: int64EnvOrDefault(envUploadMax, defaultUploadMax),
	}
}
