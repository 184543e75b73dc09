package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	WSURL     string
	Name      string
	Password  string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("SBCTL_SERVER", "http://localhost:8181"),
		WSURL:     getEnvOrDefault("SBCTL_WS", "ws://localhost:3000"),
		Name:      os.Getenv("SBCTL_NAME"),
		Password:  os.Getenv("SBCTL_PASSWORD"),
		Output:    "text",
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
