package config

import "os"

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

// Port falls back to 8080 when APP_PORT is unset.
func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return "8080"
	}
	return port
}
