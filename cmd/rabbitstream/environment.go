package main

import (
	"os"
	"strconv"
)

func environment(name, fallback string) string {
	if value, found := os.LookupEnv(name); found && len(value) > 0 {
		return value
	}
	return fallback
}
func environmentInt(name string, fallback int) int {
	if value, err := strconv.Atoi(os.Getenv(name)); err == nil {
		return value
	}
	return fallback
}
func environmentBool(name string, fallback bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(name)); err == nil {
		return value
	}
	return fallback
}

// existing drops paths that do not name a readable file, so a missing certificate disables that
// part of the TLS configuration rather than failing startup.
func existing(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
func nonEmpty(values ...string) (list []string) {
	for _, value := range values {
		if len(value) > 0 {
			list = append(list, value)
		}
	}
	return list
}
