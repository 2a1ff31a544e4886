package constants

import "os"

const defaultAPIName = "car-catalog-api"

// APIName returns the bracketed service name used as a log message prefix.
func APIName() string {
	name := os.Getenv("API_NAME")
	if name == "" {
		name = defaultAPIName
	}
	return "[" + name + "]"
}
