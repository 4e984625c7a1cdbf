package workday

import "fmt"

// ConfigError reports allocation parameters the algorithm cannot work with.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
