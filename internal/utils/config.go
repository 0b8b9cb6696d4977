package utils

import (
	"fmt"

	"github.com/spf13/viper"
)

// RequireConfigString returns the config value for key, or an error when it
// is unset or empty.
func RequireConfigString(key string) (value string, err error) {
	value = viper.GetString(key)
	if value == "" {
		err = fmt.Errorf("config key '%s' could not be found", key)
	}
	return
}
