// Package cmd contains the Cobra CLI.
package cmd

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cgulWriter is a writer that prints to stdout. When testing, we replace
// this with a writer that prints to a buffer.
type cgulWriter struct{}

func (c cgulWriter) Write(p []byte) (n int, err error) {
	fmt.Print(string(p))
	return len(p), nil
}

// Execute uses the default settings and executes the root command.
func Execute() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	err := NewRootCmd(cgulWriter{}, afero.NewOsFs()).Execute()
	if err != nil {
		// Cobra prints the error message
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig reads in the config file if it exists.
func initConfig() {
	home, err := homedir.Dir()
	cobra.CheckErr(err)

	viper.SetDefault("RemoteModelBaseURL", "https://raw.githubusercontent.com/ecmwf-projects/cgul-models/main/v0/")
	viper.SetDefault("LocalModelBasePath", filepath.Join(home, ".config", "cgul", "models"))
	viper.SetDefault("OutputSuffix", "_harmonised")
	viper.SetDefault("MinConventions", "1.6")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(home + "/.config/cgul")
		viper.SetConfigName("config")
	}

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Error reading config file: %s", err)
		}
	}
}
