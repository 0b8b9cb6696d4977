package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var shortFlag bool

// Build information, replaced via -ldflags at release time.
var (
	gitVersion = "v0.0.0-dev"
	gitCommit  = "da39a3ee5e6b4b0d3255bfef95601890afd80709"
	buildDate  = "0000-00-00T00:00:00Z"
)

// VersionInfo describes a cgul build.
type VersionInfo struct {
	GitVersion string
	GitCommit  string
	BuildDate  string
}

func newVersionCmd(cgulWriter io.Writer) *cobra.Command {
	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Display the version of cgul",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersion(cgulWriter)
		},
	}

	versionCmd.SetOut(cgulWriter)
	versionCmd.SetErr(cgulWriter)

	versionCmd.Flags().BoolVar(&shortFlag, "short", false, "display only the version number")

	return versionCmd
}

func printVersion(cgulWriter io.Writer) error {
	if shortFlag {
		_, err := fmt.Fprintln(cgulWriter, gitVersion)
		return err
	}

	versionInfo, err := json.Marshal(VersionInfo{
		GitVersion: gitVersion,
		GitCommit:  gitCommit,
		BuildDate:  buildDate,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cgulWriter, string(versionInfo))
	return err
}
