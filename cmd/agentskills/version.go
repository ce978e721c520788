package main

import (
	"fmt"
	"os"

	"github.com/marrick66/spec-agent-skills/pkg/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version information of agentskills in JSON format.`,
	Run: func(_ *cobra.Command, _ []string) {
		json, err := version.Get().JSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting version info: %s\n", err)
			os.Exit(1)
		}
		fmt.Println(json)
	},
}
