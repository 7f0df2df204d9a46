package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	v1 "github.com/Shuaib-8/Travel-Copilot/internal/transport/http/v1"
)

// Set at build time with -ldflags "-X github.com/Shuaib-8/Travel-Copilot/cmd.commit=...".
var (
	commit    = "unknown"
	buildTime = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		short, _ := cmd.Flags().GetBool("short")
		if short {
			fmt.Fprintln(out, v1.APIVersion)
			return nil
		}
		fmt.Fprintf(out, "travel-copilot %s (commit %s, built %s, %s)\n", v1.APIVersion, commit, buildTime, runtime.Version())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Show only version number")
}
