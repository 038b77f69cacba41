package cmd

import (
	"fmt"

	"github.com/safespeak/safespeak/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	config *viper.Viper

	isDevEnv  bool
	isTestEnv bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd = createRootCmd()
	rootCmd.Version = fmt.Sprintf("v%s", version.Version)
}

func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "safespeak",
		Short: `safespeak is a personal safety backend.

The server lets users register emergency contacts, broadcast SOS alerts
with their location to those contacts, and screen messages for toxicity.`,
	}

	cmd.PersistentFlags().BoolVarP(&isDevEnv, "dev", "", false, "run in development mode")
	cmd.PersistentFlags().BoolVarP(&isTestEnv, "test", "", false, "run in test mode")

	return cmd
}
