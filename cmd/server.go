package cmd

import (
	"bytes"
	"fmt"
	"log"

	devconfig "github.com/safespeak/safespeak/dev/config"
	"github.com/safespeak/safespeak/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start a safespeak server",
	Long:  `The safespeak server houses the SOS dispatch, emergency contact and toxicity screening APIs`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start(serverConfig(), isDevEnv || isTestEnv)
	},
}

var serverConfigFile string

func init() {
	rootCmd.AddCommand(serverCmd)

	// TODO: Make this required, when not in dev mode
	serverCmd.Flags().StringVar(&serverConfigFile, "sconfig", "", "Config for server")
}

func serverConfig() *viper.Viper {
	config = viper.New()
	config.AutomaticEnv() // read in environment variables that match

	// Dev & test mode run off the checked-in dev config, no file required
	if (isDevEnv || isTestEnv) && serverConfigFile == "" {
		config.SetConfigType("yaml")
		if err := config.ReadConfig(bytes.NewBufferString(devconfig.SERVER_YML)); err != nil {
			log.Panic(fmt.Sprintf("error reading dev server config: %v", err))
		}
		return config
	}

	config.SetConfigFile(serverConfigFile)

	// If a config file is found, read it in.
	if err := config.ReadInConfig(); err != nil {
		log.Panic(fmt.Sprintf("error reading server config file: %v", err))
	}

	return config
}
