package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/packpal/packpal/api"
	"github.com/packpal/packpal/cli/assistant"
	"github.com/packpal/packpal/cli/items"
	"github.com/packpal/packpal/cli/login"
	"github.com/packpal/packpal/cli/trips"
	"github.com/packpal/packpal/internal/auth"
	"github.com/packpal/packpal/internal/cli"
	"github.com/packpal/packpal/internal/configuration"
)

const configFilepath = "~/.packpal/config.json"

var rootCmd = &cobra.Command{
	Use:           "packpal",
	Short:         "Plan trips and packing lists with an assistant",
	SilenceErrors: true,
}

func main() {
	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}

	credentials := auth.NewFileStore(config.Auth.CredentialsPath)
	client := api.NewClient(config.APIHost, credentials, time.Duration(config.RequestTimeout)*time.Second)

	rootCmd.AddCommand(login.NewCmd(config, credentials))
	rootCmd.AddCommand(login.NewLogoutCmd(credentials))
	rootCmd.AddCommand(trips.NewCmd(config, client))
	rootCmd.AddCommand(items.NewCmd(config, client))
	rootCmd.AddCommand(assistant.NewCmd(config, client))
	if err := rootCmd.Execute(); err != nil {
		cli.Error("Error: %v\n", err)
		os.Exit(1)
	}
}
