package main

import (
	"fmt"
	"os"

	"github.com/jademcosta/logroller/pkg/app"
	"github.com/jademcosta/logroller/pkg/config"
	"github.com/jademcosta/logroller/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

const version = "0.0.1" //FIXME: automatize this

var configPath *string

func main() {
	rootCmd := &cobra.Command{
		Use:   "logroller --config <FILE_PATH>",
		Short: "Starts the log rollover coordinator",
		Run:   start,
	}

	setupCommandFlags(rootCmd)

	err := rootCmd.Execute()
	if err != nil {
		panic(fmt.Sprintf("Error on startup: %v", err))
	}
}

func setupCommandFlags(rootCmd *cobra.Command) {
	configPath = rootCmd.Flags().StringP("config", "c", "", "[required]The path for the config file")
	err := rootCmd.MarkFlagRequired("config")
	if err != nil {
		panic(fmt.Sprintf("err on flags setup: %v", err))
	}
}

func start(_ *cobra.Command, _ []string) {
	conf := initializeConfig()
	l := logger.New(conf.Log)

	if !conf.DisableMaxProcs {
		_, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			l.Info(fmt.Sprintf(format, args...))
		}))
		if err != nil {
			l.Warn("error setting GOMAXPROCS", "error", err)
		}
	}

	app.New(conf, l).Start()
}

func initializeConfig() *config.Config {
	confData, err := os.ReadFile(*configPath)
	if err != nil {
		panic(fmt.Errorf("error reading config file: %w", err))
	}

	c, err := config.New(confData)
	if err != nil {
		panic(fmt.Errorf("error initializing/parsing config: %w", err))
	}

	c.Version = version

	return c
}
