package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gobot.io/x/gobot/v2/platforms/raspi"

	"github.com/mastercactapus/pwmlights/clock"
	"github.com/mastercactapus/pwmlights/port"
)

var (
	installPrefix string
	installReset  bool
	configPath    string
	logLevel      string

	mainCmd = &cobra.Command{
		Use:               "pwmlights",
		Short:             "Software PWM light sequencer",
		PersistentPreRunE: setLogLevel,
	}
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Drive the configured lights until interrupted",
		Run:   runLights,
	}
	installCmd = &cobra.Command{
		Use:   "install",
		Short: "Install the binary, systemd unit and default config",
		Run:   runInstall,
	}
)

func setLogLevel(cmd *cobra.Command, args []string) error {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	return nil
}

func runInstall(cmd *cobra.Command, args []string) {
	err := install(installPrefix, installReset)
	if err != nil {
		log.Fatalln("install:", err)
	}
}

func loadConfig(path string) (*Config, error) {
	var c Config
	_, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, err
	}
	err = c.Validate()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func runLights(cmd *cobra.Command, args []string) {
	c, err := loadConfig(configPath)
	if err != nil {
		log.Fatalln("load config:", err)
	}

	adapter := raspi.NewAdaptor()
	err = adapter.Connect()
	if err != nil {
		log.Fatalln("connect gpio:", err)
	}
	defer adapter.Finalize()

	gpio := port.NewGPIO(adapter)
	err = c.MapLines(gpio)
	if err != nil {
		log.Fatalln("map lights:", err)
	}

	r, err := c.NewRunner(clock.System(), gpio)
	if err != nil {
		log.Fatalln("build lights:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"Lights":       len(c.Light),
		"PollInterval": c.PollInterval().String(),
	}).Infoln("running")
	err = r.Run(ctx)
	if err != nil {
		log.Errorln("run:", err)
	}
}

func main() {
	installCmd.Flags().BoolVar(&installReset, "reset", false, "Reset config. Resets configuration to default, even if a config file already exists")
	installCmd.Flags().StringVarP(&installPrefix, "prefix", "p", "", "Install prefix. Prefix to install directory, default is /")
	mainCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "/etc/pwmlights.conf", "Config path. The path to the configuration file")
	mainCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level. One of trace, debug, info, warn, error")
	mainCmd.AddCommand(runCmd, installCmd, newPreviewCmd())
	if err := mainCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
