package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crimson-sun/aulos/internal/config"
	"github.com/crimson-sun/aulos/internal/logging"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "aulos",
	Short: "aulos — hear your API's rhythm",
	Long: `Aulos turns HTTP access logs into music.
It parses nginx, Apache, and JSON access logs, maps each request to a note
(status → scale and track, response time → pitch, size → duration), and
renders the sequence as a MIDI or WAV file.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.aulos.yaml)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn, error")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".aulos")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("aulos")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// loadConfig layers env defaults, the viper config file, and flags.
func loadConfig() config.Config {
	cfg := config.Load()

	if viper.IsSet("tempo") {
		cfg.Tempo = viper.GetFloat64("tempo")
	}
	if viper.IsSet("sample_rate") {
		cfg.Synth.SampleRate = viper.GetInt("sample_rate")
	}
	if viper.IsSet("envelope.attack") {
		cfg.Synth.Attack = viper.GetFloat64("envelope.attack")
	}
	if viper.IsSet("envelope.decay") {
		cfg.Synth.Decay = viper.GetFloat64("envelope.decay")
	}
	if viper.IsSet("envelope.sustain") {
		cfg.Synth.Sustain = viper.GetFloat64("envelope.sustain")
	}
	if viper.IsSet("envelope.release") {
		cfg.Synth.Release = viper.GetFloat64("envelope.release")
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg
}

// setupLogging initializes slog for a run. outputIsStdout keeps the
// NDJSON note stream clean.
func setupLogging(cfg config.Config, outputIsStdout bool) {
	logging.Init(outputIsStdout, logging.ParseLevel(cfg.Log.Level))
}
