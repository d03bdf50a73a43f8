package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rpi_trader/internal/models"
	mode "rpi_trader/internal/modules/mode/service"
)

const (
	defaultConfigFile = "configs/values_local.yaml"
	separator         = "----------------------------------------"
)

// loadSettings читает тот же YAML, что и бот; без файла: дефолты и env.
func loadSettings(v *viper.Viper, configFile string) error {
	v.SetDefault("mode.file", mode.DefaultPath)
	if err := v.BindEnv("mode.file", "TRIGGER_FILE"); err != nil {
		return errors.Wrap(err, "bind TRIGGER_FILE")
	}

	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(configFile); os.IsNotExist(statErr) {
			return nil
		}
		return errors.Wrapf(err, "read config %s", configFile)
	}
	return nil
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var (
		configFile  string
		triggerFile string
	)

	storeFor := func() *mode.FileStore {
		path := triggerFile
		if path == "" {
			path = v.GetString("mode.file")
		}
		return mode.NewFileStore(path)
	}

	root := &cobra.Command{
		Use:   "toggle [0|1|2]",
		Short: "Switch the bot operating mode",
		Long: strings.Join([]string{
			"Writes the operating mode flag read by the bot on every cycle.",
			"  0: Entry Mode (Default)",
			"  1: Management Mode (BUY Order)",
			"  2: Management Mode (SELL Order)",
		}, "\n"),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("missing mode parameter, expected 0, 1 or 2")
			}
			if _, err := models.ParseMode(args[0]); err != nil {
				return errors.Wrap(err, "invalid mode parameter, must be 0, 1 or 2")
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadSettings(v, configFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _ := models.ParseMode(args[0])
			store := storeFor()
			if err := store.Write(context.Background(), m); err != nil {
				return errors.Wrapf(err, "toggle %s", store.Path())
			}
			printUpdated(cmd.OutOrStdout(), m)
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Print the current operating mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storeFor()
			raw, err := store.Read(context.Background())
			if err != nil {
				return errors.Wrapf(err, "status %s", store.Path())
			}
			m, err := models.ParseMode(raw)
			if err != nil {
				return errors.Wrapf(err, "mode file %s is not valid", store.Path())
			}
			fmt.Fprintln(cmd.OutOrStdout(), mode.StatusText(m))
			return nil
		},
	}
	root.AddCommand(status)

	root.PersistentFlags().StringVar(&configFile, "config", getenvDefault("CONFIG_FILE", defaultConfigFile), "bot config file")
	root.PersistentFlags().StringVar(&triggerFile, "file", "", "mode flag file (overrides mode.file)")
	return root
}

func printUpdated(w io.Writer, m models.Mode) {
	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "✅ STATUS UPDATED SUCCESSFULLY!")
	fmt.Fprintf(w, "New Status: %s (%s)\n", m.String(), m.Describe())
	fmt.Fprintln(w, "Note: The bot reads the new status on its next cycle.")
	fmt.Fprintln(w, separator)
}

func getenvDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}
