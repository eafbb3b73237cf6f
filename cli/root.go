package cli

import (
	goflag "flag"

	"attio-sync/config"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

// RootOptions holds flags shared by all commands. Flag values override
// the config file and environment when set explicitly.
type RootOptions struct {
	ConfigPath  string
	DatabaseURL string
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "attio-sync",
		Short:         "Mirror Attio companies and fast track entries into SQL",
		Long:          "Receives Attio webhooks, fetches the changed company or list entry and upserts it into Postgres or SQLite.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "database-url", "", "database connection string (env DATABASE_URL)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

// loadConfig resolves defaults < file < env < flags.
func loadConfig(cmd *cobra.Command, opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("database-url") {
		cfg.DatabaseURL = opts.DatabaseURL
	}
	return cfg, nil
}
