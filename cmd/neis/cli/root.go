package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "neis",
		Short: "National Energy Insights System API server",
		Long: `NEIS: serve national and regional energy generation and emissions data
as a REST API protected with short-lived API keys.

The dataset is loaded at startup from CSV files or SQL sources declared in a
manifest, aggregated in memory, and served read-only. Manual emissions values
can be submitted per scope and substituted for the calculated totals.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./neis.yaml)")

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newDatasetCmd())
	cmd.AddCommand(newTokenCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))

	return cmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("neis")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.neis")
	}

	viper.SetEnvPrefix("NEIS")
	viper.AutomaticEnv()
	viper.ReadInConfig() // config file is optional
}
