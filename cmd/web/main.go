package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finitefield.org/taniti-web/internal/platform/config"
)

var (
	configFile string
	envFile    string
	dataSource string
	port       string
	devMode    bool
	useSample  bool
)

var rootCmd = &cobra.Command{
	Use:   "taniti-web",
	Short: "Visit Taniti travel guide",
	Long: `taniti-web serves the Visit Taniti travel guide.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var renderCmd = &cobra.Command{
	Use:   "render [fragment]",
	Short: "Render one page to stdout",
	Long: `Render resolves a navigation fragment such as "#/stay/bayview-bnb" or
"/dining" and writes the page HTML to stdout. Missing pages are written too,
but the command exits non-zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the dataset and report structural problems",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "YAML config file")
	pf.StringVar(&envFile, "env-file", "", ".env file (default .env when present)")
	pf.StringVar(&dataSource, "data", "", "dataset location: path, http(s):// URL or gs://bucket/object")
	pf.BoolVar(&useSample, "sample", false, "use the bundled sample dataset")

	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVar(&port, "port", "", "HTTP listen port")
		c.Flags().BoolVar(&devMode, "dev", false, "reparse templates per request and watch the dataset")
	}
	renderCmd.Flags().Bool("full", false, "render the full layout instead of the #app fragment")

	rootCmd.AddCommand(serveCmd, renderCmd, validateCmd)
}

// loadConfig applies command-line overrides on top of the loaded configuration.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var opts []config.Option
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return config.Config{}, err
	}
	if dataSource != "" {
		cfg.Site.DataSource = dataSource
	}
	if f := cmd.Flags().Lookup("port"); f != nil && f.Changed {
		cfg.Server.Port = port
	}
	if f := cmd.Flags().Lookup("dev"); f != nil && f.Changed {
		cfg.Server.DevMode = devMode
		cfg.Site.Watch = devMode
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
