// podctl is a small CLI around the pod client: create a container, publish a
// newline-delimited text resource, read it back, or append to it.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"solidpod/pkg/config"
	"solidpod/pkg/pod"
)

var flags struct {
	configPath string
	podURL     string
	backend    string
	insecure   bool
	verbose    bool
}

var rootCmd = &cobra.Command{
	Use:   "podctl",
	Short: "Interact with LDP containers in a Solid pod",
	Long: `podctl performs the four pod operations over HTTP:

	podctl create-container notes
	podctl publish notes log.txt x y z
	podctl read notes log.txt
	podctl update notes log.txt w

The pod base URL comes from --pod-url, a YAML config file (--config), or the
SOLIDPOD_POD_URL environment variable.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flags.verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		}))
		slog.SetDefault(logger)
	},
}

var createContainerCmd = &cobra.Command{
	Use:   "create-container <name>",
	Short: "Create an LDP basic container (no-op if it already exists)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openClient()
		if err != nil {
			return err
		}
		defer c.Close()
		return c.CreateContainer(cmd.Context(), args[0])
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish <container> <file> <value>...",
	Short: "Write values as a newline-delimited resource, replacing existing content",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openClient()
		if err != nil {
			return err
		}
		defer c.Close()
		return c.PublishData(cmd.Context(), args[0], args[1], args[2:])
	},
}

var readCmd = &cobra.Command{
	Use:   "read <container> <file>",
	Short: "Read a resource and print one value per line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openClient()
		if err != nil {
			return err
		}
		defer c.Close()
		vals, err := c.ReadData(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		for _, v := range vals {
			fmt.Println(v)
		}
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <container> <file> <value>...",
	Short: "Append values to a resource (read-merge-write, not atomic)",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openClient()
		if err != nil {
			return err
		}
		defer c.Close()
		return c.UpdateData(cmd.Context(), args[0], args[1], args[2:])
	},
}

func openClient() (*pod.Client, error) {
	cfg := config.DefaultConfig()
	if flags.configPath != "" {
		var err error
		cfg, err = config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
	}
	if flags.podURL != "" {
		cfg.PodURL = flags.podURL
	}
	if flags.backend != "" {
		cfg.Backend = flags.backend
	}
	if flags.insecure {
		cfg.InsecureSkipVerify = true
	}
	if flags.configPath == "" {
		if v := os.Getenv("SOLIDPOD_POD_URL"); v != "" && flags.podURL == "" {
			cfg.PodURL = v
		}
	}
	return pod.Open(cfg, slog.Default())
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flags.podURL, "pod-url", "", "pod base URL, e.g. https://solid.example.org/alice/")
	rootCmd.PersistentFlags().StringVar(&flags.backend, "backend", "", "HTTP backend: resty or fiber")
	rootCmd.PersistentFlags().BoolVar(&flags.insecure, "insecure", false, "skip TLS certificate verification")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(createContainerCmd, publishCmd, readCmd, updateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
