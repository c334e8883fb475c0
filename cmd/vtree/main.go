package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬  ┬┌┬┐┬─┐┌─┐┌─┐
  └┐┌┘ │ ├┬┘├┤ ├┤
   └┘  ┴ ┴└─└─┘└─┘
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		errors.Fprint(stderr, err, "E152")
		return 1
	}
	return 0
}

// globals are the persistent flags shared by every command.
type globals struct {
	dir      string
	logLevel string
	stdout   io.Writer
	stderr   io.Writer
}

// load reads configuration from the --dir directory and applies flag
// overrides. It installs the configured hasher as the default node builder,
// so every tree built afterwards is hashed the configured way.
func (g *globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.dir)
	if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	vdom.SetDefault(cfg.Builder())
	return cfg, nil
}

func (g *globals) logger(cfg *config.Config) *slog.Logger {
	return cfg.Logger(g.stderr)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globals{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "vtree",
		Short: "Render and preview virtual-tree components",
		Long: `vtree renders component trees to HTML and serves a live preview.

Trees are reconciled against an in-memory document, so every render
goes through the same patch path a browser host would use:

  • String and shallow rendering
  • Static export to a directory or S3
  • Live preview with websocket pushes
  • Prometheus metrics and OpenTelemetry traces`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&g.dir, "dir", "C", ".", "Directory containing vtree.json or vtree.yaml")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		renderCmd(g),
		serveCmd(g),
		demosCmd(g),
		configCmd(g),
		versionCmd(g),
	)
	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
