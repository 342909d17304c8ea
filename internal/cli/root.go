// Package cli implements the propai command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/propai/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// options holds global flag values shared by every subcommand.
type options struct {
	configDir string
	dataDir   string
	backend   string
	envFile   string
	verbose   bool

	logger *slog.Logger
}

// NewRootCmd creates the top-level "propai" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	opts := &options{logger: slog.Default()}
	root := &cobra.Command{
		Use:   "propai",
		Short: "PropAI real-estate data layer",
		Long: "propai manages properties, users, messages and collections through a\n" +
			"backend-agnostic data service, and serves them as a document store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configDir, "config-dir", "", "configuration directory (default: .propai or the platform config dir)")
	pf.StringVar(&opts.dataDir, "data-dir", "", "sqlite data directory (default: .propai-db)")
	pf.StringVar(&opts.backend, "backend", "", "backend override: memory, sqlite, remote or mysql")
	pf.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(opts),
		newServeCmd(opts),
		newHealthCmd(opts),
		newPropertiesCmd(opts),
		newUsersCmd(opts),
		newMessagesCmd(opts),
		newCollectionsCmd(opts),
		newStatsCmd(opts),
		newChatCmd(opts),
	)
	return root
}

// setup loads the dotenv file and installs the logger.
func (o *options) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(o.logger)

	if o.envFile == "" {
		return nil
	}
	if err := godotenv.Load(o.envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", o.envFile, err)
	}
	o.logger.Debug("loaded environment file", "path", o.envFile)
	return nil
}

// Run executes the CLI with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// Execute runs the root command against the process arguments and exits.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// sysError marks err as a failure of the environment rather than the input.
type sysError struct{ err error }

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func systemError(format string, args ...any) error {
	return &sysError{err: fmt.Errorf(format, args...)}
}

// exitCode maps err to exitSysError for store, transport and I/O failures
// and to exitUserError otherwise.
func exitCode(err error) int {
	var se *sysError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &se),
		errors.Is(err, types.ErrTransport),
		errors.Is(err, types.ErrServiceDetached):
		return exitSysError
	default:
		return exitUserError
	}
}

var (
	// errNotFound reports a lookup that matched nothing.
	errNotFound = errors.New("not found")

	errNoIndex           = errors.New("meili_host is not configured")
	errConflictingAuthor = errors.New("--ai and --user are mutually exclusive")
)

func notFound(noun, id string) error {
	return fmt.Errorf("%s %q: %w", noun, id, errNotFound)
}

