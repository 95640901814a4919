// Package cmd implements the tether CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (render, showcase, version).
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-drift/tether/pkg/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string, out io.Writer) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "tether",
	Short: "tether - declarative trees over a host document",
	Long: `tether renders declarative UI trees into a host document and keeps
guest callbacks alive across the boundary.

The CLI renders tree descriptions headlessly, either into an in-memory
HTML document or into a document running inside an embedded JavaScript
runtime, and prints the result.

Use "tether <command> --help" for more information about a command.`,
	Usage: "tether <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return Run(os.Args[1:], os.Stdout)
}

// Run runs the CLI with args, writing command output to out. Logs go to
// stderr.
func Run(args []string, out io.Writer) error {
	if len(args) == 0 {
		printHelp(out, rootCmd)
		return nil
	}

	// Handle global flags and extract --log-level
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(out, rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(out, "tether version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--log-level":
			if i+1 >= len(args) {
				return fmt.Errorf("--log-level requires a level")
			}
			if err := setLogLevel(args[i+1]); err != nil {
				return err
			}
			i++
		default:
			if strings.HasPrefix(arg, "--log-level=") {
				if err := setLogLevel(strings.TrimPrefix(arg, "--log-level=")); err != nil {
					return err
				}
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(out, rootCmd)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(out, rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(out, cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs, out)
}

// logLevelSet records whether --log-level was given, so a project file
// cannot override it.
var logLevelSet bool

func setLogLevel(name string) error {
	level, err := logging.ParseLevel(name)
	if err != nil {
		return err
	}
	logging.SetDefault(logging.New(level))
	logLevelSet = true
	return nil
}

func printHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --log-level LEVEL    debug, info, warn or error (default from tether.yaml)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  tether render -f tree.yaml              Render into an in-memory page")
	fmt.Fprintln(w, "  tether render -f tree.yaml -host jsdom  Render inside the JS runtime")
	fmt.Fprintln(w, "  tether showcase                         Mount the demo applications")
}

func printCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
}
