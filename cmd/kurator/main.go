package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/kurator/kurator/internal/cli"
	"github.com/kurator/kurator/internal/config"
	"github.com/kurator/kurator/internal/journal"
	"github.com/kurator/kurator/internal/keybinds"
	"github.com/kurator/kurator/internal/session"
	"github.com/kurator/kurator/internal/tui"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kurator",
	Short: "kurator - labeling client for config edit data points",
	Long: `kurator is a terminal client for the config-edit labeling service.

Run without arguments to start the TUI. The subcommands run single actions
headlessly; file arguments accept "-" for stdin.

Examples:
  kurator                                        # Start interactive TUI
  kurator list --query "[?edited].username"      # JMESPath over the list
  kurator suggest-instruction --before a.yaml --after b.yaml
  kurator submit --before a.yaml --after b.yaml --instruction i.txt
  kurator submit --edit 42 --after b.yaml        # Update data point 42
  kurator delete 42 --yes
  kurator journal --failures`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		return tui.Run(cmd.Context(), sess)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List data points",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(cmd, func(ctx context.Context, r *cli.Runner) error {
			return r.List(ctx, cli.ListOptions{
				Query:    flagQuery,
				JSON:     flagJSON,
				YAML:     flagYAML,
				Username: flagUsername,
				Tags:     flagTags,
			})
		})
	},
}

var suggestInstructionCmd = &cobra.Command{
	Use:   "suggest-instruction",
	Short: "Ask the service for a change instruction describing before -> after",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := readInputs(flagBefore, flagAfter)
		if err != nil {
			return err
		}
		return withRunner(cmd, func(ctx context.Context, r *cli.Runner) error {
			return r.SuggestInstruction(ctx, inputs[0], inputs[1])
		})
	},
}

var suggestConfigCmd = &cobra.Command{
	Use:   "suggest-config",
	Short: "Ask the service to apply an instruction to a config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := readInputs(flagBefore, flagInstruction)
		if err != nil {
			return err
		}
		return withRunner(cmd, func(ctx context.Context, r *cli.Runner) error {
			return r.SuggestConfig(ctx, inputs[0], inputs[1])
		})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an original/modified config pair",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := readInputs(flagBefore, flagAfter)
		if err != nil {
			return err
		}
		return withRunner(cmd, func(ctx context.Context, r *cli.Runner) error {
			return r.Validate(ctx, inputs[0], inputs[1])
		})
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a new data point, or update one with --edit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := readInputs(flagBefore, flagAfter, flagInstruction, flagNote)
		if err != nil {
			return err
		}
		return withRunner(cmd, func(ctx context.Context, r *cli.Runner) error {
			return r.Submit(ctx, cli.SubmitOptions{
				Before:      inputs[0],
				After:       inputs[1],
				Instruction: inputs[2],
				Note:        inputs[3],
				EditID:      flagEditID,
				Validate:    flagValidate,
			})
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a data point (pick it interactively without an id)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int64
		if len(args) > 0 {
			parsed, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || parsed <= 0 {
				return fmt.Errorf("invalid data point id: %s", args[0])
			}
			id = parsed
		}
		return withRunner(cmd, func(ctx context.Context, r *cli.Runner) error {
			return r.Delete(ctx, id)
		})
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show the line diff between two configs (offline)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := readInputs(flagBefore, flagAfter)
		if err != nil {
			return err
		}
		cli.Diff(cmd.OutOrStdout(), inputs[0], inputs[1])
		return nil
	},
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show the recorded API calls",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(cmd, func(ctx context.Context, r *cli.Runner) error {
			return r.Journal(cli.JournalOptions{
				Limit:    flagLimit,
				Failures: flagFailures,
				Clear:    flagClear,
				Stats:    flagStats,
				JSON:     flagJSON,
			})
		})
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Show, check or initialize the keybindings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return err
		}
		return runKeybinds(cmd)
	},
}

// Global flags
var (
	flagBaseURL string
	flagCookie  string
	flagTimeout string
	flagYes     bool
)

// Command flags
var (
	flagQuery       string
	flagJSON        bool
	flagYAML        bool
	flagUsername    string
	flagTags        []string
	flagBefore      string
	flagAfter       string
	flagInstruction string
	flagNote        string
	flagEditID      int64
	flagValidate    bool
	flagLimit       int
	flagFailures    bool
	flagClear       bool
	flagStats       bool
	flagInit        bool
	flagCheck       bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Labeling service URL (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&flagCookie, "cookie", "", "Session cookie sent with every request")
	rootCmd.PersistentFlags().StringVar(&flagTimeout, "timeout", "", "Request timeout, e.g. 30s")

	listCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query over the JSON list")
	listCmd.Flags().BoolVar(&flagJSON, "json", false, "Print JSON")
	listCmd.Flags().BoolVar(&flagYAML, "yaml", false, "Print YAML")
	listCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "Only data points by this user")
	listCmd.Flags().StringSliceVarP(&flagTags, "tags", "t", nil, "Only data points with any of these tags")

	suggestInstructionCmd.Flags().StringVar(&flagBefore, "before", "", "Original config file")
	suggestInstructionCmd.Flags().StringVar(&flagAfter, "after", "", "Modified config file")
	suggestInstructionCmd.MarkFlagRequired("before")
	suggestInstructionCmd.MarkFlagRequired("after")

	suggestConfigCmd.Flags().StringVar(&flagBefore, "before", "", "Original config file")
	suggestConfigCmd.Flags().StringVar(&flagInstruction, "instruction", "", "Change instruction file")
	suggestConfigCmd.MarkFlagRequired("before")
	suggestConfigCmd.MarkFlagRequired("instruction")

	validateCmd.Flags().StringVar(&flagBefore, "before", "", "Original config file")
	validateCmd.Flags().StringVar(&flagAfter, "after", "", "Modified config file")
	validateCmd.MarkFlagRequired("before")
	validateCmd.MarkFlagRequired("after")

	submitCmd.Flags().StringVar(&flagBefore, "before", "", "Original config file")
	submitCmd.Flags().StringVar(&flagAfter, "after", "", "Modified config file")
	submitCmd.Flags().StringVar(&flagInstruction, "instruction", "", "Change instruction file")
	submitCmd.Flags().StringVar(&flagNote, "note", "", "Note file")
	submitCmd.Flags().Int64Var(&flagEditID, "edit", 0, "Update the data point with this id")
	submitCmd.Flags().BoolVar(&flagValidate, "validate", false, "Validate first and stop on invalid configs")
	submitCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Answer yes to confirmations")

	deleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Answer yes to confirmations")

	diffCmd.Flags().StringVar(&flagBefore, "before", "", "Original config file")
	diffCmd.Flags().StringVar(&flagAfter, "after", "", "Modified config file")
	diffCmd.MarkFlagRequired("before")
	diffCmd.MarkFlagRequired("after")

	journalCmd.Flags().IntVarP(&flagLimit, "limit", "n", journal.DefaultLimit, "Number of entries")
	journalCmd.Flags().BoolVar(&flagFailures, "failures", false, "Only failed calls")
	journalCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every entry")
	journalCmd.Flags().BoolVar(&flagStats, "stats", false, "Aggregate calls per operation")
	journalCmd.Flags().BoolVar(&flagJSON, "json", false, "Print JSON")

	keybindsCmd.Flags().BoolVar(&flagInit, "init", false, "Write the default keybindings file if missing")
	keybindsCmd.Flags().BoolVar(&flagCheck, "check", false, "Validate the keybindings file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(suggestInstructionCmd)
	rootCmd.AddCommand(suggestConfigCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(keybindsCmd)
}

func openSession() (*session.Manager, error) {
	return session.Open(session.Overrides{
		BaseURL: flagBaseURL,
		Cookie:  flagCookie,
		Timeout: flagTimeout,
	})
}

// withRunner opens a session and runs fn; ctrl+c cancels the context
func withRunner(cmd *cobra.Command, fn func(ctx context.Context, r *cli.Runner) error) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return fn(ctx, cli.NewRunner(sess, cli.Options{Yes: flagYes}))
}

func readInputs(paths ...string) ([]string, error) {
	inputs := make([]string, len(paths))
	stdin := false
	for i, path := range paths {
		if path == "-" {
			if stdin {
				return nil, fmt.Errorf("only one input can be read from stdin")
			}
			stdin = true
		}
		text, err := cli.ReadInput(path)
		if err != nil {
			return nil, err
		}
		inputs[i] = text
	}
	return inputs, nil
}

func runKeybinds(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	if flagInit {
		if _, err := os.Stat(config.KeybindsFile); err == nil {
			return fmt.Errorf("keybindings file already exists: %s", config.KeybindsFile)
		}
		if err := keybinds.SaveConfig(keybinds.ExportDefaults(), config.KeybindsFile); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", config.KeybindsFile)
		return nil
	}

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	if flagCheck {
		result := keybinds.NewValidator().ValidateRegistry(registry)
		if result.HasErrors() || result.HasWarnings() {
			fmt.Fprintln(out, result.String())
		}
		if result.HasErrors() {
			return fmt.Errorf("invalid keybindings in %s", config.KeybindsFile)
		}
		fmt.Fprintln(out, "Keybindings OK")
		return nil
	}

	for _, section := range []keybinds.Context{
		keybinds.ContextEditor, keybinds.ContextSelector, keybinds.ContextDialog,
		keybinds.ContextConfirm, keybinds.ContextJournal, keybinds.ContextHelp,
	} {
		fmt.Fprintf(out, "[%s]\n", section)
		for _, b := range registry.ListBindings(section) {
			if b.Context != section {
				continue
			}
			fmt.Fprintf(out, "  %-14s %s\n", b.Key, b.Action)
		}
	}
	return nil
}
