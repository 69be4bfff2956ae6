package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sockomode/symrel/ast"
	"github.com/sockomode/symrel/config"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "symrel",
		Short:         "Answer reachability queries over a graph encoded as Boolean functions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "query QUERY...",
			Short: "Evaluate point queries such as EVEN(14) or RR2(27,6)",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runQuery(cmd, opts, args)
			},
		},
		&cobra.Command{
			Use:   "closure",
			Short: "Square the edge relation until it no longer changes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runClosure(cmd, opts)
			},
		},
		&cobra.Command{
			Use:   "check FROM TO",
			Short: "Check that every node of FROM reaches a node of TO through RR2star",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCheck(cmd, opts, args[0], args[1])
			},
		},
	)

	return rootCmd
}

// Execute starts the program.
func Execute() error {
	return newRootCmd().Execute()
}

func setup(cmd *cobra.Command, opts *options) (*registry, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to load the configuration: %w", err)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return newRegistry(cfg, logger)
}

func runQuery(cmd *cobra.Command, opts *options, args []string) error {
	queries, err := ast.ParseQueries(strings.NewReader(strings.Join(args, " ")))
	if err != nil {
		return fmt.Errorf("unable to parse the queries: %w", err)
	}

	reg, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	for _, q := range queries {
		got, err := reg.eval(q)
		if err != nil {
			return fmt.Errorf("%s: %w", formatQuery(q), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", formatQuery(q), got)
	}
	return nil
}

func (r *registry) eval(q *ast.Query) (bool, error) {
	switch len(q.Args) {
	case 1:
		s, err := r.set(q.Name)
		if err != nil {
			return false, err
		}
		return r.engine.NodeInSet(s, q.Args[0])
	case 2:
		rel, err := r.relation(q.Name)
		if err != nil {
			return false, err
		}
		return r.engine.EdgeInRelation(rel, q.Args[0], q.Args[1])
	}
	return false, fmt.Errorf("expected one or two arguments, got %d", len(q.Args))
}

func formatQuery(q *ast.Query) string {
	args := make([]string, len(q.Args))
	for i, a := range q.Args {
		args[i] = strconv.Itoa(a)
	}
	return fmt.Sprintf("%s(%s)", q.Name, strings.Join(args, ","))
}

func runClosure(cmd *cobra.Command, opts *options) error {
	reg, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	rr, err := reg.relation(relationEdges)
	if err != nil {
		return err
	}
	f, squarings, err := reg.engine.Fixpoint(rr)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "edges: %v\n", reg.engine.Count(rr))
	fmt.Fprintf(out, "squarings: %d\n", squarings)
	fmt.Fprintf(out, "pairs: %v\n", reg.engine.Count(f))
	return nil
}

func runCheck(cmd *cobra.Command, opts *options, from, to string) error {
	reg, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	fromSet, err := reg.set(from)
	if err != nil {
		return err
	}
	toSet, err := reg.set(to)
	if err != nil {
		return err
	}
	star, err := reg.relation(relationClosure)
	if err != nil {
		return err
	}

	holds, err := reg.engine.EveryReaches(fromSet, toSet, star)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "every %s reaches %s: %v\n", from, to, holds)
	return nil
}

// Main runs the program and exits with a non-zero status on failure.
func Main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "symrel: %v\n", err)
		os.Exit(1)
	}
}
