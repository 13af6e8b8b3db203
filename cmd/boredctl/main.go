package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/boredclicker/bored"
	"github.com/boredclicker/bored/catalog"
	"github.com/boredclicker/bored/inmem"
	"github.com/boredclicker/bored/transport/rest"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var catalogFile string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "boredctl",
		Short: "Query and check activity catalogs offline",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "catalog file (json or yaml), embedded catalog when empty")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newResolveCmd(&catalogFile), newCheckCmd(), newTypesCmd())
	return rootCmd
}

func newResolveCmd(catalogFile *string) *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "resolve [name=value]...",
		Short: "Resolve activity for given query parameters",
		Long: `Runs the same resolution as GET /api/activity and prints the response body.

Example:
  boredctl resolve type=music participants=1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args)
			if err != nil {
				return err
			}
			activities, err := loadCatalog(*catalogFile)
			if err != nil {
				return err
			}
			store, err := inmem.NewActivityStore(activities)
			if err != nil {
				return err
			}
			selector := bored.NewRandomSelector(nil)
			if seed != 0 {
				selector = bored.NewSeededSelector(seed)
			}
			resolver := &bored.Resolver{Store: store, Selector: selector}

			outcome, err := resolver.Resolve(cmd.Context(), params)
			if err != nil {
				return err
			}
			logrus.WithField("outcome", outcome.Kind).WithError(outcome.Cause).Debugln("Resolved.")
			return writeOutcome(cmd.OutOrStdout(), outcome)
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed, entropy when 0")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate catalog files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				activities, err := catalog.LoadFile(path)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s: %d activities\n", path, len(activities))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d catalogs invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List activity types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range bored.Types() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
		},
	}
}

func loadCatalog(path string) ([]bored.Activity, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

// parseParams reads name=value pairs. First non-empty value of repeated name
// wins the same way it does for query strings.
func parseParams(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected name=value", arg)
		}
		if params[name] == "" {
			params[name] = value
		}
	}
	return params, nil
}

func writeOutcome(w io.Writer, outcome bored.Outcome) error {
	var body interface{}
	if outcome.Kind == bored.OutcomeFound {
		body = rest.NewActivityBody(outcome.Activity)
	} else {
		_, message := rest.OutcomeStatus(outcome.Kind)
		body = rest.ErrorResponse{Error: message}
	}
	bytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}
	_, err = fmt.Fprintln(w, string(bytes))
	return err
}

func run(args []string, out io.Writer) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	return rootCmd.Execute()
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		os.Exit(1)
	}
}
