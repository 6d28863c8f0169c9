// Command ergohunt searches random seed phrases for Ergo vanity
// addresses matching user-supplied patterns.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ergohunt/ergohunt/internal/paperwallet"
	"github.com/ergohunt/ergohunt/internal/ui"
	"github.com/ergohunt/ergohunt/pkg/accel"
	"github.com/ergohunt/ergohunt/pkg/ergo"
	"github.com/ergohunt/ergohunt/pkg/estimator"
	"github.com/ergohunt/ergohunt/pkg/matcher"
	"github.com/ergohunt/ergohunt/pkg/processor"
)

type options struct {
	patterns         []string
	matchStart       bool
	matchEnd         bool
	matchCase        bool
	numResults       int
	balanced         bool
	wordCount        int
	addressesPerSeed int
	estimateOnly     bool
	paperWalletDir   string
	verbose          bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "ergohunt",
		Short:         "Generate vanity Ergo addresses",
		Long:          "ergohunt brute-forces random BIP-39 seed phrases until one derives an Ergo P2PK address matching your pattern.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.patterns, "pattern", "p", nil, "pattern to look for in addresses (repeatable)")
	cmd.Flags().BoolVarP(&opts.matchStart, "start", "s", false, "match at the start of the address body (pattern must start with e, f, g, h or i)")
	cmd.Flags().BoolVarP(&opts.matchEnd, "end", "e", false, "match at the end of the address")
	cmd.Flags().BoolVarP(&opts.matchCase, "match-case", "m", false, "match patterns case-sensitively")
	cmd.Flags().IntVarP(&opts.numResults, "count", "n", 1, "number of matches to find")
	cmd.Flags().BoolVar(&opts.balanced, "balanced", false, "spread matches across patterns instead of filling greedily")
	cmd.Flags().IntVarP(&opts.wordCount, "words", "w", 24, "seed phrase word count: 12, 15, 24 or 0 for mixed")
	cmd.Flags().IntVarP(&opts.addressesPerSeed, "addresses", "a", 1, "addresses to derive and check per seed phrase")
	cmd.Flags().BoolVar(&opts.estimateOnly, "estimate", false, "print difficulty estimates and exit")
	cmd.Flags().StringVar(&opts.paperWalletDir, "paper-wallet", "", "write a printable paper wallet per match into this directory")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.MarkFlagsMutuallyExclusive("start", "end")

	return cmd
}

func run(opts *options) error {
	logger := newLogger(opts.verbose)

	m := matcher.New(opts.patterns, opts.matchCase, opts.matchStart, opts.matchEnd)
	if err := m.Validate(); err != nil {
		return err
	}
	if opts.numResults < 1 {
		return fmt.Errorf("count must be at least 1, got %d", opts.numResults)
	}
	switch opts.wordCount {
	case 0, 12, 15, 24:
	default:
		return fmt.Errorf("words must be 12, 15, 24 or 0 for mixed, got %d", opts.wordCount)
	}

	fmt.Println("Difficulty estimation")
	fmt.Println("=====================")
	for _, p := range opts.patterns {
		ui.PrintEstimate(estimator.ForPattern(p, opts.matchStart))
	}
	if opts.estimateOnly {
		return nil
	}

	oracle := accel.Detect()
	logger.Debug("hardware acceleration hints",
		"features", oracle.Features(),
		"batch_width", oracle.OptimalBatchWidth(),
		"batch_count", oracle.OptimalBatchCount())

	proc := processor.New(ergo.NewMnemonic(), ergo.NewDeriver(), oracle,
		processor.WithLogger(logger))
	proc.SetProgressCallback(ui.PrintStatus)

	// Cancel cooperatively on Ctrl-C; a partial result set is a valid
	// outcome.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		ui.ClearLine()
		proc.Cancel()
	}()
	defer signal.Stop(sigCh)

	ui.PrintSearchInfo(opts.patterns, opts.matchStart, opts.matchEnd, opts.matchCase,
		opts.wordCount, opts.numResults)

	start := time.Now()
	results, err := proc.FindMatches(m, opts.wordCount, opts.numResults,
		opts.balanced, opts.addressesPerSeed)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	ui.ClearLine()
	for i, r := range results {
		ui.PrintMatch(i+1, r)
	}
	if len(results) < opts.numResults {
		fmt.Printf("\nSearch stopped with %d of %d matches.\n", len(results), opts.numResults)
	}
	ui.PrintStats(proc.Stats(), elapsed)

	if opts.paperWalletDir != "" {
		if err := writePaperWallets(opts.paperWalletDir, results); err != nil {
			return err
		}
	}
	return nil
}

func writePaperWallets(dir string, results []processor.MatchResult) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating paper wallet directory: %w", err)
	}
	for i, r := range results {
		path := filepath.Join(dir, fmt.Sprintf("wallet-%d.html", i+1))
		err := paperwallet.WriteFile(path, paperwallet.Info{
			Address:   r.Address,
			Mnemonic:  r.Mnemonic,
			WordCount: r.WordCount,
			Index:     r.Index,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Paper wallet written to %s\n", path)
	}
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
