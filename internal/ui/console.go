// Package ui holds the ANSI console helpers for the command-line
// frontend.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/ergohunt/ergohunt/pkg/estimator"
	"github.com/ergohunt/ergohunt/pkg/processor"
	"github.com/ergohunt/ergohunt/pkg/progress"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorPurple = "\033[35m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
)

// PrintSearchInfo displays the search configuration before the hunt
// starts.
func PrintSearchInfo(patterns []string, matchStart, matchEnd, caseSensitive bool, wordCount, numResults int) {
	mode := "anywhere in"
	if matchStart {
		mode = "at the start of"
	} else if matchEnd {
		mode = "at the end of"
	}
	caseLabel := "case-insensitive"
	if caseSensitive {
		caseLabel = "case-sensitive"
	}
	wordLabel := "mixed 12/15/24-word"
	if wordCount != 0 {
		wordLabel = fmt.Sprintf("%d-word", wordCount)
	}

	fmt.Printf("\n%s🚀 SEARCHING%s %s addresses for %s%s%s (%s)\n",
		ColorGreen+ColorBold, ColorReset,
		mode, ColorCyan+ColorBold, strings.Join(patterns, ", "), ColorReset, caseLabel)
	fmt.Printf("%sLooking for %d result(s) using %s seed phrases%s\n\n",
		ColorDim, numResults, wordLabel, ColorReset)
}

// PrintEstimate displays the difficulty estimate for one pattern.
func PrintEstimate(e estimator.Estimate) {
	fmt.Printf("\nPattern: %s%q%s\n", ColorBold, e.Pattern, ColorReset)
	if e.Impossible() {
		fmt.Printf("%sWARNING: pattern contains invalid Base58 characters: %s%s\n",
			ColorRed, string(e.InvalidChars), ColorReset)
		fmt.Println("Valid characters: 123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz")
		fmt.Println("This pattern is IMPOSSIBLE to find in a valid Ergo address.")
		return
	}
	fmt.Printf("Estimated attempts needed: %.0f\n", e.AttemptsNeeded)
	fmt.Println("Estimated time to find:")
	fmt.Printf("  At %.0f addr/s: %s\n", estimator.MinSpeed, estimator.FormatTime(e.TimeAtMin))
	fmt.Printf("  At %.0f addr/s: %s\n", estimator.MaxSpeed, estimator.FormatTime(e.TimeAtMax))
}

// PrintStatus renders the in-place progress line fed by the processor's
// progress callback.
func PrintStatus(seeds, addresses uint64, seedRate, addrRate float64) {
	fmt.Printf("\r%s⛏%s  %s seeds %s(%s)%s │ %s addresses %s(%s)%s   ",
		ColorCyan, ColorReset,
		FormatNumber(seeds), ColorDim, FormatRate(seedRate), ColorReset,
		FormatNumber(addresses), ColorDim, FormatRate(addrRate), ColorReset)
}

// PrintMatch displays one accepted match.
func PrintMatch(n int, r processor.MatchResult) {
	fmt.Printf("\n%s%s✨ MATCH %d%s matched pattern %s%q%s\n",
		ColorGreen, ColorBold, n, ColorReset, ColorCyan, r.Pattern, ColorReset)
	fmt.Printf("   Address:  %s%s%s\n", ColorGreen+ColorBold, r.Address, ColorReset)
	fmt.Printf("   Position: %d\n", r.Index)
	fmt.Printf("   Seed phrase (%d-word):\n   %s%s%s\n", r.WordCount, ColorYellow, r.Mnemonic, ColorReset)
	fmt.Printf("%s⚠  Keep your seed phrase secret!%s\n", ColorRed, ColorReset)
}

// PrintStats displays the final performance summary.
func PrintStats(stats progress.Stats, elapsed time.Duration) {
	fmt.Printf("\n%sPerformance statistics:%s\n", ColorBold, ColorReset)
	fmt.Printf("- Using %d threads\n", stats.Threads)
	fmt.Printf("- Checked %s seeds (%s)\n", FormatNumber(stats.Seeds), FormatRate(stats.SeedRate))
	fmt.Printf("- Checked %s addresses (%s)\n", FormatNumber(stats.Addresses), FormatRate(stats.AddressRate))
	fmt.Printf("- Elapsed: %s\n", FormatDuration(elapsed))
}

// ClearLine clears the in-place status line.
func ClearLine() {
	fmt.Print("\r" + strings.Repeat(" ", 100) + "\r")
}

// FormatRate formats an events-per-second rate.
func FormatRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumber adds commas to large numbers.
func FormatNumber(n uint64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	s := fmt.Sprintf("%d", n)
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatDuration formats a duration in a human-readable way.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
