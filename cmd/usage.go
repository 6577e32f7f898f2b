package cmd

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/atulsharma648-byte/ASMan/internal/llm"
	"github.com/atulsharma648-byte/ASMan/internal/store"
)

// printUsage writes lesson outcomes, token usage and estimated cost for
// everything this process sent to the provider.
func printUsage(ctx context.Context, w io.Writer, repo *store.SQLEventRepo) error {
	lessonStats, err := repo.LessonStats(ctx)
	if err != nil {
		return fmt.Errorf("query lesson stats: %w", err)
	}

	rule := strings.Repeat("─", 72)

	fmt.Fprintln(w, "Lessons")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-16s  %6d\n", "From provider", lessonStats.Provider)
	fmt.Fprintf(w, "%-16s  %6d\n", "Fallback", lessonStats.Fallback)
	for _, reason := range slices.Sorted(maps.Keys(lessonStats.ByReason)) {
		fmt.Fprintf(w, "  %-14s  %6d\n", reason, lessonStats.ByReason[reason])
	}

	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("query usage: %w", err)
	}
	if len(stats) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No LLM usage recorded.")
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-16s  %6s  %6s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Failed", "Input", "Output", "Avg Ms")
	fmt.Fprintln(w, rule)
	for _, st := range stats {
		fmt.Fprintf(w, "%-16s  %6d  %6d  %10d  %10d  %8d\n",
			st.Key, st.Calls, st.Failures, st.InputTokens, st.OutputTokens, st.AvgLatencyMs)
	}

	modelUsage, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("query model usage: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, rule)
	var total float64
	var unknown []string
	for _, mu := range modelUsage {
		cost, ok := llm.EstimateCost(mu.Key, mu.InputTokens, mu.OutputTokens)
		if !ok {
			unknown = append(unknown, mu.Key)
			fmt.Fprintf(w, "%-32s  %6d  %10s\n", truncate(mu.Key, 32), mu.Calls, "?")
			continue
		}
		total += cost
		fmt.Fprintf(w, "%-32s  %6d  %10s\n", truncate(mu.Key, 32), mu.Calls, formatCost(cost))
	}
	fmt.Fprintln(w, rule)
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s\n", label, "", formatCost(total))
	if len(unknown) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
