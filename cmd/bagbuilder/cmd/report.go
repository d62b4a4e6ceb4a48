package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"bagbuilder-go/internal/analytics"
	"bagbuilder-go/internal/format"
	"bagbuilder-go/internal/models"
	"bagbuilder-go/internal/tracker"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the portfolio summary and active warnings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(); err != nil {
			return err
		}
		a, err := loadApp()
		if err != nil {
			return err
		}
		d, err := a.Tracker.Dashboard(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("load dashboard: %w", err)
		}
		return renderDashboard(cmd.OutOrStdout(), d)
	},
}

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List trades, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(); err != nil {
			return err
		}
		a, err := loadApp()
		if err != nil {
			return err
		}
		trades, err := a.Tracker.Trades(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("list trades: %w", err)
		}
		return renderTrades(cmd.OutOrStdout(), trades)
	},
}

var warningsCmd = &cobra.Command{
	Use:   "warnings",
	Short: "List the rules currently being broken",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(); err != nil {
			return err
		}
		a, err := loadApp()
		if err != nil {
			return err
		}
		ws, err := a.Tracker.Warnings(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("evaluate rules: %w", err)
		}
		renderWarnings(cmd.OutOrStdout(), ws)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{summaryCmd, tradesCmd, warningsCmd} {
		rootCmd.AddCommand(c)
		addUserFlag(c)
	}
}

func renderDashboard(out io.Writer, d *tracker.Dashboard) error {
	s := d.Summary
	name := d.Name
	if name == "" {
		name = "(not onboarded)"
	}
	fmt.Fprintf(out, "%s · %s\n\n", name, d.ProfileLabel)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Portfolio\t%s\n", format.USD(s.TotalPortfolio))
	fmt.Fprintf(w, "Net worth\t%s\n", format.USD(s.NetWorth))
	fmt.Fprintf(w, "Total PnL\t%s\n", format.USD(s.TotalPnL))
	fmt.Fprintf(w, "ROI\t%s\n", format.Pct(s.ROI))
	fmt.Fprintf(w, "Win rate\t%s (%dW / %dL)\n", format.WholePct(s.WinRate), s.Wins, s.Losses)
	fmt.Fprintf(w, "Streak\t%s\n", format.Streak(s.Streak))
	fmt.Fprintf(w, "Open positions\t%d (%s)\n", s.OpenCount, format.USD(s.OpenValue))
	fmt.Fprintf(w, "Emergency fund\t%s (%s of target)\n", format.USD(s.EmergencyFund), format.WholePct(s.EmergencyProgress))
	if s.Best != nil {
		fmt.Fprintf(w, "Best\t%s %s\n", s.Best.Coin, format.USD(*s.Best.PnLUSD))
	}
	if s.Worst != nil {
		fmt.Fprintf(w, "Worst\t%s %s\n", s.Worst.Coin, format.USD(*s.Worst.PnLUSD))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(d.TopNarratives) > 0 {
		fmt.Fprintln(out, "\nTop narratives")
		for _, n := range d.TopNarratives {
			fmt.Fprintf(out, "  %s: %s over %d trades, %s WR\n", n.Name, format.USD(n.PnL), n.Trades, format.WholePct(n.WinRate))
		}
	}
	if len(d.Warnings) > 0 {
		fmt.Fprintln(out)
		renderWarnings(out, d.Warnings)
	}
	return nil
}

func renderTrades(out io.Writer, trades []models.Trade) error {
	if len(trades) == 0 {
		fmt.Fprintln(out, "No trades logged yet.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tCOIN\tTYPE\tSIZE\tSTATUS\tPNL")
	for _, t := range trades {
		kind := string(t.Type)
		if t.Type == models.TradeTypeFutures {
			kind = fmt.Sprintf("%s %dx", t.Type, t.Leverage)
		}
		pnl := "-"
		if t.PnLPct != nil && t.PnLUSD != nil {
			pnl = fmt.Sprintf("%s (%s)", format.USD(*t.PnLUSD), format.Pct(*t.PnLPct))
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Date, t.Coin, kind, format.USD(t.Size), t.Status, pnl)
	}
	return w.Flush()
}

func renderWarnings(out io.Writer, ws []analytics.Warning) {
	if len(ws) == 0 {
		fmt.Fprintln(out, "No rules broken.")
		return
	}
	for _, w := range ws {
		fmt.Fprintf(out, "! %s\n", w.Message)
	}
}
