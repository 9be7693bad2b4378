package main

import (
	"delivery-hub-service/internal/domain"
	"delivery-hub-service/internal/services"
	"fmt"
	"io"
	"text/tabwriter"
)

var headings = map[string]string{
	string(services.StrategyRoundTrip):     "One hub, out-and-back delivery to every place",
	string(services.StrategyChained):       "One hub, single tour through the places in file order",
	string(services.StrategyTwoHubNearest): "Two hubs, each place served by the nearer hub",
}

// printReport writes one block per scenario: evaluation count, hub
// coordinates and total miles.
func printReport(w io.Writer, results []domain.HubPlacement) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(tw)
		}

		heading, ok := headings[r.Strategy]
		if !ok {
			heading = r.Strategy
		}
		fmt.Fprintf(tw, "%s\n", heading)
		fmt.Fprintf(tw, "  Function evaluations:\t%d\n", r.Evaluations)
		for h, hub := range r.Hubs {
			fmt.Fprintf(tw, "  Hub %d latitude:\t%.6f\n", h+1, hub.Lat)
			fmt.Fprintf(tw, "  Hub %d longitude:\t%.6f\n", h+1, hub.Lon)
		}
		fmt.Fprintf(tw, "  Total distance:\t%.3f miles\n", r.TotalDistanceMiles)
		if !r.Converged {
			fmt.Fprintf(tw, "  Stopped at iteration limit:\t%d rounds\n", r.Iterations)
		}
	}

	return tw.Flush()
}
