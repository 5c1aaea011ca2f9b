package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"civictrack/geocode"
	"civictrack/service"
	"civictrack/worker"

	"github.com/spf13/cobra"
)

func (a *app) mapCmd() *cobra.Command {
	var (
		geocoderURL string
		interval    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Geocode complaint locations and list map pins",
		Long: `Resolve each complaint location with OpenStreetMap Nominatim.

Requests are sent one at a time, at least one second apart. Locations that
cannot be resolved are pinned near the centre of India.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session("")
			if err != nil {
				return err
			}
			complaints, err := a.complaintsFor(cmd.Context(), sess)
			if err != nil {
				return describe(err)
			}
			summary := service.SummarizeForMap(complaints)

			seq := geocode.NewSequencer(geocode.NewNominatim(geocoderURL, nil), interval)
			w := worker.NewMapWorker(seq)
			w.Start()
			defer w.Stop()
			if _, err := w.Load(complaints); err != nil {
				return err
			}
			if summary.WithAddress > 1 {
				fmt.Fprintf(os.Stderr, "Geocoding %d locations, about %s...\n",
					summary.WithAddress, (time.Duration(summary.WithAddress-1) * seq.Interval()).Round(time.Second))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			snap, err := w.Wait(ctx)
			if err != nil {
				return fmt.Errorf("geocoding interrupted: %w", err)
			}

			if a.jsonOut {
				return a.printJSON(struct {
					Summary service.MapSummary `json:"summary"`
					worker.Snapshot
				}{summary, snap})
			}
			fmt.Fprintf(a.out, "Total: %d  Resolved: %d  Active: %d\n", summary.Total, summary.Resolved, summary.Active)
			fmt.Fprintf(a.out, "%d of %d pinned\n\n", len(snap.Pins), snap.Located)
			if len(snap.Pins) == 0 {
				return nil
			}
			tw := newTable(a.out)
			fmt.Fprintln(tw, "ID\tSTATUS\tLAT\tLNG\tLOCATION")
			for _, p := range snap.Pins {
				loc := p.Location
				if p.Fallback {
					loc += " (approximate)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%s\n", p.ComplaintID, p.Status, p.Coords.Lat, p.Coords.Lng, loc)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&geocoderURL, "geocoder", a.cfg.Geocode.URL, "Nominatim base URL")
	cmd.Flags().DurationVar(&interval, "interval", a.cfg.Geocode.Interval, "Spacing between geocoding requests (minimum 1s)")
	return cmd
}

