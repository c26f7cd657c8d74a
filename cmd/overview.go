package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/askilde/dispatchdesk/config"
	"github.com/askilde/dispatchdesk/core/dispatch"
	"github.com/askilde/dispatchdesk/core/model"
	"github.com/askilde/dispatchdesk/infra/backend"
	"github.com/askilde/dispatchdesk/infra/logger"
)

var (
	overviewState string
	overviewFrom  string
	overviewTo    string
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Fetch the dispatch overview for a state",
	RunE:  runOverview,
}

func init() {
	overviewCmd.Flags().StringVar(&overviewState, "state", "unassignedRoute", "dispatch state (forecast, prebooking, unassignedRoute, assignedRoute)")
	overviewCmd.Flags().StringVar(&overviewFrom, "from", "", "start date (2006-01-02)")
	overviewCmd.Flags().StringVar(&overviewTo, "to", "", "end date (2006-01-02)")
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	state, err := model.ParseState(overviewState)
	if err != nil {
		return err
	}
	filters, err := overviewFilters()
	if err != nil {
		return err
	}

	client := backend.New(cfg.Backend)
	overview := dispatch.NewOverview(client, nil, nil, logger.New("overview-command"))

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	res := overview.Fetch(ctx, state, filters)

	fmt.Printf("state: %s\n", res.State)
	fmt.Printf("fulfillees: %d\n", len(res.Fulfillees))
	for _, f := range res.Fulfillees {
		fmt.Printf("  %s  %s\n", f.ID, f.Name)
	}
	switch state {
	case model.StateForecast:
		fmt.Printf("forecasts: %d\n", len(res.Forecasts))
		for _, fc := range res.Forecasts {
			fmt.Printf("  %s  %s %s-%s  slots %d/%d\n", fc.ID, fc.Date.Format("2006-01-02"), fc.StartTime, fc.EndTime, fc.Slots.Assigned, fc.Slots.Total)
		}
	case model.StatePrebooking:
		fmt.Printf("drivers: %d\n", len(res.Drivers))
		fmt.Printf("prebookings: %d\n", len(res.Prebookings))
		for _, p := range res.Prebookings {
			fmt.Printf("  %s  driver %s\n", p.ID, p.Driver.Name.Full())
		}
	default:
		fmt.Printf("routes: %d\n", len(res.Routes))
		for _, r := range res.Routes {
			driver := "-"
			if r.Driver != nil {
				driver = r.Driver.Name.Full()
			}
			fmt.Printf("  %s  %s  %s\n", r.ID, r.Slug, driver)
		}
	}
	return nil
}

func overviewFilters() (dispatch.Filters, error) {
	var f dispatch.Filters
	if overviewFrom != "" {
		t, err := time.Parse("2006-01-02", overviewFrom)
		if err != nil {
			return f, fmt.Errorf("invalid --from: %w", err)
		}
		f.StartDate = t
	}
	if overviewTo != "" {
		t, err := time.Parse("2006-01-02", overviewTo)
		if err != nil {
			return f, fmt.Errorf("invalid --to: %w", err)
		}
		f.EndDate = t
	}
	return f, nil
}
