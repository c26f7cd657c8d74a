package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/askilde/dispatchdesk/config"
	"github.com/askilde/dispatchdesk/core/dispatch"
	"github.com/askilde/dispatchdesk/core/model"
	"github.com/askilde/dispatchdesk/infra/backend"
	"github.com/askilde/dispatchdesk/infra/history"
	"github.com/askilde/dispatchdesk/infra/logger"
)

var assignPairs []string

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Submit route to driver pairings",
	RunE:  runAssign,
}

func init() {
	assignCmd.Flags().StringArrayVar(&assignPairs, "pair", nil, "routeID=driverID pairing, repeatable")
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	if len(assignPairs) == 0 {
		return fmt.Errorf("at least one --pair is required")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	journal, err := history.NewJSONLStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("history store: %w", err)
	}
	defer func() { _ = journal.Close() }()

	client := backend.New(cfg.Backend)
	session := dispatch.NewSession(client, nil, journal, nil, logger.New("assign-command"))
	for _, pair := range assignPairs {
		routeID, driverID, ok := strings.Cut(pair, "=")
		if !ok || routeID == "" || driverID == "" {
			return fmt.Errorf("invalid --pair %q, expected routeID=driverID", pair)
		}
		session.AddPairing(model.Route{ID: routeID}, model.Driver{ID: driverID})
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	res, err := session.Submit(ctx)
	if err != nil {
		return err
	}
	for _, o := range res.Outcomes {
		status := "failed"
		if o.IsAssigned {
			status = "assigned"
		}
		fmt.Printf("%s -> %s: %s\n", o.RouteID, o.DriverID, status)
	}
	fmt.Printf("assigned %d, failed %d\n", res.Assigned, res.Failed)
	return nil
}
