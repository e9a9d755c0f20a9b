package client

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/pokedex/v1alpha1"
)

var (
	wait         bool
	pollInterval time.Duration
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a background catalog load",
	Long: `Start creates a display session and returns its id at once. Examples:

  start
  start --wait --poll 250ms`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVar(&wait, "wait", false, "Poll until the session finishes and print it")
	startCmd.Flags().DurationVar(&pollInterval, "poll", 500*time.Millisecond, "Poll interval with --wait")
}

func runStart(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createCatalogClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.StartSession(ctx, &emptypb.Empty{})
	if err != nil {
		return callError("start session", err)
	}

	view, err := v1alpha1.DecodeSession(resp)
	if err != nil {
		return err
	}

	fmt.Printf("Session: %s\n", view.SessionID)
	if !wait {
		return nil
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for view.Status == string(entities.SessionPending) {
		select {
		case <-ctx.Done():
			return fmt.Errorf("session %s still loading: %w", view.SessionID, ctx.Err())
		case <-ticker.C:
		}

		resp, err := client.GetCatalog(ctx, wrapperspb.String(view.SessionID))
		if err != nil {
			return callError("get session", err)
		}
		if view, err = v1alpha1.DecodeSession(resp); err != nil {
			return err
		}
	}

	return renderSession(os.Stdout, view)
}
