package client

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/KirkDiggler/pokedex-api/internal/handlers/pokedex/v1alpha1"
)

var showCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Print a display session",
	Long:  `Show prints a session in its current state: loading, the catalog grid, or the error.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(_ *cobra.Command, args []string) error {
	client, cleanup, err := createCatalogClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetCatalog(ctx, wrapperspb.String(args[0]))
	if err != nil {
		return callError("get session", err)
	}

	view, err := v1alpha1.DecodeSession(resp)
	if err != nil {
		return err
	}

	return renderSession(os.Stdout, view)
}
