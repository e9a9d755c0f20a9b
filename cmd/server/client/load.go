package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/KirkDiggler/pokedex-api/internal/handlers/pokedex/v1alpha1"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the catalog and print it",
	Long:  `Load fetches the first generation roster and every detail record, then prints the grid.`,
	Args:  cobra.NoArgs,
	RunE:  runLoad,
}

func runLoad(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createCatalogClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fmt.Println("Loading catalog...")

	resp, err := client.LoadCatalog(ctx, &emptypb.Empty{})
	if err != nil {
		return callError("load catalog", err)
	}

	view, err := v1alpha1.DecodeSession(resp)
	if err != nil {
		return err
	}

	return renderSession(os.Stdout, view)
}
