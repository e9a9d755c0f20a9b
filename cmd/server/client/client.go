// Package client provides commands that drive the catalog gRPC service
package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/pokedex/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the Pokedex API",
	Long:  `Client commands load and display the catalog by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Request timeout")

	ClientCmd.AddCommand(loadCmd)
	ClientCmd.AddCommand(startCmd)
	ClientCmd.AddCommand(showCmd)
}

// createCatalogClient creates a catalog service client
func createCatalogClient() (v1alpha1.CatalogServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewCatalogServiceClient(conn), cleanup, nil
}

// callError turns a failed RPC into a one-line message naming the status code
func callError(action string, err error) error {
	converted := errors.FromGRPCError(err)
	return fmt.Errorf("failed to %s (%s): %s", action, errors.GetCode(converted), errors.GetMessage(converted))
}
