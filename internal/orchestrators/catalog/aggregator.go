package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/metrics"
)

// Aggregator loads the detail record of every roster entry concurrently and
// joins them all-or-nothing
type Aggregator struct {
	client  pokeapi.Client
	metrics *metrics.Recorder
}

// NewAggregator creates an aggregator. recorder may be nil.
func NewAggregator(client pokeapi.Client, recorder *metrics.Recorder) *Aggregator {
	return &Aggregator{
		client:  client,
		metrics: recorder,
	}
}

// Aggregate fetches one detail record per entry, all at once, and returns
// Ready with the pokemon in roster order, or Failed on the first error. The
// first failure cancels the requests still in flight.
func (a *Aggregator) Aggregate(ctx context.Context, roster []*entities.RosterEntry) *entities.AggregationResult {
	for i, entry := range roster {
		if entry == nil {
			return entities.Failed(errors.InvalidArgumentf("roster entry %d is nil", i))
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slog.Info("Loading full details for each pokemon concurrently", "count", len(roster))
	pokemon := make([]*entities.Pokemon, len(roster))
	errChan := make(chan error, len(roster))
	var wg sync.WaitGroup

	for i, entry := range roster {
		wg.Add(1)
		go func(idx int, entry *entities.RosterEntry) {
			defer wg.Done()

			start := time.Now()
			detail, err := a.client.GetPokemon(ctx, entry.DetailRef)
			a.metrics.ObserveDetailRequest(time.Since(start), err)
			if err != nil {
				if ctx.Err() == nil {
					slog.Error("Failed to get pokemon details", "pokemon", entry.Name, "error", err)
				}
				errChan <- errors.Wrapf(err, "failed to get pokemon %s", entry.Name)
				cancel()
				return
			}

			pokemon[idx] = ToPokemon(entry, detail)
			slog.Debug("Loaded pokemon details", "pokemon", entry.Name)
		}(i, entry)
	}

	wg.Wait()
	close(errChan)

	// The first failure sent wins; later ones are usually cancellations
	if err, ok := <-errChan; ok {
		return entities.Failed(err)
	}

	return entities.Ready(pokemon)
}
