package catalog_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	pokeapimock "github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi/mock"
	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/metrics"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog"
	"github.com/KirkDiggler/pokedex-api/internal/testutils"
)

type AggregatorTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestAggregatorTestSuite(t *testing.T) {
	suite.Run(t, new(AggregatorTestSuite))
}

func (s *AggregatorTestSuite) SetupTest() {
	s.ctx = context.Background()
}

// newAggregator wires an aggregator to a fake PokeAPI and returns the roster
// it serves
func (s *AggregatorTestSuite) newAggregator(pokemon ...testutils.FakePokemon) (*catalog.Aggregator, *testutils.FakePokeAPI, []*entities.RosterEntry) {
	api := testutils.NewFakePokeAPI(s.T(), pokemon...)
	client, err := pokeapi.New(&pokeapi.Config{BaseURL: api.URL})
	s.Require().NoError(err)

	roster, err := client.ListPokemon(s.ctx, catalog.FirstGenerationLimit)
	s.Require().NoError(err)
	s.Require().Len(roster, len(pokemon))

	return catalog.NewAggregator(client, nil), api, roster
}

func (s *AggregatorTestSuite) TestBulbasaur() {
	aggregator, _, roster := s.newAggregator(testutils.Bulbasaur())

	result := aggregator.Aggregate(s.ctx, roster)

	s.Require().True(result.IsReady())
	s.Equal([]*entities.Pokemon{{
		Name:      "bulbasaur",
		ImageURL:  "img.png",
		Types:     []string{"grass", "poison"},
		Abilities: []string{"overgrow"},
		Stats:     []entities.Stat{{Name: "hp", Value: 45}},
	}}, result.Pokemon)
	s.NoError(result.Err())
}

func (s *AggregatorTestSuite) TestKeepsRosterOrderWhenResponsesArriveOutOfOrder() {
	slow := testutils.Bulbasaur()
	slow.Delay = 150 * time.Millisecond
	medium := testutils.FakePokemon{Name: "ivysaur", Types: []string{"grass"}, Abilities: []string{}, Stats: []testutils.FakeStat{}, Delay: 50 * time.Millisecond}
	fast := testutils.FakePokemon{Name: "venusaur", Types: []string{"grass"}, Abilities: []string{}, Stats: []testutils.FakeStat{}}

	aggregator, _, roster := s.newAggregator(slow, medium, fast)

	result := aggregator.Aggregate(s.ctx, roster)

	s.Require().True(result.IsReady())
	s.Require().Len(result.Pokemon, len(roster))
	for i, entry := range roster {
		s.Equal(entry.Name, result.Pokemon[i].Name, "position %d", i)
	}
}

func (s *AggregatorTestSuite) TestOneFailedDetailFailsTheWholeLoad() {
	broken := testutils.FakePokemon{Name: "ivysaur", Status: http.StatusInternalServerError}
	aggregator, _, roster := s.newAggregator(testutils.Bulbasaur(), broken, testutils.Bulbasaur())

	result := aggregator.Aggregate(s.ctx, roster)

	s.False(result.IsReady())
	s.Equal(entities.AggregationFailed, result.Status)
	s.Empty(result.Pokemon)
	s.Equal(errors.CodeNetwork, result.ErrorCode)
	s.Contains(result.Reason, "ivysaur")
	s.True(errors.IsNetwork(result.Err()))
}

func (s *AggregatorTestSuite) TestMalformedDetailFailsTheWholeLoad() {
	// Types must be present for every record
	noTypes := testutils.FakePokemon{Name: "mew", Abilities: []string{"synchronize"}, Stats: []testutils.FakeStat{}}
	aggregator, _, roster := s.newAggregator(testutils.Bulbasaur(), noTypes)

	result := aggregator.Aggregate(s.ctx, roster)

	s.False(result.IsReady())
	s.Empty(result.Pokemon)
	s.Equal(errors.CodeMalformedResponse, result.ErrorCode)
}

func (s *AggregatorTestSuite) TestNullSpriteIsNotAnError() {
	pokemon := testutils.Bulbasaur()
	pokemon.Sprite = nil
	aggregator, _, roster := s.newAggregator(pokemon)

	result := aggregator.Aggregate(s.ctx, roster)

	s.Require().True(result.IsReady())
	s.Equal("", result.Pokemon[0].ImageURL)
}

func (s *AggregatorTestSuite) TestEmptyRoster() {
	aggregator := catalog.NewAggregator(nil, nil)

	result := aggregator.Aggregate(s.ctx, nil)

	s.Require().True(result.IsReady())
	s.NotNil(result.Pokemon)
	s.Empty(result.Pokemon)
}

func (s *AggregatorTestSuite) TestNilEntryIsRejected() {
	aggregator := catalog.NewAggregator(nil, nil)

	result := aggregator.Aggregate(s.ctx, []*entities.RosterEntry{nil})

	s.False(result.IsReady())
	s.Equal(errors.CodeInvalidArgument, result.ErrorCode)
}

func (s *AggregatorTestSuite) TestFirstFailureCancelsInFlightRequests() {
	ctrl := gomock.NewController(s.T())
	client := pokeapimock.NewMockClient(ctrl)

	roster := []*entities.RosterEntry{
		{Name: "bulbasaur", DetailRef: "https://pokeapi.test/pokemon/1/"},
		{Name: "ivysaur", DetailRef: "https://pokeapi.test/pokemon/2/"},
	}

	client.EXPECT().
		GetPokemon(gomock.Any(), roster[0].DetailRef).
		Return(nil, errors.Network("connection refused"))

	client.EXPECT().
		GetPokemon(gomock.Any(), roster[1].DetailRef).
		DoAndReturn(func(ctx context.Context, _ string) (*pokeapi.PokemonDetail, error) {
			select {
			case <-ctx.Done():
				return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "request canceled")
			case <-time.After(5 * time.Second):
				return &pokeapi.PokemonDetail{}, nil
			}
		})

	start := time.Now()
	result := catalog.NewAggregator(client, nil).Aggregate(s.ctx, roster)

	s.Less(time.Since(start), 5*time.Second)
	s.False(result.IsReady())
	s.Empty(result.Pokemon)
	s.Equal(errors.CodeNetwork, result.ErrorCode)
	s.Contains(result.Reason, "bulbasaur")
}

func (s *AggregatorTestSuite) TestParentCancellationFailsTheLoad() {
	ctrl := gomock.NewController(s.T())
	client := pokeapimock.NewMockClient(ctrl)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	client.EXPECT().
		GetPokemon(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (*pokeapi.PokemonDetail, error) {
			return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "request canceled")
		})

	roster := []*entities.RosterEntry{{Name: "mew", DetailRef: "https://pokeapi.test/pokemon/151/"}}
	result := catalog.NewAggregator(client, nil).Aggregate(ctx, roster)

	s.False(result.IsReady())
	s.Equal(errors.CodeCanceled, result.ErrorCode)
}

func (s *AggregatorTestSuite) TestCancelledSiblingsAreNotCountedAsNetworkFailures() {
	broken := testutils.FakePokemon{Name: "ivysaur", Status: http.StatusInternalServerError}
	slow := testutils.Bulbasaur()
	slow.Delay = 5 * time.Second

	api := testutils.NewFakePokeAPI(s.T(), broken, slow)
	client, err := pokeapi.New(&pokeapi.Config{BaseURL: api.URL})
	s.Require().NoError(err)
	roster, err := client.ListPokemon(s.ctx, catalog.FirstGenerationLimit)
	s.Require().NoError(err)

	registry := prometheus.NewRegistry()
	result := catalog.NewAggregator(client, metrics.New(registry)).Aggregate(s.ctx, roster)

	s.Equal(errors.CodeNetwork, result.ErrorCode)
	s.NoError(testutil.GatherAndCompare(registry, strings.NewReader(`
# HELP pokedex_catalog_detail_requests_total Detail record requests by outcome.
# TYPE pokedex_catalog_detail_requests_total counter
pokedex_catalog_detail_requests_total{outcome="canceled"} 1
pokedex_catalog_detail_requests_total{outcome="network"} 1
`), "pokedex_catalog_detail_requests_total"))
}
