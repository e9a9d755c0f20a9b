package v1alpha1

import (
	"encoding/json"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

// Session fields on the wire
const (
	FieldSessionID = "session_id"
	FieldStatus    = "status"
	FieldPokemon   = "pokemon"
	FieldErrorCode = "error_code"
	FieldReason    = "reason"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
	FieldExpiresAt = "expires_at"
)

// SessionView is the decoded form of a session struct, used by clients
type SessionView struct {
	SessionID string        `json:"session_id"`
	Status    string        `json:"status"`
	Pokemon   []PokemonView `json:"pokemon"`
	ErrorCode string        `json:"error_code"`
	Reason    string        `json:"reason"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// PokemonView is one grid entry
type PokemonView struct {
	Name      string     `json:"name"`
	ImageURL  string     `json:"image_url"`
	Types     []string   `json:"types"`
	Abilities []string   `json:"abilities"`
	Stats     []StatView `json:"stats"`
}

// StatView is a name/value pair
type StatView struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DecodeSession reads a session struct returned by CatalogService
func DecodeSession(s *structpb.Struct) (*SessionView, error) {
	if s == nil {
		return nil, errors.InvalidArgument("session struct is nil")
	}

	data, err := protojson.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode session struct")
	}

	var view SessionView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeMalformedResponse, "failed to decode session struct")
	}

	return &view, nil
}

func toSessionStruct(session *entities.CatalogSession) (*structpb.Struct, error) {
	if session == nil {
		return nil, errors.ToGRPCError(errors.Internal("session is nil"))
	}

	fields := map[string]interface{}{
		FieldSessionID: session.ID,
		FieldStatus:    string(session.Status),
		FieldCreatedAt: formatTime(session.CreatedAt),
		FieldUpdatedAt: formatTime(session.UpdatedAt),
		FieldExpiresAt: formatTime(session.ExpiresAt),
	}

	if result := session.Result; result != nil {
		if result.IsReady() {
			pokemon := make([]interface{}, len(result.Pokemon))
			for i, p := range result.Pokemon {
				pokemon[i] = pokemonFields(p)
			}
			fields[FieldPokemon] = pokemon
		} else {
			fields[FieldErrorCode] = result.ErrorCode.String()
			fields[FieldReason] = result.Reason
		}
	}

	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to build session struct"))
	}
	return out, nil
}

func pokemonFields(p *entities.Pokemon) map[string]interface{} {
	stats := make([]interface{}, len(p.Stats))
	for i, s := range p.Stats {
		stats[i] = map[string]interface{}{
			"name":  s.Name,
			"value": s.Value,
		}
	}

	return map[string]interface{}{
		"name":      p.Name,
		"image_url": p.ImageURL,
		"types":     stringList(p.Types),
		"abilities": stringList(p.Abilities),
		"stats":     stats,
	}
}

func stringList(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
