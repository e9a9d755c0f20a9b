// Package errors provides structured errors for pokedex-api.
//
// Every error carries a Code, a user-facing Message, an optional Cause and
// optional metadata. Codes map onto gRPC status codes so handlers can return
// errors.ToGRPCError(err) directly.
//
// Two codes describe upstream failures of the PokeAPI client:
//
//	errors.Networkf("GET %s returned %d", url, code)     // NETWORK
//	errors.MalformedResponse("detail payload has no stats") // MALFORMED_RESPONSE
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Get(ctx, id); err != nil {
//	    return errors.Wrap(err, "failed to load session")
//	}
//
// Config structs validate with the builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("BaseURL", cfg.BaseURL, vb)
//	return vb.Build()
package errors
