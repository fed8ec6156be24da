package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

// HumaNoStore marks session API responses as uncacheable; they describe live form state.
func HumaNoStore(ctx huma.Context, next func(huma.Context)) {
	ctx.SetHeader("Cache-Control", "no-store")
	next(ctx)
}

// HumaSessionLogger tags the operation with the session it touches.
func HumaSessionLogger(ctx huma.Context, next func(huma.Context)) {
	if id := ctx.Param("id"); id != "" {
		log.Debug().
			Str("session", id).
			Str("operation", ctx.Operation().OperationID).
			Msg("session api call")
	}
	next(ctx)
}
