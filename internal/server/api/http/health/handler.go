// Package health answers the liveness probe travelctl issues before it
// trusts a configured server address.
package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const serviceName = "zervitravel-tables"

type Handler struct {
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.checkOp(), h.check)
}

func (h *Handler) check(_ context.Context, _ *checkInput) (*checkOutput, error) {
	h.log.Debug("health probe answered")

	return &checkOutput{
		Body: Status{
			Status:  "OK",
			Service: serviceName,
		},
	}, nil
}
