// The table service HTTP surface:
//
//	GET    /api/v1/health               # liveness probe
//	GET    /api/v1/tables/{table}       # list records, newest first
//	POST   /api/v1/tables/{table}       # insert one record
//	GET    /api/v1/tables/{table}/{id}  # fetch one record
//	PATCH  /api/v1/tables/{table}/{id}  # update one record (If-Match)
//	DELETE /api/v1/tables/{table}/{id}  # delete one record (idempotent)
package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	healthAPI "zervitravel/internal/server/api/http/health"
	"zervitravel/internal/server/api/http/middleware/logger"
	tableAPI "zervitravel/internal/server/api/http/table"
	"zervitravel/internal/server/storage"
)

type Handlers struct {
	Health *healthAPI.Handler
	Table  *tableAPI.Handler
}

// New wires every operation into a *chi.Mux through huma.Register.
func New(store storage.TableStorage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Zervi Travel Table Service", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(store, log)
	h.Health.SetupRoutes(API)
	h.Table.SetupRoutes(API)

	return mux
}

func handlers(store storage.TableStorage, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := huma.Middlewares{loggerMW.Middleware()}

	return &Handlers{
		Health: healthAPI.NewHandler(log, middlewares),
		Table:  tableAPI.NewHandler(store, log, middlewares),
	}
}
