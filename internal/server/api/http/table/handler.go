// Package table exposes the generic collection CRUD the sync clients
// consume: list, insert, patch by id, delete by id.
package table

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"zervitravel/internal/server/storage"
)

// Storer is the slice of the storage contract the handler needs.
type Storer interface {
	List(ctx context.Context, collection string) ([]storage.Row, error)
	Get(ctx context.Context, collection, id string) (*storage.Row, error)
	Insert(ctx context.Context, collection, id string, data []byte) (*storage.Row, error)
	Update(ctx context.Context, collection, id string, baseVersion int, data []byte) (*storage.Row, error)
	Delete(ctx context.Context, collection, id string) error
}

type Handler struct {
	store      Storer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(store Storer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		store:      store,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	rows, err := h.store.List(ctx, input.Table)
	if err != nil {
		return nil, err
	}

	records := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		rec, err := envelope(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return &listOutput{Body: records}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*recordOutput, error) {
	fields, err := decodeFields(input.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest("request body must be a JSON object")
	}

	id, _ := fields["id"].(string)
	if id == "" {
		return nil, huma.Error422UnprocessableEntity("record id is required")
	}
	stripEnvelope(fields)

	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	row, err := h.store.Insert(ctx, input.Table, id, data)
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, huma.Error400BadRequest("record id already exists: " + id)
	}
	if err != nil {
		return nil, err
	}

	rec, err := envelope(*row)
	if err != nil {
		return nil, err
	}
	return &recordOutput{Body: rec}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*recordOutput, error) {
	row, err := h.store.Get(ctx, input.Table, input.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, huma.Error404NotFound("record not found: " + input.ID)
	}
	if err != nil {
		return nil, err
	}

	rec, err := envelope(*row)
	if err != nil {
		return nil, err
	}
	return &recordOutput{Body: rec}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*recordOutput, error) {
	patch, err := decodeFields(input.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest("request body must be a JSON object")
	}

	row, err := h.store.Get(ctx, input.Table, input.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, huma.Error404NotFound("record not found: " + input.ID)
	}
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(row.Data, &fields); err != nil {
		return nil, err
	}

	// Provided fields overwrite, explicit nulls clear, absent fields stay.
	stripEnvelope(patch)
	delete(patch, "id")
	for k, v := range patch {
		if v == nil {
			delete(fields, k)
			continue
		}
		fields[k] = v
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	baseVersion, _ := strconv.Atoi(input.IfMatch)
	updated, err := h.store.Update(ctx, input.Table, input.ID, baseVersion, data)
	if errors.Is(err, storage.ErrConflict) {
		return nil, huma.Error409Conflict("record version mismatch: " + input.IfMatch)
	}
	if errors.Is(err, storage.ErrNotFound) {
		return nil, huma.Error404NotFound("record not found: " + input.ID)
	}
	if err != nil {
		return nil, err
	}

	rec, err := envelope(*updated)
	if err != nil {
		return nil, err
	}
	return &recordOutput{Body: rec}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	if err := h.store.Delete(ctx, input.Table, input.ID); err != nil {
		return nil, err
	}
	return &deleteOutput{}, nil
}

func decodeFields(raw []byte) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// stripEnvelope drops service-owned fields a client may have echoed back.
func stripEnvelope(fields map[string]any) {
	delete(fields, "created_at")
	delete(fields, "updated_at")
	delete(fields, "version")
}

// envelope merges a row's data with its service-owned columns into the
// wire shape clients consume.
func envelope(row storage.Row) (map[string]any, error) {
	var rec map[string]any
	if err := json.Unmarshal(row.Data, &rec); err != nil {
		return nil, err
	}
	rec["id"] = row.ID
	rec["version"] = row.Version
	rec["created_at"] = row.CreatedAt.UTC().Format(time.RFC3339Nano)
	rec["updated_at"] = row.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return rec, nil
}
