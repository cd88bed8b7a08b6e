package table

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"zervitravel/internal/server/storage"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) List(ctx context.Context, collection string) ([]storage.Row, error) {
	args := m.Called(ctx, collection)
	return args.Get(0).([]storage.Row), args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, collection, id string) (*storage.Row, error) {
	args := m.Called(ctx, collection, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Row), args.Error(1)
}

func (m *MockStore) Insert(ctx context.Context, collection, id string, data []byte) (*storage.Row, error) {
	args := m.Called(ctx, collection, id, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Row), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, collection, id string, baseVersion int, data []byte) (*storage.Row, error) {
	args := m.Called(ctx, collection, id, baseVersion, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Row), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

func newTestHandler(store Storer) *Handler {
	return NewHandler(store, slog.Default(), huma.Middlewares{})
}

func row(collection, id string, version int, data string) storage.Row {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return storage.Row{
		Collection: collection,
		ID:         id,
		Data:       []byte(data),
		Version:    version,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestHandler_list(t *testing.T) {
	store := new(MockStore)
	store.On("List", mock.Anything, "destinations").Return([]storage.Row{
		row("destinations", "b", 1, `{"name":"Newer"}`),
		row("destinations", "a", 2, `{"name":"Older"}`),
	}, nil)
	h := newTestHandler(store)

	out, err := h.list(context.Background(), &listInput{Table: "destinations"})

	require.NoError(t, err)
	require.Len(t, out.Body, 2)
	assert.Equal(t, "b", out.Body[0]["id"])
	assert.Equal(t, "Newer", out.Body[0]["name"])
	assert.Equal(t, 2, out.Body[1]["version"])
	store.AssertExpectations(t)
}

func TestHandler_createStripsEnvelopeFromData(t *testing.T) {
	store := new(MockStore)
	store.On("Insert", mock.Anything, "destinations", "great-wall", mock.MatchedBy(func(data []byte) bool {
		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		_, hasID := fields["id"]
		_, hasVersion := fields["version"]
		return !hasID && !hasVersion && fields["name"] == "Great Wall"
	})).Return(ptr(row("destinations", "great-wall", 1, `{"name":"Great Wall"}`)), nil)
	h := newTestHandler(store)

	out, err := h.create(context.Background(), &createInput{
		Table:   "destinations",
		RawBody: []byte(`{"id":"great-wall","name":"Great Wall","version":99}`),
	})

	require.NoError(t, err)
	assert.Equal(t, "great-wall", out.Body["id"])
	assert.Equal(t, 1, out.Body["version"])
	assert.NotEmpty(t, out.Body["created_at"])
	store.AssertExpectations(t)
}

func TestHandler_createRejectsMissingID(t *testing.T) {
	h := newTestHandler(new(MockStore))

	_, err := h.create(context.Background(), &createInput{
		Table:   "destinations",
		RawBody: []byte(`{"name":"No id"}`),
	})

	var herr huma.StatusError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, 422, herr.GetStatus())
}

func TestHandler_createDuplicateIsBadRequest(t *testing.T) {
	store := new(MockStore)
	store.On("Insert", mock.Anything, "destinations", "dup", mock.Anything).
		Return(nil, storage.ErrDuplicate)
	h := newTestHandler(store)

	_, err := h.create(context.Background(), &createInput{
		Table:   "destinations",
		RawBody: []byte(`{"id":"dup","name":"X"}`),
	})

	var herr huma.StatusError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, 400, herr.GetStatus())
}

func TestHandler_updateMergesAndClearsNulls(t *testing.T) {
	store := new(MockStore)
	store.On("Get", mock.Anything, "destinations", "d1").
		Return(ptr(row("destinations", "d1", 3, `{"name":"Old","note":"keep-or-clear","region":"north"}`)), nil)
	store.On("Update", mock.Anything, "destinations", "d1", 3, mock.MatchedBy(func(data []byte) bool {
		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		_, hasNote := fields["note"]
		return fields["name"] == "New" && !hasNote && fields["region"] == "north"
	})).Return(ptr(row("destinations", "d1", 4, `{"name":"New","region":"north"}`)), nil)
	h := newTestHandler(store)

	out, err := h.update(context.Background(), &updateInput{
		Table:   "destinations",
		ID:      "d1",
		IfMatch: "3",
		RawBody: []byte(`{"name":"New","note":null}`),
	})

	require.NoError(t, err)
	assert.Equal(t, 4, out.Body["version"])
	store.AssertExpectations(t)
}

func TestHandler_updateStaleVersionIsConflict(t *testing.T) {
	store := new(MockStore)
	store.On("Get", mock.Anything, "destinations", "d1").
		Return(ptr(row("destinations", "d1", 5, `{"name":"Current"}`)), nil)
	store.On("Update", mock.Anything, "destinations", "d1", 3, mock.Anything).
		Return(nil, storage.ErrConflict)
	h := newTestHandler(store)

	_, err := h.update(context.Background(), &updateInput{
		Table:   "destinations",
		ID:      "d1",
		IfMatch: "3",
		RawBody: []byte(`{"name":"New"}`),
	})

	var herr huma.StatusError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, 409, herr.GetStatus())
}

func TestHandler_updateMissingRecordIsNotFound(t *testing.T) {
	store := new(MockStore)
	store.On("Get", mock.Anything, "destinations", "ghost").
		Return(nil, storage.ErrNotFound)
	h := newTestHandler(store)

	_, err := h.update(context.Background(), &updateInput{
		Table:   "destinations",
		ID:      "ghost",
		RawBody: []byte(`{"name":"New"}`),
	})

	var herr huma.StatusError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, 404, herr.GetStatus())
}

func TestHandler_deleteAbsentRecordSucceeds(t *testing.T) {
	store := new(MockStore)
	store.On("Delete", mock.Anything, "destinations", "ghost").Return(nil)
	h := newTestHandler(store)

	out, err := h.delete(context.Background(), &deleteInput{Table: "destinations", ID: "ghost"})

	require.NoError(t, err)
	assert.NotNil(t, out)
	store.AssertExpectations(t)
}

func ptr(r storage.Row) *storage.Row {
	return &r
}
