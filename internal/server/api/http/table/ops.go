package table

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "tables-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/tables/{table}",
		Summary:     "List a collection's records, newest first",
		Tags:        []string{"tables"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "tables-create",
		Method:        http.MethodPost,
		Path:          "/api/v1/tables/{table}",
		Summary:       "Insert one record",
		Description:   "The payload must carry a client-assigned id. Timestamps and the version counter are service-owned.",
		Tags:          []string{"tables"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "tables-find",
		Method:      http.MethodGet,
		Path:        "/api/v1/tables/{table}/{id}",
		Summary:     "Fetch one record by id",
		Tags:        []string{"tables"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "tables-update",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tables/{table}/{id}",
		Summary:     "Update one record",
		Description: "Provided fields overwrite stored ones, explicit nulls clear them, absent fields stay. If-Match carries the expected version.",
		Tags:        []string{"tables"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "tables-delete",
		Method:        http.MethodDelete,
		Path:          "/api/v1/tables/{table}/{id}",
		Summary:       "Delete one record",
		Description:   "Deleting an absent record is not an error.",
		Tags:          []string{"tables"},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   h.middleware,
	}
}
