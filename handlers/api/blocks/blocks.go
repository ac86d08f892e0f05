package blocks

import (
	"net/http"

	"festive-foliage/core"
	"festive-foliage/handlers/api"

	"github.com/go-chi/render"
)

type (
	DeleteRequest struct {
		ID string `json:"id"`
	}

	DeleteResponse struct {
		Success bool         `json:"success"`
		Blocks  []core.Block `json:"blocks"`
	}
)

func HandleList(store core.BlockStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context())
		if err != nil {
			api.Error(w, r, err)
			return
		}
		if list == nil {
			list = []core.Block{}
		}
		render.JSON(w, r, list)
	}
}

// HandleCreate adds a block. It expects RequireAdmin in front of it.
func HandleCreate(store core.BlockStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload core.NewBlock
		if err := api.Decode(r, &payload); err != nil {
			api.Error(w, r, err)
			return
		}

		created, err := store.Create(r.Context(), payload)
		if err != nil {
			api.Error(w, r, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, created)
	}
}

// HandleDelete removes a block. It expects RequireAdmin in front of it.
func HandleDelete(store core.BlockStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeleteRequest
		if err := api.Decode(r, &req); err != nil {
			api.Error(w, r, err)
			return
		}
		if req.ID == "" {
			api.Error(w, r, core.BadRequest("Missing id"))
			return
		}

		remaining, err := store.Remove(r.Context(), req.ID)
		if err != nil {
			api.Error(w, r, err)
			return
		}
		if remaining == nil {
			remaining = []core.Block{}
		}
		render.JSON(w, r, DeleteResponse{Success: true, Blocks: remaining})
	}
}
