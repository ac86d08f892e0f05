package decorations

import (
	"net/http"

	"festive-foliage/core"
	"festive-foliage/handlers/api"
	"festive-foliage/middleware"
	"festive-foliage/moderation"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

type (
	UpdateRequest struct {
		ID string `json:"id"`
		core.Patch
	}

	DeleteRequest struct {
		ID string `json:"id"`
	}

	DeleteResponse struct {
		Success     bool              `json:"success"`
		Decorations []core.Decoration `json:"decorations"`
	}
)

// HandleList returns every decoration. Attribution is only shown to admins.
func HandleList(store core.DecorationStore, authorizer moderation.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context())
		if err != nil {
			api.Error(w, r, err)
			return
		}

		if !middleware.IsAdmin(r, authorizer) {
			for i := range list {
				list[i] = list[i].Public()
			}
		}
		if list == nil {
			list = []core.Decoration{}
		}
		render.JSON(w, r, list)
	}
}

// HandleCreate places a decoration. The echo carries attribution only for admins.
func HandleCreate(store core.DecorationStore, authorizer moderation.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload core.NewDecoration
		if err := api.Decode(r, &payload); err != nil {
			api.Error(w, r, err)
			return
		}

		attr := middleware.AttributionFrom(r.Context())
		created, err := store.Create(r.Context(), payload, attr)
		if err != nil {
			api.Error(w, r, err)
			return
		}

		if !middleware.IsAdmin(r, authorizer) {
			*created = created.Public()
		}
		render.Status(r, http.StatusOK)
		render.JSON(w, r, created)
	}
}

func HandleUpdate(store core.DecorationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateRequest
		if err := api.Decode(r, &req); err != nil {
			api.Error(w, r, err)
			return
		}
		if req.ID == "" {
			api.Error(w, r, core.BadRequest("Missing id"))
			return
		}

		updated, err := store.Update(r.Context(), req.ID, req.Patch)
		if err != nil {
			api.Error(w, r, err)
			return
		}

		render.JSON(w, r, updated.Public())
	}
}

// HandleDelete removes a decoration. It expects RequireAdmin in front of it.
func HandleDelete(store core.DecorationStore) http.HandlerFunc {
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
			remaining = []core.Decoration{}
		}

		logrus.WithField("decoration_id", req.ID).Info("Decoration deleted by admin")
		render.JSON(w, r, DeleteResponse{Success: true, Decorations: remaining})
	}
}
