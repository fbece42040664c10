/* handlers.go
 * Contains the HTTP handlers. Each handler decodes the request, calls into the api package and renders the result
 * or error as JSON
 * Authors: Zachary Bower
 */

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"axe-throwing-api/api/api"
	"axe-throwing-api/api/models"
	"axe-throwing-api/api/store"

	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"
)

func listHandler[T models.Document, C models.Creator[T], P models.Patcher[T]](res *api.Resource[T, C, P], rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := res.List(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeMessage(rnd, w, http.StatusInternalServerError, err.Error())
			return
		}
		rnd.JSON(w, http.StatusOK, records)
	}
}

func getHandler[T any](rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := recordFrom[T](r.Context())
		if !ok {
			writeMessage(rnd, w, http.StatusInternalServerError, "record was not loaded")
			return
		}
		rnd.JSON(w, http.StatusOK, rec)
	}
}

func createHandler[T models.Document, C models.Creator[T], P models.Patcher[T]](res *api.Resource[T, C, P], rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in C
		if err := decodeJSON(r, &in); err != nil {
			writeMessage(rnd, w, http.StatusBadRequest, err.Error())
			return
		}

		rec, err := res.Create(r.Context(), in)
		if err != nil {
			writeError(rnd, w, err, res.NotFoundMessage())
			return
		}
		rnd.JSON(w, http.StatusCreated, rec)
	}
}

func patchHandler[T models.Document, C models.Creator[T], P models.Patcher[T]](res *api.Resource[T, C, P], rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := recordFrom[T](r.Context())
		if !ok {
			writeMessage(rnd, w, http.StatusInternalServerError, "record was not loaded")
			return
		}

		var in P
		if err := decodeJSON(r, &in); err != nil {
			writeMessage(rnd, w, http.StatusBadRequest, err.Error())
			return
		}

		updated, err := res.Patch(r.Context(), rec, in)
		if err != nil {
			writeError(rnd, w, err, res.NotFoundMessage())
			return
		}
		rnd.JSON(w, http.StatusOK, updated)
	}
}

func deleteHandler[T models.Document, C models.Creator[T], P models.Patcher[T]](res *api.Resource[T, C, P], rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := recordFrom[T](r.Context())
		if !ok {
			writeMessage(rnd, w, http.StatusInternalServerError, "record was not loaded")
			return
		}

		if err := res.Delete(r.Context(), rec); err != nil {
			writeError(rnd, w, err, res.NotFoundMessage())
			return
		}
		writeMessage(rnd, w, http.StatusOK, res.DeletedMessage())
	}
}

func bulkDeleteHandler[T models.Document, C models.Creator[T], P models.Patcher[T]](res *api.Resource[T, C, P], rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := bulkIDs(r, res.BulkField)
		if err != nil {
			writeMessage(rnd, w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := res.BulkDelete(r.Context(), ids)
		if err != nil {
			writeMessage(rnd, w, http.StatusInternalServerError, err.Error())
			return
		}
		rnd.JSON(w, http.StatusOK, result)
	}
}

func listTeamMembersHandler(a *api.API, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, ok := recordFrom[models.Team](r.Context())
		if !ok {
			writeMessage(rnd, w, http.StatusInternalServerError, "team was not loaded")
			return
		}
		rnd.JSON(w, http.StatusOK, a.ListTeamMembers(team))
	}
}

func addTeamMemberHandler(a *api.API, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, ok := recordFrom[models.Team](r.Context())
		if !ok {
			writeMessage(rnd, w, http.StatusInternalServerError, "team was not loaded")
			return
		}

		var in models.TeamMemberInput
		if err := decodeJSON(r, &in); err != nil {
			writeMessage(rnd, w, http.StatusBadRequest, err.Error())
			return
		}

		updated, err := a.AddTeamMember(r.Context(), team, in)
		if err != nil {
			writeError(rnd, w, err, a.Teams.NotFoundMessage())
			return
		}
		rnd.JSON(w, http.StatusOK, updated)
	}
}

func removeTeamMemberHandler(a *api.API, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, ok := recordFrom[models.Team](r.Context())
		if !ok {
			writeMessage(rnd, w, http.StatusInternalServerError, "team was not loaded")
			return
		}

		updated, err := a.RemoveTeamMember(r.Context(), team, chi.URLParam(r, "memberId"))
		if err != nil {
			writeError(rnd, w, err, "Team member not found")
			return
		}
		rnd.JSON(w, http.StatusOK, updated)
	}
}

func healthHandler(a *api.API, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.Ping(r.Context()); err != nil {
			writeMessage(rnd, w, http.StatusServiceUnavailable, err.Error())
			return
		}
		rnd.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// decodeJSON decodes the request body into v. An empty body leaves v untouched, anything after the first JSON
// value is an error.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("invalid request body: unexpected data after the JSON value")
	}
	return nil
}

// writeError maps an api error onto its status code. Not found errors use notFound as their message, every other
// error is reported verbatim.
func writeError(rnd *render.Render, w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeMessage(rnd, w, http.StatusNotFound, notFound)
	case errors.Is(err, api.ErrBadInput):
		writeMessage(rnd, w, http.StatusBadRequest, err.Error())
	default:
		writeMessage(rnd, w, http.StatusInternalServerError, err.Error())
	}
}

func writeMessage(rnd *render.Render, w http.ResponseWriter, status int, msg string) {
	rnd.JSON(w, status, api.Message{Message: msg})
}
