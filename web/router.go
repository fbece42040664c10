/* router.go
 * Contains the route table. Every resource is mounted the same way by mountResource; teams additionally expose
 * their members as a sub-resource
 * Authors: Zachary Bower
 */

package web

import (
	"net/http"
	"time"

	"axe-throwing-api/api/api"
	"axe-throwing-api/api/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"
)

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(accessLogFormatter{log: s.log}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(s.render, w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(s.render, w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", healthHandler(s.api, s.render))

	mountResource(r, "/users", s.api.Users, s.render)
	mountResource(r, "/games", s.api.Games, s.render)
	mountResource(r, "/leagues", s.api.Leagues, s.render)
	mountResource(r, "/league-members", s.api.LeagueMembers, s.render)
	mountResource(r, "/teams", s.api.Teams, s.render, func(r chi.Router) {
		r.Get("/members", listTeamMembersHandler(s.api, s.render))
		r.Post("/members", addTeamMemberHandler(s.api, s.render))
		r.Delete("/members/{memberId}", removeTeamMemberHandler(s.api, s.render))
	})
	mountResource(r, "/seasons", s.api.Seasons, s.render)

	return r
}

// mountResource mounts the collection routes of a resource at pattern and its record routes at pattern/{id}. The
// record routes run behind loadResource, so their handlers always receive a loaded record. sub mounts extra record
// routes.
func mountResource[T models.Document, C models.Creator[T], P models.Patcher[T]](r chi.Router, pattern string, res *api.Resource[T, C, P], rnd *render.Render, sub ...func(r chi.Router)) {
	r.Route(pattern, func(r chi.Router) {
		r.Get("/", listHandler(res, rnd))
		r.Post("/", createHandler(res, rnd))
		if res.BulkField != "" {
			r.Delete("/", bulkDeleteHandler(res, rnd))
		}

		r.Route("/{id}", func(r chi.Router) {
			r.Use(loadResource(res, rnd))

			r.Get("/", getHandler[T](rnd))
			r.Put("/", patchHandler(res, rnd))
			r.Patch("/", patchHandler(res, rnd))
			r.Delete("/", deleteHandler(res, rnd))

			for _, mount := range sub {
				mount(r)
			}
		})
	})
}
