/* models.go
 * Contains the configuration and server types for the web package
 * Authors: Zachary Bower
 */

package web

import (
	"net/http"
	"time"

	"axe-throwing-api/api/api"

	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

// Config holds the configuration for the web server
type Config struct {
	Addr            string
	API             *api.API
	Logger          zerolog.Logger
	ShutdownTimeout time.Duration // defaults to 10 seconds
}

// Server is the HTTP server that exposes the API as JSON resources
type Server struct {
	api             *api.API
	log             zerolog.Logger
	render          *render.Render
	server          *http.Server
	shutdownTimeout time.Duration
}
