/* logger.go
 * Contains NewLogger, which builds the root logger every package logs through
 * Authors: Zachary Bower
 */

package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a logger at the configured level writing JSON lines to w, or human readable lines when
// LogPretty is set. A nil w writes to stderr.
func (c Config) NewLogger(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if c.LogPretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(c.LogLevel).With().Timestamp().Logger()
}
