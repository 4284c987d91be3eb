package book

import (
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger replaces the package-level logger used for internal
// diagnostics — order pool growth, price level eviction and fatal-error
// reporting. It does not
// affect the trade event stream, which goes through EventSink instead.
func SetLogger(l *slog.Logger) {
	logger = l
}
