package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/angelmondragon/receipt-processor/api/responses"
	pkgerrors "github.com/angelmondragon/receipt-processor/pkg/errors"
	"github.com/angelmondragon/receipt-processor/pkg/logger"
)

// Recoverer turns handler panics into a 500 envelope. If the handler already
// wrote a status, only the log entry is emitted.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if p == http.ErrAbortHandler {
					panic(p)
				}

				err := pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("panic: %v", p), "panic")
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"panic": fmt.Sprint(p),
						"stack": string(debug.Stack()),
					})
				}
				if rec.status != 0 {
					if logg != nil {
						logg.Error(ctx, "request.panic_after_write", err)
					}
					return
				}
				responses.WriteError(ctx, logg, rec, err)
			}()
			next.ServeHTTP(rec, r)
		})
	}
}
