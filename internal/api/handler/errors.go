package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/mcoot/seabattle-go/internal/api/apierr"
	"github.com/mcoot/seabattle-go/internal/ws"
)

// Runner executes a job on the game loop and waits for it
type Runner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	if errors.Is(err, ws.ErrDispatcherStopped) {
		err = apierr.NewUnavailableError()
	}
	apierr.WriteError(w, err)
}
