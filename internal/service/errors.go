package service

import (
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/fairshare/internal/calculator"
	"github.com/mmynk/fairshare/internal/metrics"
	"github.com/mmynk/fairshare/internal/storage"
)

// toConnectError maps domain errors to Connect codes. Calculator validation
// errors keep their message so callers can show it verbatim.
func toConnectError(logger *slog.Logger, m *metrics.Metrics, procedure string, err error) error {
	var (
		verr    *calculator.ValidationError
		connErr *connect.Error
	)
	switch {
	case errors.As(err, &connErr):
		return connErr
	case errors.As(err, &verr):
		m.ValidationFailed(procedure)
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	}
	logger.Error("internal error", "procedure", procedure, "error", err)
	return connect.NewError(connect.CodeInternal, fmt.Errorf("%s failed", procedure))
}
