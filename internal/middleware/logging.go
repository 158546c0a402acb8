package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, user ID, duration, and any error codes/messages.
// Client errors (invalid input, not found, unauthenticated) are logged at
// WARN; anything else that fails is an ERROR.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"user_id", GetUserID(ctx), // empty if pre-auth or anonymous
				"peer", req.Peer().Addr,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err == nil {
				logger.InfoContext(ctx, "RPC ok", attrs...)
				return resp, nil
			}

			var connectErr *connect.Error
			if errors.As(err, &connectErr) && isClientError(connectErr.Code()) {
				logger.WarnContext(ctx, "RPC error",
					append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
			} else {
				logger.ErrorContext(ctx, "RPC error",
					append(attrs, "code", connect.CodeOf(err), "error", err)...)
			}
			return resp, err
		}
	}
}

func isClientError(code connect.Code) bool {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeUnauthenticated,
		connect.CodePermissionDenied, connect.CodeFailedPrecondition, connect.CodeCanceled:
		return true
	}
	return false
}
