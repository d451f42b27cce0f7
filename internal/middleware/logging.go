package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor logs every unary RPC with its procedure, outcome and latency.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			attrs := []any{
				slog.String("procedure", procedure),
				slog.Duration("duration", time.Since(start)),
			}
			if userID := GetUserID(ctx); userID != "" {
				attrs = append(attrs, slog.String("user_id", userID))
			}
			if orgID := GetOrgID(ctx); orgID != "" {
				attrs = append(attrs, slog.String("org_id", orgID))
			}

			if err != nil {
				attrs = append(attrs, slog.String("code", connect.CodeOf(err).String()), slog.Any("error", err))
				if _, ok := err.(*connect.Error); ok {
					slog.Warn("RPC failed", attrs...)
				} else {
					slog.Error("RPC failed", attrs...)
				}
				return resp, err
			}

			slog.Info("RPC ok", attrs...)
			return resp, nil
		}
	}
}
