package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryRecoverer converts a panic in a unary handler into codes.Internal.
func UnaryRecoverer(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			log.Error().Interface("panic", rvr).Str("method", info.FullMethod).Msg("grpc handler panicked")
			resp = nil
			err = status.Error(codes.Internal, "internal_error")
		}
	}()

	return handler(ctx, req)
}

// UnaryLogger logs method, status code and duration of each unary call.
func UnaryLogger(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	log.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Msg("gRPC call processed")

	return resp, err
}
