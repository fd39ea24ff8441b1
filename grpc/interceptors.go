// Package grpc provides server interceptors that count every RPC in flight
// as one tracked operation.
package grpc // import "github.com/NYTimes/activity/grpc"

import (
	"context"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	"google.golang.org/grpc"

	"github.com/NYTimes/activity"
)

// UnaryServerInterceptor returns an interceptor that counts every unary RPC
// as one independent in-flight operation on t for the duration of the call.
func UnaryServerInterceptor(t *activity.Tracker) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		op := t.Begin()
		resp, err := handler(ctx, req)
		op.End(err)
		return resp, err
	}
}

// StreamServerInterceptor returns an interceptor that counts every
// streaming RPC as one independent in-flight operation on t for as long as
// the stream is open.
func StreamServerInterceptor(t *activity.Tracker) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		op := t.Begin()
		err := handler(srv, ss)
		op.End(err)
		return err
	}
}

// ServerOptions returns grpc.ServerOptions that install both interceptors,
// chained ahead of any given extras, ready to hand to grpc.NewServer.
func ServerOptions(t *activity.Tracker, unary []grpc.UnaryServerInterceptor, stream []grpc.StreamServerInterceptor) []grpc.ServerOption {
	u := append([]grpc.UnaryServerInterceptor{UnaryServerInterceptor(t)}, unary...)
	s := append([]grpc.StreamServerInterceptor{StreamServerInterceptor(t)}, stream...)
	return []grpc.ServerOption{
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(u...)),
		grpc.StreamInterceptor(grpc_middleware.ChainStreamServer(s...)),
	}
}
