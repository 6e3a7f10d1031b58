package handler

import (
	"context"
	"errors"

	"github.com/gw0212/maplink-manager/internal/model"
	"github.com/gw0212/maplink-manager/internal/service"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	deepLinkServiceName = "maplink.DeepLinkService"

	// ResolveFullMethod is the full gRPC method name of DeepLinkService.Resolve.
	ResolveFullMethod = "/" + deepLinkServiceName + "/Resolve"
)

// DeepLinkServer is the gRPC API of DeepLinkService. Messages are
// google.protobuf.Struct values shaped like the HTTP JSON bodies.
type DeepLinkServer interface {
	Resolve(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type DeepLinkGRPCServer struct {
	deepLinkService DeepLinkService
}

func NewDeepLinkGRPCServer(deepLinkService DeepLinkService) *DeepLinkGRPCServer {
	return &DeepLinkGRPCServer{
		deepLinkService: deepLinkService,
	}
}

func (s *DeepLinkGRPCServer) Resolve(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	resp, err := s.deepLinkService.Resolve(ctx, model.ResolveRequest{
		URL:     fields["url"].GetStringValue(),
		Service: fields["service"].GetStringValue(),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return nil, status.Error(codes.InvalidArgument, msgMissingFields)
		}
		log.Error().Err(err).Msg("grpc resolve failed")
		return nil, status.Error(codes.Internal, msgInternalError)
	}

	var deepLink any
	if resp.DeepLink != nil {
		deepLink = *resp.DeepLink
	}

	out, err := structpb.NewStruct(map[string]any{
		"originalUrl": resp.OriginalURL,
		"finalUrl":    resp.FinalURL,
		"deepLink":    deepLink,
	})
	if err != nil {
		log.Error().Err(err).Msg("grpc resolve: build response")
		return nil, status.Error(codes.Internal, msgInternalError)
	}
	return out, nil
}

// RegisterDeepLinkServer registers srv on s.
func RegisterDeepLinkServer(s grpc.ServiceRegistrar, srv DeepLinkServer) {
	s.RegisterService(&deepLinkServiceDesc, srv)
}

func resolveGRPCHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeepLinkServer).Resolve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ResolveFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DeepLinkServer).Resolve(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var deepLinkServiceDesc = grpc.ServiceDesc{
	ServiceName: deepLinkServiceName,
	HandlerType: (*DeepLinkServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Resolve",
			Handler:    resolveGRPCHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "maplink.proto",
}
