package api

import (
	"context"

	"google.golang.org/grpc"
)

const (
	TravelService_Nearby_FullMethodName          = "/travelmate.travel.v1.TravelService/Nearby"
	TravelService_SendRequest_FullMethodName     = "/travelmate.travel.v1.TravelService/SendRequest"
	TravelService_AcceptRequest_FullMethodName   = "/travelmate.travel.v1.TravelService/AcceptRequest"
	TravelService_DeclineRequest_FullMethodName  = "/travelmate.travel.v1.TravelService/DeclineRequest"
	TravelService_PendingRequests_FullMethodName = "/travelmate.travel.v1.TravelService/PendingRequests"
)

type TravelServiceServer interface {
	Nearby(context.Context, *NearbyRequest) (*NearbyResponse, error)
	SendRequest(context.Context, *SendRequestRequest) (*Request, error)
	AcceptRequest(context.Context, *AnswerRequest) (*AcceptResponse, error)
	DeclineRequest(context.Context, *AnswerRequest) (*Request, error)
	PendingRequests(context.Context, *PendingRequestsRequest) (*RequestsResponse, error)
}

func RegisterTravelServiceServer(s grpc.ServiceRegistrar, srv TravelServiceServer) {
	s.RegisterService(&TravelService_ServiceDesc, srv)
}

// unaryHandler builds a method handler the way generated stubs spell it out
// for every method.
func unaryHandler[Req any, Res any](fullMethod string, call func(TravelServiceServer, context.Context, *Req) (*Res, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TravelServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TravelServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var TravelService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "travelmate.travel.v1.TravelService",
	HandlerType: (*TravelServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Nearby", Handler: unaryHandler(TravelService_Nearby_FullMethodName, TravelServiceServer.Nearby)},
		{MethodName: "SendRequest", Handler: unaryHandler(TravelService_SendRequest_FullMethodName, TravelServiceServer.SendRequest)},
		{MethodName: "AcceptRequest", Handler: unaryHandler(TravelService_AcceptRequest_FullMethodName, TravelServiceServer.AcceptRequest)},
		{MethodName: "DeclineRequest", Handler: unaryHandler(TravelService_DeclineRequest_FullMethodName, TravelServiceServer.DeclineRequest)},
		{MethodName: "PendingRequests", Handler: unaryHandler(TravelService_PendingRequests_FullMethodName, TravelServiceServer.PendingRequests)},
	},
	Metadata: "travelmate/travel/v1",
}

type TravelServiceClient interface {
	Nearby(ctx context.Context, in *NearbyRequest, opts ...grpc.CallOption) (*NearbyResponse, error)
	SendRequest(ctx context.Context, in *SendRequestRequest, opts ...grpc.CallOption) (*Request, error)
	AcceptRequest(ctx context.Context, in *AnswerRequest, opts ...grpc.CallOption) (*AcceptResponse, error)
	DeclineRequest(ctx context.Context, in *AnswerRequest, opts ...grpc.CallOption) (*Request, error)
	PendingRequests(ctx context.Context, in *PendingRequestsRequest, opts ...grpc.CallOption) (*RequestsResponse, error)
}

type travelServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTravelServiceClient(cc grpc.ClientConnInterface) TravelServiceClient {
	return &travelServiceClient{cc}
}

func (c *travelServiceClient) Nearby(ctx context.Context, in *NearbyRequest, opts ...grpc.CallOption) (*NearbyResponse, error) {
	return invoke[NearbyResponse](ctx, c.cc, TravelService_Nearby_FullMethodName, in, opts)
}

func (c *travelServiceClient) SendRequest(ctx context.Context, in *SendRequestRequest, opts ...grpc.CallOption) (*Request, error) {
	return invoke[Request](ctx, c.cc, TravelService_SendRequest_FullMethodName, in, opts)
}

func (c *travelServiceClient) AcceptRequest(ctx context.Context, in *AnswerRequest, opts ...grpc.CallOption) (*AcceptResponse, error) {
	return invoke[AcceptResponse](ctx, c.cc, TravelService_AcceptRequest_FullMethodName, in, opts)
}

func (c *travelServiceClient) DeclineRequest(ctx context.Context, in *AnswerRequest, opts ...grpc.CallOption) (*Request, error) {
	return invoke[Request](ctx, c.cc, TravelService_DeclineRequest_FullMethodName, in, opts)
}

func (c *travelServiceClient) PendingRequests(ctx context.Context, in *PendingRequestsRequest, opts ...grpc.CallOption) (*RequestsResponse, error) {
	return invoke[RequestsResponse](ctx, c.cc, TravelService_PendingRequests_FullMethodName, in, opts)
}
