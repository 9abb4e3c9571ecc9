package api

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ChatService_OpenRoom_FullMethodName    = "/travelmate.chat.v1.ChatService/OpenRoom"
	ChatService_SendMessage_FullMethodName = "/travelmate.chat.v1.ChatService/SendMessage"
	ChatService_MarkRead_FullMethodName    = "/travelmate.chat.v1.ChatService/MarkRead"
	ChatService_ListRooms_FullMethodName   = "/travelmate.chat.v1.ChatService/ListRooms"
	ChatService_CreateRoom_FullMethodName  = "/travelmate.chat.v1.ChatService/CreateRoom"
	ChatService_WatchRooms_FullMethodName  = "/travelmate.chat.v1.ChatService/WatchRooms"
)

type ChatServiceServer interface {
	OpenRoom(*OpenRoomRequest, grpc.ServerStreamingServer[RoomFrame]) error
	SendMessage(context.Context, *SendMessageRequest) (*Message, error)
	MarkRead(context.Context, *MarkReadRequest) (*MarkReadResponse, error)
	ListRooms(context.Context, *ListRoomsRequest) (*ListRoomsResponse, error)
	CreateRoom(context.Context, *CreateRoomRequest) (*Room, error)
	WatchRooms(*WatchRoomsRequest, grpc.ServerStreamingServer[RoomListChanged]) error
}

func RegisterChatServiceServer(s grpc.ServiceRegistrar, srv ChatServiceServer) {
	s.RegisterService(&ChatService_ServiceDesc, srv)
}

func _ChatService_OpenRoom_Handler(srv any, stream grpc.ServerStream) error {
	m := new(OpenRoomRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ChatServiceServer).OpenRoom(m, &grpc.GenericServerStream[OpenRoomRequest, RoomFrame]{ServerStream: stream})
}

func _ChatService_WatchRooms_Handler(srv any, stream grpc.ServerStream) error {
	m := new(WatchRoomsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ChatServiceServer).WatchRooms(m, &grpc.GenericServerStream[WatchRoomsRequest, RoomListChanged]{ServerStream: stream})
}

func _ChatService_SendMessage_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SendMessageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatServiceServer).SendMessage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ChatService_SendMessage_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatServiceServer).SendMessage(ctx, req.(*SendMessageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatService_MarkRead_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(MarkReadRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatServiceServer).MarkRead(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ChatService_MarkRead_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatServiceServer).MarkRead(ctx, req.(*MarkReadRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatService_ListRooms_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListRoomsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatServiceServer).ListRooms(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ChatService_ListRooms_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatServiceServer).ListRooms(ctx, req.(*ListRoomsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatService_CreateRoom_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateRoomRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatServiceServer).CreateRoom(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ChatService_CreateRoom_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatServiceServer).CreateRoom(ctx, req.(*CreateRoomRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var ChatService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "travelmate.chat.v1.ChatService",
	HandlerType: (*ChatServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SendMessage", Handler: _ChatService_SendMessage_Handler},
		{MethodName: "MarkRead", Handler: _ChatService_MarkRead_Handler},
		{MethodName: "ListRooms", Handler: _ChatService_ListRooms_Handler},
		{MethodName: "CreateRoom", Handler: _ChatService_CreateRoom_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "OpenRoom", Handler: _ChatService_OpenRoom_Handler, ServerStreams: true},
		{StreamName: "WatchRooms", Handler: _ChatService_WatchRooms_Handler, ServerStreams: true},
	},
	Metadata: "travelmate/chat/v1",
}

type ChatServiceClient interface {
	OpenRoom(ctx context.Context, in *OpenRoomRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[RoomFrame], error)
	SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*Message, error)
	MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*MarkReadResponse, error)
	ListRooms(ctx context.Context, in *ListRoomsRequest, opts ...grpc.CallOption) (*ListRoomsResponse, error)
	CreateRoom(ctx context.Context, in *CreateRoomRequest, opts ...grpc.CallOption) (*Room, error)
	WatchRooms(ctx context.Context, in *WatchRoomsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[RoomListChanged], error)
}

type chatServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewChatServiceClient(cc grpc.ClientConnInterface) ChatServiceClient {
	return &chatServiceClient{cc}
}

func (c *chatServiceClient) OpenRoom(ctx context.Context, in *OpenRoomRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[RoomFrame], error) {
	return serverStream[OpenRoomRequest, RoomFrame](ctx, c.cc, &ChatService_ServiceDesc.Streams[0], ChatService_OpenRoom_FullMethodName, in, opts)
}

func (c *chatServiceClient) WatchRooms(ctx context.Context, in *WatchRoomsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[RoomListChanged], error) {
	return serverStream[WatchRoomsRequest, RoomListChanged](ctx, c.cc, &ChatService_ServiceDesc.Streams[1], ChatService_WatchRooms_FullMethodName, in, opts)
}

func (c *chatServiceClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*Message, error) {
	return invoke[Message](ctx, c.cc, ChatService_SendMessage_FullMethodName, in, opts)
}

func (c *chatServiceClient) MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*MarkReadResponse, error) {
	return invoke[MarkReadResponse](ctx, c.cc, ChatService_MarkRead_FullMethodName, in, opts)
}

func (c *chatServiceClient) ListRooms(ctx context.Context, in *ListRoomsRequest, opts ...grpc.CallOption) (*ListRoomsResponse, error) {
	return invoke[ListRoomsResponse](ctx, c.cc, ChatService_ListRooms_FullMethodName, in, opts)
}

func (c *chatServiceClient) CreateRoom(ctx context.Context, in *CreateRoomRequest, opts ...grpc.CallOption) (*Room, error) {
	return invoke[Room](ctx, c.cc, ChatService_CreateRoom_FullMethodName, in, opts)
}

func invoke[Res any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Res, error) {
	out := new(Res)
	if err := cc.Invoke(ctx, method, in, out, append([]grpc.CallOption{CallJSON()}, opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func serverStream[Req any, Res any](ctx context.Context, cc grpc.ClientConnInterface, desc *grpc.StreamDesc, method string, in *Req, opts []grpc.CallOption) (grpc.ServerStreamingClient[Res], error) {
	stream, err := cc.NewStream(ctx, desc, method, append([]grpc.CallOption{CallJSON()}, opts...)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[Req, Res]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
