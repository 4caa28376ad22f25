// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        (unknown)
// source: balance/v1/balance.proto

package balancev1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

// Направление изменения баланса.
type Direction int32

const (
	Direction_DIRECTION_UNSPECIFIED Direction = 0
	Direction_DIRECTION_INCREASE    Direction = 1
	Direction_DIRECTION_DECREASE    Direction = 2
)

// Enum value maps for Direction.
var (
	Direction_name = map[int32]string{
		0: "DIRECTION_UNSPECIFIED",
		1: "DIRECTION_INCREASE",
		2: "DIRECTION_DECREASE",
	}
	Direction_value = map[string]int32{
		"DIRECTION_UNSPECIFIED": 0,
		"DIRECTION_INCREASE":    1,
		"DIRECTION_DECREASE":    2,
	}
)

func (x Direction) Enum() *Direction {
	p := new(Direction)
	*p = x
	return p
}

func (x Direction) String() string {
	return protoimpl.X.EnumStringOf(x.Descriptor(), protoreflect.EnumNumber(x))
}

func (Direction) Descriptor() protoreflect.EnumDescriptor {
	return file_balance_v1_balance_proto_enumTypes[0].Descriptor()
}

func (Direction) Type() protoreflect.EnumType {
	return &file_balance_v1_balance_proto_enumTypes[0]
}

func (x Direction) Number() protoreflect.EnumNumber {
	return protoreflect.EnumNumber(x)
}

// Deprecated: Use Direction.Descriptor instead.
func (Direction) EnumDescriptor() ([]byte, []int) {
	return file_balance_v1_balance_proto_rawDescGZIP(), []int{0}
}

type AdjustBalanceRequest struct {
	state protoimpl.MessageState `protogen:"open.v1"`
	// Идентификатор пользователя.
	UserId int64 `protobuf:"varint,1,opt,name=user_id,json=userId,proto3" json:"user_id,omitempty"`
	// Сумма изменения в копейках, всегда положительная.
	Amount int64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
	// Направление: пополнение или списание.
	Direction     Direction `protobuf:"varint,3,opt,name=direction,proto3,enum=balance.v1.Direction" json:"direction,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *AdjustBalanceRequest) Reset() {
	*x = AdjustBalanceRequest{}
	mi := &file_balance_v1_balance_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *AdjustBalanceRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*AdjustBalanceRequest) ProtoMessage() {}

func (x *AdjustBalanceRequest) ProtoReflect() protoreflect.Message {
	mi := &file_balance_v1_balance_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use AdjustBalanceRequest.ProtoReflect.Descriptor instead.
func (*AdjustBalanceRequest) Descriptor() ([]byte, []int) {
	return file_balance_v1_balance_proto_rawDescGZIP(), []int{0}
}

func (x *AdjustBalanceRequest) GetUserId() int64 {
	if x != nil {
		return x.UserId
	}
	return 0
}

func (x *AdjustBalanceRequest) GetAmount() int64 {
	if x != nil {
		return x.Amount
	}
	return 0
}

func (x *AdjustBalanceRequest) GetDirection() Direction {
	if x != nil {
		return x.Direction
	}
	return Direction_DIRECTION_UNSPECIFIED
}

type AdjustBalanceResponse struct {
	state protoimpl.MessageState `protogen:"open.v1"`
	// applied=false означает бизнес-отказ (недостаточно средств).
	Applied bool `protobuf:"varint,1,opt,name=applied,proto3" json:"applied,omitempty"`
	// Баланс пользователя после операции (или текущий, если отказ).
	Balance       int64 `protobuf:"varint,2,opt,name=balance,proto3" json:"balance,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *AdjustBalanceResponse) Reset() {
	*x = AdjustBalanceResponse{}
	mi := &file_balance_v1_balance_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *AdjustBalanceResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*AdjustBalanceResponse) ProtoMessage() {}

func (x *AdjustBalanceResponse) ProtoReflect() protoreflect.Message {
	mi := &file_balance_v1_balance_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use AdjustBalanceResponse.ProtoReflect.Descriptor instead.
func (*AdjustBalanceResponse) Descriptor() ([]byte, []int) {
	return file_balance_v1_balance_proto_rawDescGZIP(), []int{1}
}

func (x *AdjustBalanceResponse) GetApplied() bool {
	if x != nil {
		return x.Applied
	}
	return false
}

func (x *AdjustBalanceResponse) GetBalance() int64 {
	if x != nil {
		return x.Balance
	}
	return 0
}

type GetBalanceRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	UserId        int64                  `protobuf:"varint,1,opt,name=user_id,json=userId,proto3" json:"user_id,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *GetBalanceRequest) Reset() {
	*x = GetBalanceRequest{}
	mi := &file_balance_v1_balance_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *GetBalanceRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*GetBalanceRequest) ProtoMessage() {}

func (x *GetBalanceRequest) ProtoReflect() protoreflect.Message {
	mi := &file_balance_v1_balance_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use GetBalanceRequest.ProtoReflect.Descriptor instead.
func (*GetBalanceRequest) Descriptor() ([]byte, []int) {
	return file_balance_v1_balance_proto_rawDescGZIP(), []int{2}
}

func (x *GetBalanceRequest) GetUserId() int64 {
	if x != nil {
		return x.UserId
	}
	return 0
}

type GetBalanceResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Balance       int64                  `protobuf:"varint,1,opt,name=balance,proto3" json:"balance,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *GetBalanceResponse) Reset() {
	*x = GetBalanceResponse{}
	mi := &file_balance_v1_balance_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *GetBalanceResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*GetBalanceResponse) ProtoMessage() {}

func (x *GetBalanceResponse) ProtoReflect() protoreflect.Message {
	mi := &file_balance_v1_balance_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use GetBalanceResponse.ProtoReflect.Descriptor instead.
func (*GetBalanceResponse) Descriptor() ([]byte, []int) {
	return file_balance_v1_balance_proto_rawDescGZIP(), []int{3}
}

func (x *GetBalanceResponse) GetBalance() int64 {
	if x != nil {
		return x.Balance
	}
	return 0
}

var File_balance_v1_balance_proto protoreflect.FileDescriptor

const file_balance_v1_balance_proto_rawDesc = "" +
	"\n" +
	"\x18balance/v1/balance.proto\x12\n" +
	"balance.v1\"|\n" +
	"\x14AdjustBalanceRequest\x12\x17\n" +
	"\auser_id\x18\x01 \x01(\x03R\x06userId\x12\x16\n" +
	"\x06amount\x18\x02 \x01(\x03R\x06amount\x123\n" +
	"\tdirection\x18\x03 \x01(\x0e2\x15.balance.v1.DirectionR\tdirection\"K\n" +
	"\x15AdjustBalanceResponse\x12\x18\n" +
	"\aapplied\x18\x01 \x01(\bR\aapplied\x12\x18\n" +
	"\abalance\x18\x02 \x01(\x03R\abalance\",\n" +
	"\x11GetBalanceRequest\x12\x17\n" +
	"\auser_id\x18\x01 \x01(\x03R\x06userId\".\n" +
	"\x12GetBalanceResponse\x12\x18\n" +
	"\abalance\x18\x01 \x01(\x03R\abalance*V\n" +
	"\tDirection\x12\x19\n" +
	"\x15DIRECTION_UNSPECIFIED\x10\x00\x12\x16\n" +
	"\x12DIRECTION_INCREASE\x10\x01\x12\x16\n" +
	"\x12DIRECTION_DECREASE\x10\x022\xb3\x01\n" +
	"\x0eBalanceService\x12T\n" +
	"\rAdjustBalance\x12 .balance.v1.AdjustBalanceRequest\x1a!.balance.v1.AdjustBalanceResponse\x12K\n" +
	"\n" +
	"GetBalance\x12\x1d.balance.v1.GetBalanceRequest\x1a\x1e.balance.v1.GetBalanceResponseB;Z9example.com/fulfillment-system/proto/balance/v1;balancev1b\x06proto3"

var (
	file_balance_v1_balance_proto_rawDescOnce sync.Once
	file_balance_v1_balance_proto_rawDescData []byte
)

func file_balance_v1_balance_proto_rawDescGZIP() []byte {
	file_balance_v1_balance_proto_rawDescOnce.Do(func() {
		file_balance_v1_balance_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_balance_v1_balance_proto_rawDesc), len(file_balance_v1_balance_proto_rawDesc)))
	})
	return file_balance_v1_balance_proto_rawDescData
}

var file_balance_v1_balance_proto_enumTypes = make([]protoimpl.EnumInfo, 1)
var file_balance_v1_balance_proto_msgTypes = make([]protoimpl.MessageInfo, 4)
var file_balance_v1_balance_proto_goTypes = []any{
	(Direction)(0),                // 0: balance.v1.Direction
	(*AdjustBalanceRequest)(nil),  // 1: balance.v1.AdjustBalanceRequest
	(*AdjustBalanceResponse)(nil), // 2: balance.v1.AdjustBalanceResponse
	(*GetBalanceRequest)(nil),     // 3: balance.v1.GetBalanceRequest
	(*GetBalanceResponse)(nil),    // 4: balance.v1.GetBalanceResponse
}
var file_balance_v1_balance_proto_depIdxs = []int32{
	0, // 0: balance.v1.AdjustBalanceRequest.direction:type_name -> balance.v1.Direction
	1, // 1: balance.v1.BalanceService.AdjustBalance:input_type -> balance.v1.AdjustBalanceRequest
	3, // 2: balance.v1.BalanceService.GetBalance:input_type -> balance.v1.GetBalanceRequest
	2, // 3: balance.v1.BalanceService.AdjustBalance:output_type -> balance.v1.AdjustBalanceResponse
	4, // 4: balance.v1.BalanceService.GetBalance:output_type -> balance.v1.GetBalanceResponse
	3, // [3:5] is the sub-list for method output_type
	1, // [1:3] is the sub-list for method input_type
	1, // [1:1] is the sub-list for extension type_name
	1, // [1:1] is the sub-list for extension extendee
	0, // [0:1] is the sub-list for field type_name
}

func init() { file_balance_v1_balance_proto_init() }
func file_balance_v1_balance_proto_init() {
	if File_balance_v1_balance_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_balance_v1_balance_proto_rawDesc), len(file_balance_v1_balance_proto_rawDesc)),
			NumEnums:      1,
			NumMessages:   4,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_balance_v1_balance_proto_goTypes,
		DependencyIndexes: file_balance_v1_balance_proto_depIdxs,
		EnumInfos:         file_balance_v1_balance_proto_enumTypes,
		MessageInfos:      file_balance_v1_balance_proto_msgTypes,
	}.Build()
	File_balance_v1_balance_proto = out.File
	file_balance_v1_balance_proto_goTypes = nil
	file_balance_v1_balance_proto_depIdxs = nil
}
