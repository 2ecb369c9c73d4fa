package pb

import (
	proto "github.com/gogo/protobuf/proto"
)

// RsChunk is the wire form of one Reed-Solomon chunk
type RsChunk struct {
	MessageId            string   `protobuf:"bytes,1,opt,name=message_id,json=messageId,proto3" json:"message_id,omitempty"`
	Index                uint32   `protobuf:"varint,2,opt,name=index,proto3" json:"index,omitempty"`
	DataCount            uint32   `protobuf:"varint,3,opt,name=data_count,json=dataCount,proto3" json:"data_count,omitempty"`
	ParityCount          uint32   `protobuf:"varint,4,opt,name=parity_count,json=parityCount,proto3" json:"parity_count,omitempty"`
	MessageSize          uint64   `protobuf:"varint,5,opt,name=message_size,json=messageSize,proto3" json:"message_size,omitempty"`
	Data                 []byte   `protobuf:"bytes,6,opt,name=data,proto3" json:"data,omitempty"`
	Extra                []byte   `protobuf:"bytes,7,opt,name=extra,proto3" json:"extra,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *RsChunk) Reset()         { *m = RsChunk{} }
func (m *RsChunk) String() string { return proto.CompactTextString(m) }
func (*RsChunk) ProtoMessage()    {}

func (m *RsChunk) GetMessageId() string {
	if m != nil {
		return m.MessageId
	}
	return ""
}

func (m *RsChunk) GetIndex() uint32 {
	if m != nil {
		return m.Index
	}
	return 0
}

func (m *RsChunk) GetDataCount() uint32 {
	if m != nil {
		return m.DataCount
	}
	return 0
}

func (m *RsChunk) GetParityCount() uint32 {
	if m != nil {
		return m.ParityCount
	}
	return 0
}

func (m *RsChunk) GetMessageSize() uint64 {
	if m != nil {
		return m.MessageSize
	}
	return 0
}

func (m *RsChunk) GetData() []byte {
	if m != nil {
		return m.Data
	}
	return nil
}

func (m *RsChunk) GetExtra() []byte {
	if m != nil {
		return m.Extra
	}
	return nil
}

func init() {
	proto.RegisterType((*RsChunk)(nil), "pb.RsChunk")
}
