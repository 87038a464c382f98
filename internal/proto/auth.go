package proto

import (
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// authFile mirrors the messages of api/proto/gophauth/v1/auth.proto. Field
// numbers must stay in sync with that file.
var authFile = &descriptorpb.FileDescriptorProto{
	Name:    ptr("gophauth/v1/auth.proto"),
	Package: ptr("gophauth.v1"),
	Syntax:  ptr("proto3"),
	MessageType: []*descriptorpb.DescriptorProto{
		message("RegisterRequest", "name", "email", "password", "role"),
		message("LoginRequest", "email", "password"),
		message("AuthResponse", "token", "message"),
		message("ProfileResponse", "email", "role", "message"),
		message("DashboardResponse", "message", "admin_email"),
	},
}

var (
	registerRequestDesc   protoreflect.MessageDescriptor
	loginRequestDesc      protoreflect.MessageDescriptor
	authResponseDesc      protoreflect.MessageDescriptor
	profileResponseDesc   protoreflect.MessageDescriptor
	dashboardResponseDesc protoreflect.MessageDescriptor
)

func init() {
	fd, err := protodesc.NewFile(authFile, protoregistry.GlobalFiles)
	if err != nil {
		panic("gophauth.v1: invalid descriptor: " + err.Error())
	}
	msgs := fd.Messages()
	registerRequestDesc = msgs.ByName("RegisterRequest")
	loginRequestDesc = msgs.ByName("LoginRequest")
	authResponseDesc = msgs.ByName("AuthResponse")
	profileResponseDesc = msgs.ByName("ProfileResponse")
	dashboardResponseDesc = msgs.ByName("DashboardResponse")
}

func ptr[T any](v T) *T { return &v }

// message declares a proto3 message whose fields are all strings, numbered
// from 1 in the order given.
func message(name string, fields ...string) *descriptorpb.DescriptorProto {
	m := &descriptorpb.DescriptorProto{Name: ptr(name)}
	for i, f := range fields {
		m.Field = append(m.Field, &descriptorpb.FieldDescriptorProto{
			Name:   ptr(f),
			Number: ptr(int32(i + 1)),
			Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
			Type:   descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
		})
	}
	return m
}

func lazy(m **dynamicpb.Message, d protoreflect.MessageDescriptor) protoreflect.Message {
	if *m == nil {
		*m = dynamicpb.NewMessage(d)
	}
	return *m
}

func get(m protoreflect.Message, name protoreflect.Name) string {
	return m.Get(m.Descriptor().Fields().ByName(name)).String()
}

func set(m protoreflect.Message, name protoreflect.Name, v string) {
	m.Set(m.Descriptor().Fields().ByName(name), protoreflect.ValueOfString(v))
}

// RegisterRequest is gophauth.v1.RegisterRequest.
type RegisterRequest struct{ msg *dynamicpb.Message }

func NewRegisterRequest(name, email, password, role string) *RegisterRequest {
	x := new(RegisterRequest)
	m := x.ProtoReflect()
	set(m, "name", name)
	set(m, "email", email)
	set(m, "password", password)
	set(m, "role", role)
	return x
}

func (x *RegisterRequest) ProtoReflect() protoreflect.Message {
	return lazy(&x.msg, registerRequestDesc)
}

func (x *RegisterRequest) GetName() string {
	if x == nil {
		return ""
	}
	return get(x.ProtoReflect(), "name")
}

func (x *RegisterRequest) GetEmail() string {
	if x == nil {
		return ""
	}
	return get(x.ProtoReflect(), "email")
}

func (x *RegisterRequest) GetPassword() string {
	if x == nil {
		return ""
	}
	return get(x.ProtoReflect(), "password")
}

func (x *RegisterRequest) GetRole() string {
	if x == nil {
		return ""
	}
	return get(x.ProtoReflect(), "role")
}

// LoginRequest is gophauth.v1.LoginRequest.
type LoginRequest struct{ msg *dynamicpb.Message }

func NewLoginRequest(email, password string) *LoginRequest {
	x := new(LoginRequest)
	m := x.ProtoReflect()
	set(m, "email", email)
	set(m, "password", password)
	return x
}

func (x *LoginRequest) ProtoReflect() protoreflect.Message {
	return lazy(&x.msg, loginRequestDesc)
}

func (x *LoginRequest) GetEmail() string {
	if x == nil {
		return ""
	}
	return get(x.ProtoReflect(), "email")
}

func (x *LoginRequest) GetPassword() string {
	if x == nil {
		return ""
	}
	return get(x.ProtoReflect(), "password")
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct{ msg *dynamicpb.Message }

func NewAuthResponse(token, message string) *AuthResponse {
	x := new(AuthResponse)
	m := x.ProtoReflect()
	set(m, "token", token)
	set(m, "message", message)
	return x
}

func (x *AuthResponse) ProtoReflect() protoreflect.Message {
	return lazy(&x.msg, authResponseDesc)
}

func (x *AuthResponse) GetToken() string {
	if x == nil {
		return ""
	}
	return get(x.ProtoReflect(), "token")
}

func (x *AuthResponse) GetMessage() string {
	if x == nil {
		return ""
	}
	return get(x.ProtoReflect(), "message")
}

// ProfileResponse is gophauth.v1.ProfileResponse.
type ProfileResponse struct{ msg *dynamicpb.Message }

func NewProfileResponse(email, role, message string) *ProfileResponse {
	x := new(ProfileResponse)
	m := x.ProtoReflect()
	set(m, "email", email)
	set(m, "role", role)
	set(m, "message", message)
	return x
}

func (x *ProfileResponse) ProtoReflect() protoreflect.Message {
	return lazy(&x.msg, profileResponseDesc)
}

func (x *ProfileResponse) GetEmail() string {
	if x == nil {
		return ""
	}
	return get(x.ProtoReflect(), "email")
}

func (x *ProfileResponse) GetRole() string {
	if x == nil {
		return ""
	}
	return get(x.ProtoReflect(), "role")
}

func (x *ProfileResponse) GetMessage() string {
	if x == nil {
		return ""
	}
	return get(x.ProtoReflect(), "message")
}

// DashboardResponse is gophauth.v1.DashboardResponse.
type DashboardResponse struct{ msg *dynamicpb.Message }

func NewDashboardResponse(message, adminEmail string) *DashboardResponse {
	x := new(DashboardResponse)
	m := x.ProtoReflect()
	set(m, "message", message)
	set(m, "admin_email", adminEmail)
	return x
}

func (x *DashboardResponse) ProtoReflect() protoreflect.Message {
	return lazy(&x.msg, dashboardResponseDesc)
}

func (x *DashboardResponse) GetMessage() string {
	if x == nil {
		return ""
	}
	return get(x.ProtoReflect(), "message")
}

func (x *DashboardResponse) GetAdminEmail() string {
	if x == nil {
		return ""
	}
	return get(x.ProtoReflect(), "admin_email")
}
