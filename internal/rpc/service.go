package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "healthmate.v1.ClinicService"

// Full method names, as seen by interceptors.
const (
	MethodLogin           = "/" + ServiceName + "/Login"
	MethodSignup          = "/" + ServiceName + "/Signup"
	MethodLogout          = "/" + ServiceName + "/Logout"
	MethodDashboard       = "/" + ServiceName + "/Dashboard"
	MethodBookAppointment = "/" + ServiceName + "/BookAppointment"
	MethodSelectPatient   = "/" + ServiceName + "/SelectPatient"
	MethodSaveDiagnosis   = "/" + ServiceName + "/SaveDiagnosis"
	MethodAddDoctor       = "/" + ServiceName + "/AddDoctor"
	MethodDeleteDoctor    = "/" + ServiceName + "/DeleteDoctor"
)

type ClinicServiceServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Signup(context.Context, *SignupRequest) (*SignupResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	Dashboard(context.Context, *DashboardRequest) (*DashboardResponse, error)
	BookAppointment(context.Context, *BookAppointmentRequest) (*AppointmentResponse, error)
	SelectPatient(context.Context, *SelectPatientRequest) (*SelectPatientResponse, error)
	SaveDiagnosis(context.Context, *SaveDiagnosisRequest) (*AppointmentResponse, error)
	AddDoctor(context.Context, *AddDoctorRequest) (*AddDoctorResponse, error)
	DeleteDoctor(context.Context, *DeleteDoctorRequest) (*DeleteDoctorResponse, error)
}

// UnimplementedClinicServiceServer can be embedded to satisfy
// ClinicServiceServer while only some methods are written.
type UnimplementedClinicServiceServer struct{}

func unimplemented(name string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", name)
}

func (UnimplementedClinicServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedClinicServiceServer) Signup(context.Context, *SignupRequest) (*SignupResponse, error) {
	return nil, unimplemented("Signup")
}
func (UnimplementedClinicServiceServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, unimplemented("Logout")
}
func (UnimplementedClinicServiceServer) Dashboard(context.Context, *DashboardRequest) (*DashboardResponse, error) {
	return nil, unimplemented("Dashboard")
}
func (UnimplementedClinicServiceServer) BookAppointment(context.Context, *BookAppointmentRequest) (*AppointmentResponse, error) {
	return nil, unimplemented("BookAppointment")
}
func (UnimplementedClinicServiceServer) SelectPatient(context.Context, *SelectPatientRequest) (*SelectPatientResponse, error) {
	return nil, unimplemented("SelectPatient")
}
func (UnimplementedClinicServiceServer) SaveDiagnosis(context.Context, *SaveDiagnosisRequest) (*AppointmentResponse, error) {
	return nil, unimplemented("SaveDiagnosis")
}
func (UnimplementedClinicServiceServer) AddDoctor(context.Context, *AddDoctorRequest) (*AddDoctorResponse, error) {
	return nil, unimplemented("AddDoctor")
}
func (UnimplementedClinicServiceServer) DeleteDoctor(context.Context, *DeleteDoctorRequest) (*DeleteDoctorResponse, error) {
	return nil, unimplemented("DeleteDoctor")
}

func RegisterClinicServiceServer(s grpc.ServiceRegistrar, srv ClinicServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary adapts a server method to a grpc.MethodDesc, running the
// interceptor chain when one is installed.
func unary[Req, Resp any](name string, call func(ClinicServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	full := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ClinicServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ClinicServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClinicServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Login", ClinicServiceServer.Login),
		unary("Signup", ClinicServiceServer.Signup),
		unary("Logout", ClinicServiceServer.Logout),
		unary("Dashboard", ClinicServiceServer.Dashboard),
		unary("BookAppointment", ClinicServiceServer.BookAppointment),
		unary("SelectPatient", ClinicServiceServer.SelectPatient),
		unary("SaveDiagnosis", ClinicServiceServer.SaveDiagnosis),
		unary("AddDoctor", ClinicServiceServer.AddDoctor),
		unary("DeleteDoctor", ClinicServiceServer.DeleteDoctor),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "healthmate/v1/clinic.proto",
}

type ClinicServiceClient interface {
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	Dashboard(ctx context.Context, in *DashboardRequest, opts ...grpc.CallOption) (*DashboardResponse, error)
	BookAppointment(ctx context.Context, in *BookAppointmentRequest, opts ...grpc.CallOption) (*AppointmentResponse, error)
	SelectPatient(ctx context.Context, in *SelectPatientRequest, opts ...grpc.CallOption) (*SelectPatientResponse, error)
	SaveDiagnosis(ctx context.Context, in *SaveDiagnosisRequest, opts ...grpc.CallOption) (*AppointmentResponse, error)
	AddDoctor(ctx context.Context, in *AddDoctorRequest, opts ...grpc.CallOption) (*AddDoctorResponse, error)
	DeleteDoctor(ctx context.Context, in *DeleteDoctorRequest, opts ...grpc.CallOption) (*DeleteDoctorResponse, error)
}

type clinicServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewClinicServiceClient returns a client that sends every call with the
// JSON content-subtype.
func NewClinicServiceClient(cc grpc.ClientConnInterface) ClinicServiceClient {
	return &clinicServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clinicServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *clinicServiceClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error) {
	return invoke[SignupResponse](ctx, c.cc, MethodSignup, in, opts)
}

func (c *clinicServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, MethodLogout, in, opts)
}

func (c *clinicServiceClient) Dashboard(ctx context.Context, in *DashboardRequest, opts ...grpc.CallOption) (*DashboardResponse, error) {
	return invoke[DashboardResponse](ctx, c.cc, MethodDashboard, in, opts)
}

func (c *clinicServiceClient) BookAppointment(ctx context.Context, in *BookAppointmentRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	return invoke[AppointmentResponse](ctx, c.cc, MethodBookAppointment, in, opts)
}

func (c *clinicServiceClient) SelectPatient(ctx context.Context, in *SelectPatientRequest, opts ...grpc.CallOption) (*SelectPatientResponse, error) {
	return invoke[SelectPatientResponse](ctx, c.cc, MethodSelectPatient, in, opts)
}

func (c *clinicServiceClient) SaveDiagnosis(ctx context.Context, in *SaveDiagnosisRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	return invoke[AppointmentResponse](ctx, c.cc, MethodSaveDiagnosis, in, opts)
}

func (c *clinicServiceClient) AddDoctor(ctx context.Context, in *AddDoctorRequest, opts ...grpc.CallOption) (*AddDoctorResponse, error) {
	return invoke[AddDoctorResponse](ctx, c.cc, MethodAddDoctor, in, opts)
}

func (c *clinicServiceClient) DeleteDoctor(ctx context.Context, in *DeleteDoctorRequest, opts ...grpc.CallOption) (*DeleteDoctorResponse, error) {
	return invoke[DeleteDoctorResponse](ctx, c.cc, MethodDeleteDoctor, in, opts)
}
