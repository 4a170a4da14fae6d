package grpc

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JoeShih716/go-file-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-file-ledger/internal/app/core/usecase"
)

// ServiceName gRPC 服務名稱
const ServiceName = "ledger.v1.LedgerService"

// 回應中的 code 欄位
const (
	CodeOK         = "ok"
	CodeValidation = "validation"
)

// errorCodes 業務錯誤與 code 的對應，細分的錯誤必須排在 ErrValidation 之前
var errorCodes = []struct {
	code string
	err  error
}{
	{"authentication_failed", domain.ErrAuthenticationFailed},
	{"no_change", domain.ErrNoChangeRequested},
	{"underage", domain.ErrUnderage},
	{"invalid_pin", domain.ErrInvalidPIN},
	{"invalid_amount", domain.ErrInvalidAmount},
	{"deposit_limit_exceeded", domain.ErrDepositLimitExceeded},
	{"insufficient_balance", domain.ErrInsufficientBalance},
	{CodeValidation, domain.ErrValidation},
	{"account_number_exhausted", domain.ErrAccountNumberExhausted},
}

// ledgerServer 是 ServiceDesc 的 HandlerType
type ledgerServer interface {
	CreateAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Authenticate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Deposit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Withdraw(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateDetails(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// serviceDesc 手寫的服務描述，訊息一律使用 google.protobuf.Struct
var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ledgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateAccount", Handler: unaryHandler("CreateAccount", ledgerServer.CreateAccount)},
		{MethodName: "Authenticate", Handler: unaryHandler("Authenticate", ledgerServer.Authenticate)},
		{MethodName: "Deposit", Handler: unaryHandler("Deposit", ledgerServer.Deposit)},
		{MethodName: "Withdraw", Handler: unaryHandler("Withdraw", ledgerServer.Withdraw)},
		{MethodName: "UpdateDetails", Handler: unaryHandler("UpdateDetails", ledgerServer.UpdateDetails)},
		{MethodName: "DeleteAccount", Handler: unaryHandler("DeleteAccount", ledgerServer.DeleteAccount)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger/v1/ledger.proto",
}

func unaryHandler(method string, call func(ledgerServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ledgerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ledgerServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Register 將 GrpcServer 註冊到 gRPC Server
func Register(registrar grpc.ServiceRegistrar, server *GrpcServer) {
	registrar.RegisterService(&serviceDesc, server)
}

// LoggingInterceptor 記錄每個請求的方法、耗時與錯誤
func LoggingInterceptor(logger *log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			logger.Printf("grpc: %s failed in %v: %v", info.FullMethod, time.Since(start), err)
		} else {
			logger.Printf("grpc: %s done in %v", info.FullMethod, time.Since(start))
		}
		return resp, err
	}
}

type GrpcServer struct {
	core usecase.AccountService
}

func NewGrpcServer(core usecase.AccountService) *GrpcServer {
	return &GrpcServer{
		core: core,
	}
}

func (s *GrpcServer) CreateAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	refID, err := parseRefID(req)
	if err != nil {
		return invalidRequest(req, err)
	}
	age, err := ageField(req)
	if err != nil {
		return invalidRequest(req, err)
	}
	view, err := s.core.CreateAccount(ctx, usecase.CreateAccountCommand{
		Name:  stringField(req, "name"),
		Age:   age,
		Email: stringField(req, "email"),
		PIN:   stringField(req, "pin"),
	})
	if err != nil {
		return failure(refID, err)
	}
	return success(refID, usecase.Created(view), map[string]any{"account": accountFields(view)})
}

func (s *GrpcServer) Authenticate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	refID, err := parseRefID(req)
	if err != nil {
		return invalidRequest(req, err)
	}
	view, err := s.core.Authenticate(ctx, stringField(req, "account_no"), stringField(req, "pin"))
	if err != nil {
		return failure(refID, err)
	}
	return success(refID, usecase.Success("Authenticated."), map[string]any{"account": accountFields(view)})
}

func (s *GrpcServer) Deposit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	refID, err := parseRefID(req)
	if err != nil {
		return invalidRequest(req, err)
	}
	amount, err := amountField(req)
	if err != nil {
		return invalidRequest(req, err)
	}
	balance, err := s.core.Deposit(ctx, usecase.DepositCommand{
		AccountNumber: stringField(req, "account_no"),
		PIN:           stringField(req, "pin"),
		Amount:        amount,
	})
	if err != nil {
		return failure(refID, err)
	}
	return success(refID, usecase.Deposited(amount, balance), map[string]any{"balance": balance.String()})
}

func (s *GrpcServer) Withdraw(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	refID, err := parseRefID(req)
	if err != nil {
		return invalidRequest(req, err)
	}
	amount, err := amountField(req)
	if err != nil {
		return invalidRequest(req, err)
	}
	balance, err := s.core.Withdraw(ctx, usecase.WithdrawCommand{
		AccountNumber: stringField(req, "account_no"),
		PIN:           stringField(req, "pin"),
		Amount:        amount,
	})
	if err != nil {
		return failure(refID, err)
	}
	return success(refID, usecase.Withdrawn(amount, balance), map[string]any{"balance": balance.String()})
}

func (s *GrpcServer) UpdateDetails(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	refID, err := parseRefID(req)
	if err != nil {
		return invalidRequest(req, err)
	}
	err = s.core.UpdateDetails(ctx, usecase.UpdateDetailsCommand{
		AccountNumber: stringField(req, "account_no"),
		PIN:           stringField(req, "pin"),
		Name:          stringField(req, "name"),
		Email:         stringField(req, "email"),
		NewPIN:        stringField(req, "new_pin"),
	})
	if err != nil {
		return failure(refID, err)
	}
	return success(refID, usecase.Updated(), nil)
}

func (s *GrpcServer) DeleteAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	refID, err := parseRefID(req)
	if err != nil {
		return invalidRequest(req, err)
	}
	if err := s.core.DeleteAccount(ctx, stringField(req, "account_no"), stringField(req, "pin")); err != nil {
		return failure(refID, err)
	}
	return success(refID, usecase.Deleted(), nil)
}

// parseRefID 每個請求都必須帶 UUID 格式的 ref_id，回應會原樣帶回
func parseRefID(req *structpb.Struct) (string, error) {
	u, err := uuid.Parse(stringField(req, "ref_id"))
	if err != nil {
		return "", errors.New("invalid ref_id: " + err.Error())
	}
	return u.String(), nil
}

func stringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

func intField(req *structpb.Struct, key string) int {
	return int(req.GetFields()[key].GetNumberValue())
}

// ageField 年齡必須是整數，不接受小數、NaN 或 Inf；沒有提供時為 0
func ageField(req *structpb.Struct) (int, error) {
	v, ok := req.GetFields()["age"]
	if !ok {
		return 0, nil
	}
	kind, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, errors.New("age must be a number")
	}
	n := kind.NumberValue
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return 0, errors.New("age must be a whole number")
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, errors.New("age is out of range")
	}
	return int(n), nil
}

// amountField 金額可以是字串 ("12.50") 或數字
func amountField(req *structpb.Struct) (decimal.Decimal, error) {
	v, ok := req.GetFields()["amount"]
	if !ok {
		return decimal.Zero, errors.New("amount is required")
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		amount, err := decimal.NewFromString(kind.StringValue)
		if err != nil {
			return decimal.Zero, errors.New("invalid amount: " + err.Error())
		}
		return amount, nil
	case *structpb.Value_NumberValue:
		return decimal.NewFromFloat(kind.NumberValue), nil
	default:
		return decimal.Zero, errors.New("amount must be a string or number")
	}
}

func accountFields(view domain.AccountView) map[string]any {
	return map[string]any{
		"name":       view.Name,
		"age":        view.Age,
		"email":      view.Email,
		"account_no": view.AccountNumber,
		"balance":    view.Balance.String(),
	}
}

func success(refID string, result usecase.Result, fields map[string]any) (*structpb.Struct, error) {
	return newResponse(refID, CodeOK, result, fields)
}

// failure 業務邏輯錯誤回傳 Success=false (Soft Failure)，其餘錯誤回傳 gRPC status
func failure(refID string, err error) (*structpb.Struct, error) {
	code, ok := errorCode(err)
	if !ok {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return newResponse(refID, code, usecase.Failure(err), nil)
}

// invalidRequest 請求格式錯誤 (ref_id、amount)
func invalidRequest(req *structpb.Struct, err error) (*structpb.Struct, error) {
	return newResponse(stringField(req, "ref_id"), CodeValidation, usecase.Result{Message: err.Error()}, nil)
}

func newResponse(refID, code string, result usecase.Result, fields map[string]any) (*structpb.Struct, error) {
	m := map[string]any{
		"ref_id":  refID,
		"success": result.Success,
		"code":    code,
		"message": result.Message,
	}
	for k, v := range fields {
		m[k] = v
	}
	resp, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

func errorCode(err error) (string, bool) {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code, true
		}
	}
	return "", false
}

func errorForCode(code string) error {
	for _, ec := range errorCodes {
		if ec.code == code {
			return ec.err
		}
	}
	return nil
}

var _ ledgerServer = (*GrpcServer)(nil)
