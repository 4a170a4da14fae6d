package grpc

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JoeShih716/go-file-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-file-ledger/internal/app/core/usecase"
)

// RemoteError 伺服器回傳的業務錯誤 (Success=false)
//
// Unwrap 會還原成對應的 domain 錯誤，因此 errors.Is 與 usecase.ErrorMessage 在遠端呼叫時行為一致。
type RemoteError struct {
	Code    string
	Message string
	RefID   string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return errorForCode(e.Code)
}

// Client 透過 gRPC 呼叫 LedgerService，實作 usecase.AccountService
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) CreateAccount(ctx context.Context, cmd usecase.CreateAccountCommand) (domain.AccountView, error) {
	resp, err := c.invoke(ctx, "CreateAccount", map[string]any{
		"name":  cmd.Name,
		"age":   cmd.Age,
		"email": cmd.Email,
		"pin":   cmd.PIN,
	})
	if err != nil {
		return domain.AccountView{}, err
	}
	return accountView(resp)
}

func (c *Client) Authenticate(ctx context.Context, accountNumber, pin string) (domain.AccountView, error) {
	resp, err := c.invoke(ctx, "Authenticate", map[string]any{
		"account_no": accountNumber,
		"pin":        pin,
	})
	if err != nil {
		return domain.AccountView{}, err
	}
	return accountView(resp)
}

func (c *Client) Deposit(ctx context.Context, cmd usecase.DepositCommand) (decimal.Decimal, error) {
	resp, err := c.invoke(ctx, "Deposit", map[string]any{
		"account_no": cmd.AccountNumber,
		"pin":        cmd.PIN,
		"amount":     cmd.Amount.String(),
	})
	if err != nil {
		return decimal.Zero, err
	}
	return balance(resp)
}

func (c *Client) Withdraw(ctx context.Context, cmd usecase.WithdrawCommand) (decimal.Decimal, error) {
	resp, err := c.invoke(ctx, "Withdraw", map[string]any{
		"account_no": cmd.AccountNumber,
		"pin":        cmd.PIN,
		"amount":     cmd.Amount.String(),
	})
	if err != nil {
		return decimal.Zero, err
	}
	return balance(resp)
}

func (c *Client) UpdateDetails(ctx context.Context, cmd usecase.UpdateDetailsCommand) error {
	_, err := c.invoke(ctx, "UpdateDetails", map[string]any{
		"account_no": cmd.AccountNumber,
		"pin":        cmd.PIN,
		"name":       cmd.Name,
		"email":      cmd.Email,
		"new_pin":    cmd.NewPIN,
	})
	return err
}

func (c *Client) DeleteAccount(ctx context.Context, accountNumber, pin string) error {
	_, err := c.invoke(ctx, "DeleteAccount", map[string]any{
		"account_no": accountNumber,
		"pin":        pin,
	})
	return err
}

// invoke 附上新的 ref_id 後呼叫遠端方法，Success=false 時回傳 *RemoteError
func (c *Client) invoke(ctx context.Context, method string, fields map[string]any) (*structpb.Struct, error) {
	fields["ref_id"] = uuid.NewString()
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, req, resp); err != nil {
		return nil, err
	}
	if !resp.GetFields()["success"].GetBoolValue() {
		return nil, &RemoteError{
			Code:    stringField(resp, "code"),
			Message: stringField(resp, "message"),
			RefID:   stringField(resp, "ref_id"),
		}
	}
	return resp, nil
}

func accountView(resp *structpb.Struct) (domain.AccountView, error) {
	account := resp.GetFields()["account"].GetStructValue()
	if account == nil {
		return domain.AccountView{}, fmt.Errorf("response missing account")
	}
	bal, err := decimal.NewFromString(stringField(account, "balance"))
	if err != nil {
		return domain.AccountView{}, fmt.Errorf("parse balance: %w", err)
	}
	return domain.AccountView{
		Name:          stringField(account, "name"),
		Age:           intField(account, "age"),
		Email:         stringField(account, "email"),
		AccountNumber: stringField(account, "account_no"),
		Balance:       bal,
	}, nil
}

func balance(resp *structpb.Struct) (decimal.Decimal, error) {
	bal, err := decimal.NewFromString(stringField(resp, "balance"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse balance: %w", err)
	}
	return bal, nil
}

var _ usecase.AccountService = (*Client)(nil)
