package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-file-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-file-ledger/internal/app/core/usecase"
)

// Console 是文字選單的前端，只負責收集欄位與顯示結果
type Console struct {
	core usecase.AccountService
	in   *bufio.Scanner
	out  io.Writer
}

func NewConsole(core usecase.AccountService, in io.Reader, out io.Writer) *Console {
	return &Console{
		core: core,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

var menu = []string{
	"Press 1 for creating an account",
	"Press 2 for depositing the money in the account",
	"Press 3 for withdrawing the money from the account",
	"Press 4 for details",
	"Press 5 for updating the details",
	"Press 6 for deleting the account",
	"Press 0 to exit",
}

// Run 重複顯示選單直到使用者選擇離開或輸入結束 (EOF)
func (c *Console) Run(ctx context.Context) error {
	for {
		for _, line := range menu {
			fmt.Fprintln(c.out, line)
		}
		choice, ok := c.prompt("Tell your response: ")
		if !ok {
			return c.in.Err()
		}

		switch choice {
		case "1":
			c.createAccount(ctx)
		case "2":
			c.deposit(ctx)
		case "3":
			c.withdraw(ctx)
		case "4":
			c.showDetails(ctx)
		case "5":
			c.updateDetails(ctx)
		case "6":
			c.deleteAccount(ctx)
		case "0", "q", "exit":
			fmt.Fprintln(c.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintf(c.out, "Unknown option %q.\n", choice)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(c.out)
	}
}

func (c *Console) createAccount(ctx context.Context) {
	name, _ := c.prompt("Enter your name: ")
	ageText, _ := c.prompt("Enter your age: ")
	email, _ := c.prompt("Enter your email: ")
	pin, _ := c.prompt("Enter your 4 number pin: ")

	age, err := strconv.Atoi(ageText)
	if err != nil {
		c.show(usecase.Result{Message: "Age must be a whole number."})
		return
	}
	view, err := c.core.CreateAccount(ctx, usecase.CreateAccountCommand{Name: name, Age: age, Email: email, PIN: pin})
	if err != nil {
		c.show(usecase.Failure(err))
		return
	}
	c.show(usecase.Created(view))
	c.printAccount(view)
}

func (c *Console) deposit(ctx context.Context) {
	accountNo, pin := c.credentials()
	amount, ok := c.amount("Enter the amount you want to deposit: ")
	if !ok {
		return
	}
	balance, err := c.core.Deposit(ctx, usecase.DepositCommand{AccountNumber: accountNo, PIN: pin, Amount: amount})
	if err != nil {
		c.show(usecase.Failure(err))
		return
	}
	c.show(usecase.Deposited(amount, balance))
}

func (c *Console) withdraw(ctx context.Context) {
	accountNo, pin := c.credentials()
	amount, ok := c.amount("Enter the amount you want to withdraw: ")
	if !ok {
		return
	}
	balance, err := c.core.Withdraw(ctx, usecase.WithdrawCommand{AccountNumber: accountNo, PIN: pin, Amount: amount})
	if err != nil {
		c.show(usecase.Failure(err))
		return
	}
	c.show(usecase.Withdrawn(amount, balance))
}

func (c *Console) showDetails(ctx context.Context) {
	accountNo, pin := c.credentials()
	view, err := c.core.Authenticate(ctx, accountNo, pin)
	if err != nil {
		c.show(usecase.Failure(err))
		return
	}
	c.printAccount(view)
}

func (c *Console) updateDetails(ctx context.Context) {
	accountNo, pin := c.credentials()
	fmt.Fprintln(c.out, "Leave a field empty to keep it unchanged.")
	name, _ := c.prompt("New name: ")
	email, _ := c.prompt("New email: ")
	newPIN, _ := c.prompt("New 4 number pin: ")

	err := c.core.UpdateDetails(ctx, usecase.UpdateDetailsCommand{
		AccountNumber: accountNo,
		PIN:           pin,
		Name:          name,
		Email:         email,
		NewPIN:        newPIN,
	})
	if err != nil {
		c.show(usecase.Failure(err))
		return
	}
	c.show(usecase.Updated())
}

func (c *Console) deleteAccount(ctx context.Context) {
	accountNo, pin := c.credentials()
	confirm, _ := c.prompt("Type y to confirm deletion: ")
	if !strings.EqualFold(confirm, "y") {
		fmt.Fprintln(c.out, "Deletion cancelled.")
		return
	}
	if err := c.core.DeleteAccount(ctx, accountNo, pin); err != nil {
		c.show(usecase.Failure(err))
		return
	}
	c.show(usecase.Deleted())
}

func (c *Console) credentials() (string, string) {
	accountNo, _ := c.prompt("Enter your account number: ")
	pin, _ := c.prompt("Enter your pin: ")
	return accountNo, pin
}

func (c *Console) amount(label string) (decimal.Decimal, bool) {
	text, _ := c.prompt(label)
	amount, err := decimal.NewFromString(text)
	if err != nil {
		c.show(usecase.Result{Message: "Amount must be a number."})
		return decimal.Zero, false
	}
	return amount, true
}

// prompt 顯示提示並讀取一行，輸入結束時 ok 為 false
func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) show(result usecase.Result) {
	if result.Success {
		fmt.Fprintln(c.out, result.Message)
		return
	}
	fmt.Fprintln(c.out, "Error: "+result.Message)
}

func (c *Console) printAccount(view domain.AccountView) {
	fmt.Fprintf(c.out, "name : %s\n", view.Name)
	fmt.Fprintf(c.out, "age : %d\n", view.Age)
	fmt.Fprintf(c.out, "email : %s\n", view.Email)
	fmt.Fprintf(c.out, "accountNo : %s\n", view.AccountNumber)
	fmt.Fprintf(c.out, "balance : %s\n", usecase.FormatAmount(view.Balance))
}
