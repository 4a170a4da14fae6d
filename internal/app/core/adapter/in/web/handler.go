package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-file-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-file-ledger/internal/app/core/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

const indexTemplate = "index.html"

// Page 側邊選單的一個項目
type Page struct {
	Path   string
	Title  string
	Button string
}

var pages = []Page{
	{Path: "create", Title: "Create Account", Button: "Create Account"},
	{Path: "deposit", Title: "Deposit Money", Button: "Deposit"},
	{Path: "withdraw", Title: "Withdraw Money", Button: "Withdraw"},
	{Path: "details", Title: "Show Details", Button: "Show"},
	{Path: "update", Title: "Update Details", Button: "Update"},
	{Path: "delete", Title: "Delete Account", Button: "Delete"},
}

// view 樣板資料
type view struct {
	Pages   []Page
	Page    Page
	Result  *usecase.Result
	Account *domain.AccountView
}

type createForm struct {
	Name  string `form:"name"`
	Age   int    `form:"age"`
	Email string `form:"email"`
	PIN   string `form:"pin"`
}

type credentialsForm struct {
	AccountNumber string `form:"account_no"`
	PIN           string `form:"pin"`
}

type amountForm struct {
	AccountNumber string `form:"account_no"`
	PIN           string `form:"pin"`
	Amount        string `form:"amount"`
}

type updateForm struct {
	AccountNumber string `form:"account_no"`
	PIN           string `form:"pin"`
	Name          string `form:"name"`
	Email         string `form:"email"`
	NewPIN        string `form:"new_pin"`
}

// Handler 表單介面，只負責收集欄位與顯示結果
type Handler struct {
	core usecase.AccountService
}

func NewHandler(core usecase.AccountService) *Handler {
	return &Handler{core: core}
}

// NewRouter 建立掛好樣板與路由的 gin Engine
func NewRouter(core usecase.AccountService, middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware...)
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(template.FuncMap{
		"amount": usecase.FormatAmount,
	}).ParseFS(templateFS, "templates/*.html")))

	h := NewHandler(core)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/"+pages[0].Path)
	})
	for _, p := range pages {
		r.GET("/"+p.Path, h.form(p))
	}
	r.POST("/create", h.CreateAccount)
	r.POST("/deposit", h.Deposit)
	r.POST("/withdraw", h.Withdraw)
	r.POST("/details", h.ShowDetails)
	r.POST("/update", h.UpdateDetails)
	r.POST("/delete", h.DeleteAccount)
	return r
}

func (h *Handler) form(p Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, indexTemplate, view{Pages: pages, Page: p})
	}
}

func (h *Handler) CreateAccount(c *gin.Context) {
	var req createForm
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, "create", "Invalid form input.")
		return
	}
	account, err := h.core.CreateAccount(c.Request.Context(), usecase.CreateAccountCommand{
		Name:  req.Name,
		Age:   req.Age,
		Email: req.Email,
		PIN:   req.PIN,
	})
	if err != nil {
		h.failure(c, "create", err)
		return
	}
	h.render(c, http.StatusCreated, "create", usecase.Created(account), &account)
}

func (h *Handler) Deposit(c *gin.Context) {
	var req amountForm
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, "deposit", "Invalid form input.")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.badRequest(c, "deposit", "Amount must be a number.")
		return
	}
	balance, err := h.core.Deposit(c.Request.Context(), usecase.DepositCommand{
		AccountNumber: req.AccountNumber,
		PIN:           req.PIN,
		Amount:        amount,
	})
	if err != nil {
		h.failure(c, "deposit", err)
		return
	}
	h.render(c, http.StatusOK, "deposit", usecase.Deposited(amount, balance), nil)
}

func (h *Handler) Withdraw(c *gin.Context) {
	var req amountForm
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, "withdraw", "Invalid form input.")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.badRequest(c, "withdraw", "Amount must be a number.")
		return
	}
	balance, err := h.core.Withdraw(c.Request.Context(), usecase.WithdrawCommand{
		AccountNumber: req.AccountNumber,
		PIN:           req.PIN,
		Amount:        amount,
	})
	if err != nil {
		h.failure(c, "withdraw", err)
		return
	}
	h.render(c, http.StatusOK, "withdraw", usecase.Withdrawn(amount, balance), nil)
}

func (h *Handler) ShowDetails(c *gin.Context) {
	var req credentialsForm
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, "details", "Invalid form input.")
		return
	}
	account, err := h.core.Authenticate(c.Request.Context(), req.AccountNumber, req.PIN)
	if err != nil {
		h.failure(c, "details", err)
		return
	}
	h.render(c, http.StatusOK, "details", usecase.Result{}, &account)
}

func (h *Handler) UpdateDetails(c *gin.Context) {
	var req updateForm
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, "update", "Invalid form input.")
		return
	}
	err := h.core.UpdateDetails(c.Request.Context(), usecase.UpdateDetailsCommand{
		AccountNumber: req.AccountNumber,
		PIN:           req.PIN,
		Name:          req.Name,
		Email:         req.Email,
		NewPIN:        req.NewPIN,
	})
	if err != nil {
		h.failure(c, "update", err)
		return
	}
	h.render(c, http.StatusOK, "update", usecase.Updated(), nil)
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	var req credentialsForm
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, "delete", "Invalid form input.")
		return
	}
	if err := h.core.DeleteAccount(c.Request.Context(), req.AccountNumber, req.PIN); err != nil {
		h.failure(c, "delete", err)
		return
	}
	h.render(c, http.StatusOK, "delete", usecase.Deleted(), nil)
}

func (h *Handler) render(c *gin.Context, code int, path string, result usecase.Result, account *domain.AccountView) {
	v := view{Pages: pages, Page: pageFor(path), Account: account}
	if result.Message != "" {
		v.Result = &result
	}
	c.HTML(code, indexTemplate, v)
}

func (h *Handler) badRequest(c *gin.Context, path, message string) {
	h.render(c, http.StatusBadRequest, path, usecase.Result{Message: message}, nil)
}

func (h *Handler) failure(c *gin.Context, path string, err error) {
	h.render(c, statusFor(err), path, usecase.Failure(err), nil)
}

// statusFor 依錯誤種類決定 HTTP 狀態碼
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNoChangeRequested):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAccountNumberExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func pageFor(path string) Page {
	for _, p := range pages {
		if p.Path == path {
			return p
		}
	}
	return pages[0]
}
