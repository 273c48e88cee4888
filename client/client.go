// Package client is a Go client for the bank records HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Ptt-Alertor/bank-api/models/bank"
	"github.com/Ptt-Alertor/bank-api/models/user"
)

// Error is returned for every non-2xx response
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("bank api: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}

// IsInsufficientFunds reports whether err is a rejected withdrawal
func IsInsufficientFunds(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == http.StatusBadRequest && e.Message == bank.ErrInsufficientFunds.Error()
}

// Client talks to one API base URL
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client. A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// ListBanks returns every account
func (c *Client) ListBanks(ctx context.Context) ([]*bank.Account, error) {
	var accounts []*bank.Account
	err := c.do(ctx, http.MethodGet, "/banks", nil, nil, &accounts)
	return accounts, err
}

// GetBank returns the account with the given number
func (c *Client) GetBank(ctx context.Context, accountNumber int64) (*bank.Account, error) {
	var a bank.Account
	if err := c.do(ctx, http.MethodGet, bankPath(accountNumber), nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListBanksByEmail returns every account registered with email
func (c *Client) ListBanksByEmail(ctx context.Context, email string) ([]*bank.Account, error) {
	var accounts []*bank.Account
	err := c.do(ctx, http.MethodGet, "/banks/email/"+url.PathEscape(email), nil, nil, &accounts)
	return accounts, err
}

// CreateBank stores a new account
func (c *Client) CreateBank(ctx context.Context, a bank.Account) (*bank.Account, error) {
	return c.account(ctx, http.MethodPost, "/banks", nil, a)
}

// ReplaceBank overwrites an account with a
func (c *Client) ReplaceBank(ctx context.Context, accountNumber int64, a bank.Account) (*bank.Account, error) {
	return c.account(ctx, http.MethodPut, bankPath(accountNumber), nil, a)
}

// PatchBank updates only the fields set in p
func (c *Client) PatchBank(ctx context.Context, accountNumber int64, p bank.AccountPatch) (*bank.Account, error) {
	return c.account(ctx, http.MethodPatch, bankPath(accountNumber), nil, patchBody(p))
}

// DeleteBank removes an account and returns it
func (c *Client) DeleteBank(ctx context.Context, accountNumber int64) (*bank.Account, error) {
	return c.account(ctx, http.MethodDelete, bankPath(accountNumber), nil, nil)
}

// Deposit adds amount to the balance
func (c *Client) Deposit(ctx context.Context, accountNumber int64, amount float64) (*bank.Account, error) {
	return c.account(ctx, http.MethodPut, bankPath(accountNumber)+"/deposit", amountQuery(amount), nil)
}

// Withdraw subtracts amount from the balance
func (c *Client) Withdraw(ctx context.Context, accountNumber int64, amount float64) (*bank.Account, error) {
	return c.account(ctx, http.MethodPut, bankPath(accountNumber)+"/withdraw", amountQuery(amount), nil)
}

// SetBalance sets the balance to amount
func (c *Client) SetBalance(ctx context.Context, accountNumber int64, amount float64) (*bank.Account, error) {
	return c.account(ctx, http.MethodPatch, bankPath(accountNumber)+"/balance", amountQuery(amount), nil)
}

// CreateUser stores a new user profile
func (c *Client) CreateUser(ctx context.Context, u user.User) (*user.User, error) {
	var created user.User
	if err := c.do(ctx, http.MethodPost, "/user", nil, u, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListUsers returns every user profile
func (c *Client) ListUsers(ctx context.Context) ([]*user.User, error) {
	var users []*user.User
	err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users)
	return users, err
}

// GetUserByEmail returns the first user with email
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := c.do(ctx, http.MethodGet, "/users/email/"+url.PathEscape(email), nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) account(ctx context.Context, method, path string, query url.Values, body interface{}) (*bank.Account, error) {
	var a bank.Account
	if err := c.do(ctx, method, path, query, body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if json.Unmarshal(b, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(b))
		}
		return &Error{StatusCode: resp.StatusCode, Message: e.Error}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func bankPath(accountNumber int64) string {
	return "/banks/" + strconv.FormatInt(accountNumber, 10)
}

func amountQuery(amount float64) url.Values {
	return url.Values{"amount": {strconv.FormatFloat(amount, 'f', -1, 64)}}
}

// patchBody renders only the set fields of p
func patchBody(p bank.AccountPatch) map[string]interface{} {
	m := map[string]interface{}{}
	if v, ok := p.Name.Get(); ok {
		m["name"] = v
	}
	if v, ok := p.Address.Get(); ok {
		m["address"] = v
	}
	if v, ok := p.Email.Get(); ok {
		m["email"] = v
	}
	if v, ok := p.AccountNumber.Get(); ok {
		m["account_number"] = v
	}
	if v, ok := p.Balance.Get(); ok {
		m["balance"] = v
	}
	if v, ok := p.IsActive.Get(); ok {
		m["is_active"] = v
	}
	if v, ok := p.TypeOfAccount.Get(); ok {
		m["type_of_account"] = v
	}
	return m
}
