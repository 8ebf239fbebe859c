// Package forms holds the draft state behind each submit surface: add item,
// edit item, login, register. A form validates required fields, invokes its
// backing operation exactly once per submit, and reconciles the outcome into
// a notification. Failed submits keep the draft so the user can retry.
package forms

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"stockview/internal/models"
	"stockview/internal/notify"
)

// ErrMissingCredentials is returned when a username or password is empty.
var ErrMissingCredentials = errors.New("username and password are required")

// Inventory is the subset of the inventory store the item forms submit to.
type Inventory interface {
	Add(ctx context.Context, draft *models.ItemDraft) (*models.InventoryRecord, error)
	Edit(ctx context.Context, id string, fields *models.ItemDraft) (*models.InventoryRecord, error)
}

// Authenticator is the subset of the API client the auth forms submit to.
type Authenticator interface {
	Login(ctx context.Context, creds *models.Credentials) (*models.LoginResponse, error)
	Register(ctx context.Context, details *models.Credentials) error
}

// SessionSink receives a successful login outcome.
type SessionSink interface {
	LoginSucceeded(ctx context.Context, token, username string) error
}

// ParseQuantity coerces raw quantity input into a non-negative integer.
// Malformed or negative input becomes 0; it is never rejected.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// AddItemForm holds the new-item draft.
type AddItemForm struct {
	mu    sync.Mutex
	draft models.ItemDraft

	inv      Inventory
	notifier notify.Notifier
}

func NewAddItemForm(inv Inventory, notifier notify.Notifier) *AddItemForm {
	return &AddItemForm{inv: inv, notifier: notifier}
}

// SetFields replaces the draft with the submitted values.
func (f *AddItemForm) SetFields(name, category, quantity string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = models.ItemDraft{
		Name:     name,
		Category: category,
		Quantity: ParseQuantity(quantity),
	}
}

// Draft returns the current draft for rendering.
func (f *AddItemForm) Draft() models.ItemDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Submit creates the drafted item. Success clears the draft; failure leaves
// it in place and surfaces the carried message.
func (f *AddItemForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	draft := f.draft
	f.mu.Unlock()

	if _, err := f.inv.Add(ctx, &draft); err != nil {
		f.notifier.Error(err.Error())
		return err
	}

	f.mu.Lock()
	f.draft = models.ItemDraft{}
	f.mu.Unlock()
	f.notifier.Success("Item added successfully!")
	return nil
}

// EditItemForm holds the draft for the record currently being edited.
type EditItemForm struct {
	mu     sync.Mutex
	id     string
	draft  models.ItemDraft
	active bool

	inv      Inventory
	notifier notify.Notifier
}

func NewEditItemForm(inv Inventory, notifier notify.Notifier) *EditItemForm {
	return &EditItemForm{inv: inv, notifier: notifier}
}

// Begin opens the form pre-filled from an existing record. Re-selecting the
// record already being edited keeps the in-progress draft.
func (f *EditItemForm) Begin(record models.InventoryRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active && f.id == record.ID {
		return
	}
	f.id = record.ID
	f.draft = models.ItemDraft{
		Name:     record.Name,
		Category: record.Category,
		Quantity: record.Quantity,
	}
	f.active = true
}

// Active reports whether an edit is in progress.
func (f *EditItemForm) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// ID returns the id of the record being edited.
func (f *EditItemForm) ID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id
}

// Draft returns the current draft for rendering.
func (f *EditItemForm) Draft() models.ItemDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// SetFields replaces the draft with the submitted values.
func (f *EditItemForm) SetFields(name, category, quantity string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = models.ItemDraft{
		Name:     name,
		Category: category,
		Quantity: ParseQuantity(quantity),
	}
}

// Submit applies the drafted edit. Success closes the form; failure keeps it
// open with the draft intact.
func (f *EditItemForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	id := f.id
	draft := f.draft
	f.mu.Unlock()

	if _, err := f.inv.Edit(ctx, id, &draft); err != nil {
		f.notifier.Error(err.Error())
		return err
	}

	f.mu.Lock()
	f.id = ""
	f.draft = models.ItemDraft{}
	f.active = false
	f.mu.Unlock()
	f.notifier.Success("Item updated successfully!")
	return nil
}

// LoginForm holds the credential draft for login.
type LoginForm struct {
	mu    sync.Mutex
	creds models.Credentials

	api      Authenticator
	session  SessionSink
	notifier notify.Notifier
}

func NewLoginForm(api Authenticator, session SessionSink, notifier notify.Notifier) *LoginForm {
	return &LoginForm{api: api, session: session, notifier: notifier}
}

func (f *LoginForm) SetFields(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creds = models.Credentials{Username: username, Password: password}
}

func (f *LoginForm) Username() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creds.Username
}

// Submit attempts the login. A success stores the token, greets the user and
// clears the draft; any failure keeps the draft and surfaces the message.
func (f *LoginForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	creds := f.creds
	f.mu.Unlock()

	if creds.Username == "" || creds.Password == "" {
		err := ErrMissingCredentials
		f.notifier.Error(err.Error())
		return err
	}

	resp, err := f.api.Login(ctx, &creds)
	if err != nil {
		f.notifier.Error(err.Error())
		return err
	}

	if err := f.session.LoginSucceeded(ctx, resp.Token, creds.Username); err != nil {
		f.notifier.Error(err.Error())
		return err
	}

	f.mu.Lock()
	f.creds = models.Credentials{}
	f.mu.Unlock()
	f.notifier.Success(fmt.Sprintf("Welcome back, %s!", creds.Username))
	return nil
}

// RegisterForm holds the credential draft for registration.
type RegisterForm struct {
	mu      sync.Mutex
	details models.Credentials

	api      Authenticator
	notifier notify.Notifier
}

func NewRegisterForm(api Authenticator, notifier notify.Notifier) *RegisterForm {
	return &RegisterForm{api: api, notifier: notifier}
}

func (f *RegisterForm) SetFields(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.details = models.Credentials{Username: username, Password: password}
}

func (f *RegisterForm) Username() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.details.Username
}

// Submit attempts the registration. Success clears the draft; failure keeps
// it and surfaces the carried message.
func (f *RegisterForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	details := f.details
	f.mu.Unlock()

	if details.Username == "" || details.Password == "" {
		err := ErrMissingCredentials
		f.notifier.Error(err.Error())
		return err
	}

	if err := f.api.Register(ctx, &details); err != nil {
		f.notifier.Error(err.Error())
		return err
	}

	f.mu.Lock()
	f.details = models.Credentials{}
	f.mu.Unlock()
	f.notifier.Success(fmt.Sprintf("Account created successfully! Please login, %s.", details.Username))
	return nil
}
