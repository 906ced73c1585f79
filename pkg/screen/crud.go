package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bookhub/admin-client/pkg/bookhub"
)

// ModalState is which editor, if any, is open.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalCreate
	ModalEdit
)

func (m ModalState) String() string {
	switch m {
	case ModalClosed:
		return "closed"
	case ModalCreate:
		return "create"
	case ModalEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// ErrListStale wraps a refresh failure that follows a successful mutation.
// The mutation itself was applied.
var ErrListStale = errors.New("saved, but the list could not be refreshed")

// Refresher is the list a coordinator keeps current.
type Refresher interface {
	Refresh(ctx context.Context) error
	RefreshAfterRemoval(ctx context.Context) error
}

// Mutations are the remote calls behind a coordinator. A nil entry makes the
// matching operation fail with bookhub.ErrOperationNotAllowed.
type Mutations[K comparable, D any, C any, U any] struct {
	Detail func(ctx context.Context, token string, id K) (*bookhub.Envelope[D], error)
	Create func(ctx context.Context, token string, form *C) (*bookhub.Status, error)
	Update func(ctx context.Context, token string, id K, form *U) (*bookhub.Status, error)
	Remove func(ctx context.Context, token string, id K) (*bookhub.Status, error)
}

// CoordinatorState is a point-in-time copy of a coordinator.
type CoordinatorState[K comparable, D any] struct {
	Modal      ModalState `json:"modal"                 yaml:"modal"`
	SelectedID *K         `json:"selected_id,omitempty" yaml:"selected_id,omitempty"`
	Detail     *D         `json:"detail,omitempty"      yaml:"detail,omitempty"`
	// Message is the last failure shown in the open modal.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	// Notice is the server message of the last successful mutation.
	Notice string `json:"notice,omitempty" yaml:"notice,omitempty"`
}

// Coordinator runs create, update and remove round trips for one resource
// and refreshes its list after every success.
type Coordinator[K comparable, D any, C any, U any] struct {
	mu          sync.Mutex
	resource    string
	mutations   Mutations[K, D, C, U]
	list        Refresher
	credentials bookhub.CredentialProvider
	logger      bookhub.Logger

	modal      ModalState
	selectedID *K
	detail     *D
	message    string
	notice     string
}

// NewCoordinator creates a coordinator whose successes refresh list.
func NewCoordinator[K comparable, D any, C any, U any](resource string, mutations Mutations[K, D, C, U], list Refresher, credentials bookhub.CredentialProvider, opts ...Option) *Coordinator[K, D, C, U] {
	built := buildOptions(opts)

	return &Coordinator[K, D, C, U]{
		resource:    resource,
		mutations:   mutations,
		list:        list,
		credentials: credentials,
		logger:      built.logger,
	}
}

// OpenCreate opens an empty create editor.
func (c *Coordinator[K, D, C, U]) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.modal = ModalCreate
	c.selectedID = nil
	c.detail = nil
	c.message = ""
}

// OpenEdit fetches the detail of id and opens the edit editor with it.
// On failure the modal state is left as it was.
func (c *Coordinator[K, D, C, U]) OpenEdit(ctx context.Context, id K) error {
	if c.mutations.Detail == nil {
		return c.unsupported("detail")
	}

	token, ok := c.credentials.Token(ctx)
	if !ok {
		return c.fail(bookhub.ErrLoginRequired)
	}

	envelope, err := c.mutations.Detail(ctx, token, id)
	if err != nil {
		c.logTransport("detail", err)

		return c.fail(bookhub.TransportFailure(err))
	}

	if !envelope.Succeeded() {
		c.logRemote("detail", codeOf(envelope))

		return c.fail(envelope.Err())
	}

	if envelope.Data == nil {
		return c.fail(bookhub.TransportFailure(fmt.Errorf("%s detail: %w", c.resource, bookhub.ErrEmptyEnvelope)))
	}

	c.OpenEditWith(id, *envelope.Data)

	return nil
}

// OpenEditWith opens the edit editor with a detail the caller already holds.
func (c *Coordinator[K, D, C, U]) OpenEditWith(id K, detail D) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.modal = ModalEdit
	c.selectedID = &id
	c.detail = &detail
	c.message = ""
}

// Close closes the editor and drops the selected detail.
func (c *Coordinator[K, D, C, U]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reset()
}

// SubmitCreate validates form and creates the record.
func (c *Coordinator[K, D, C, U]) SubmitCreate(ctx context.Context, form *C) error {
	if c.mutations.Create == nil {
		return c.unsupported("create")
	}

	return c.submit(ctx, "create", form, func(token string) (*bookhub.Status, error) {
		return c.mutations.Create(ctx, token, form)
	}, c.list.Refresh)
}

// SubmitUpdate validates form and updates record id.
func (c *Coordinator[K, D, C, U]) SubmitUpdate(ctx context.Context, id K, form *U) error {
	if c.mutations.Update == nil {
		return c.unsupported("update")
	}

	return c.submit(ctx, "update", form, func(token string) (*bookhub.Status, error) {
		return c.mutations.Update(ctx, token, id, form)
	}, c.list.Refresh)
}

// Hide removes record id from the list. Depending on the resource the
// server hides or deletes it; either way the list is rebalanced afterwards.
func (c *Coordinator[K, D, C, U]) Hide(ctx context.Context, id K) error {
	if c.mutations.Remove == nil {
		return c.unsupported("remove")
	}

	return c.submit(ctx, "remove", nil, func(token string) (*bookhub.Status, error) {
		return c.mutations.Remove(ctx, token, id)
	}, c.list.RefreshAfterRemoval)
}

// Delete is Hide for resources the server deletes outright.
func (c *Coordinator[K, D, C, U]) Delete(ctx context.Context, id K) error {
	return c.Hide(ctx, id)
}

// Snapshot returns a copy of the coordinator state.
func (c *Coordinator[K, D, C, U]) Snapshot() CoordinatorState[K, D] {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := CoordinatorState[K, D]{
		Modal:   c.modal,
		Message: c.message,
		Notice:  c.notice,
	}

	if c.selectedID != nil {
		id := *c.selectedID
		state.SelectedID = &id
	}

	if c.detail != nil {
		detail := *c.detail
		state.Detail = &detail
	}

	return state
}

func (c *Coordinator[K, D, C, U]) submit(ctx context.Context, action string, form interface{}, call func(token string) (*bookhub.Status, error), refresh func(context.Context) error) error {
	token, ok := c.credentials.Token(ctx)
	if !ok {
		return c.fail(bookhub.ErrLoginRequired)
	}

	if form != nil {
		err := ValidateForm(form)
		if err != nil {
			return c.fail(err)
		}
	}

	envelope, err := call(token)
	if err != nil {
		c.logTransport(action, err)

		return c.fail(bookhub.TransportFailure(err))
	}

	if !envelope.Succeeded() {
		c.logRemote(action, codeOf(envelope))

		return c.fail(envelope.Err())
	}

	c.mu.Lock()
	c.reset()
	c.notice = envelope.Message
	c.mu.Unlock()

	c.logger.Info("mutation succeeded", map[string]interface{}{
		"resource": c.resource,
		"action":   action,
	})

	err = refresh(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrListStale, err)
	}

	return nil
}

func (c *Coordinator[K, D, C, U]) reset() {
	c.modal = ModalClosed
	c.selectedID = nil
	c.detail = nil
	c.message = ""
}

func (c *Coordinator[K, D, C, U]) fail(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.message = bookhub.DisplayMessage(err)

	return err
}

func (c *Coordinator[K, D, C, U]) unsupported(action string) error {
	return fmt.Errorf("%s %s: %w", c.resource, action, bookhub.ErrOperationNotAllowed)
}

func (c *Coordinator[K, D, C, U]) logTransport(action string, err error) {
	c.logger.Error("mutation failed", map[string]interface{}{
		"resource": c.resource,
		"action":   action,
		"error":    err.Error(),
	})
}

func (c *Coordinator[K, D, C, U]) logRemote(action, code string) {
	c.logger.Warn("mutation rejected", map[string]interface{}{
		"resource": c.resource,
		"action":   action,
		"code":     code,
	})
}
