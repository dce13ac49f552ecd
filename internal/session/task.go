package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vitalrecife/storefront/internal/dto"
	"github.com/vitalrecife/storefront/internal/services"
)

var (
	ErrTaskInFlight  = errors.New("an authentication request is already in progress")
	ErrTaskDiscarded = errors.New("authentication result discarded")
)

type TaskKind string

const (
	TaskLogin    TaskKind = "login"
	TaskRegister TaskKind = "register"
)

// Pending is a handle on a simulated login or registration.
type Pending struct {
	kind    TaskKind
	id      uint64
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
	applied bool
}

func (p *Pending) Kind() TaskKind { return p.kind }

// Done is closed once the task has finished or been discarded.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Err is only meaningful after Done is closed.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Applied reports whether the result reached the session.
func (p *Pending) Applied() bool {
	select {
	case <-p.done:
		return p.applied
	default:
		return false
	}
}

// Wait blocks until the task finishes or ctx ends. Giving up waiting does
// not cancel the task.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Busy reports whether a submit should be disabled.
func (c *Controller) Busy() (bool, TaskKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.task == nil {
		return false, ""
	}
	return true, c.task.kind
}

// BeginLogin validates the form and starts the simulated login. Form
// errors are returned synchronously and start nothing.
func (c *Controller) BeginLogin(req *dto.LoginRequest) (*Pending, error) {
	if err := services.ValidateLogin(req); err != nil {
		return nil, err
	}
	r := *req
	return c.begin(TaskLogin, func(ctx context.Context) (*services.AuthResult, error) {
		return c.auth.Login(ctx, &r)
	})
}

// BeginRegister validates the form and starts the simulated registration.
func (c *Controller) BeginRegister(req *dto.RegisterRequest) (*Pending, error) {
	if err := services.ValidateRegister(req); err != nil {
		return nil, err
	}
	r := *req
	return c.begin(TaskRegister, func(ctx context.Context) (*services.AuthResult, error) {
		return c.auth.Register(ctx, &r)
	})
}

// CancelPending abandons the in-flight task, if any.
func (c *Controller) CancelPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelTaskLocked()
}

func (c *Controller) begin(kind TaskKind, run func(ctx context.Context) (*services.AuthResult, error)) (*Pending, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	if c.task != nil {
		return nil, ErrTaskInFlight
	}
	ctx, cancel := context.WithCancel(c.base)
	c.seq++
	p := &Pending{kind: kind, id: c.seq, cancel: cancel, done: make(chan struct{})}
	c.task = p
	go c.run(ctx, p, run)
	return p, nil
}

func (c *Controller) run(ctx context.Context, p *Pending, run func(ctx context.Context) (*services.AuthResult, error)) {
	defer close(p.done)
	defer p.cancel()

	res, err := run(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.task == p
	if current {
		c.task = nil
	}
	switch {
	case err != nil:
		p.err = err
		if current && !errors.Is(err, context.Canceled) {
			slog.Error("authentication task failed", "action", string(p.kind), "error", err)
			c.pushLocked(NoticeError, services.NoticeMessage(err))
		}
		return
	case !current || ctx.Err() != nil:
		p.err = ErrTaskDiscarded
		return
	}

	c.signInLocked(res.User, res.PasswordHash)
	p.applied = true
	c.pushLocked(NoticeSuccess, welcomeMessage(p.kind, res))
}

func welcomeMessage(kind TaskKind, res *services.AuthResult) string {
	if kind == TaskLogin {
		return fmt.Sprintf("Bem-vindo de volta, %s!", res.User.Name)
	}
	if res.UsedReferralCode != "" {
		return fmt.Sprintf("Cadastro realizado! Você ganhou %d pontos por usar o código %s!",
			services.ReferralSignupBonus, res.UsedReferralCode)
	}
	return fmt.Sprintf("Bem-vindo, %s! Seu código de indicação é %s", res.User.Name, res.User.ReferralCode)
}

func (c *Controller) cancelTaskLocked() bool {
	if c.task == nil {
		return false
	}
	c.task.cancel()
	c.task = nil
	return true
}
