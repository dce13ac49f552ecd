// Package session holds the per-visitor navigation state: who is logged
// in, which page is shown, and the simulated auth tasks in flight.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vitalrecife/storefront/internal/dto"
	"github.com/vitalrecife/storefront/internal/loyalty"
	"github.com/vitalrecife/storefront/internal/models"
	"github.com/vitalrecife/storefront/internal/pages"
	"github.com/vitalrecife/storefront/internal/services"
)

var (
	ErrNoSession         = errors.New("no user logged in")
	ErrClosed            = errors.New("session closed")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrChallengeOpen     = errors.New("challenge not completed yet")
	ErrChallengeTaken    = errors.New("challenge reward already collected")
)

// State is the navigation state of one visitor.
type State struct {
	User              *models.User
	Page              pages.ID
	SelectedProductID *int
}

// Snapshot is a read-only copy handed to the views.
type Snapshot struct {
	User              *models.User
	Page              pages.ID
	Requested         pages.ID
	SelectedProductID *int
	Local             map[string]string
	Busy              bool
	PendingKind       TaskKind
	ChallengesTaken   map[int]bool
	Preferences       map[string]bool
}

// LoggedIn reports whether the snapshot carries a user.
func (s Snapshot) LoggedIn() bool { return s.User != nil }

// Authenticator produces users for the login and register flows.
type Authenticator interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*services.AuthResult, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*services.AuthResult, error)
}

// Controller serializes every action of one visitor behind a mutex.
type Controller struct {
	mu         sync.Mutex
	base       context.Context
	stop       context.CancelFunc
	auth       Authenticator
	state      State
	local      map[string]string
	notices    []Notice
	credential []byte
	taken      map[int]bool
	prefs      map[string]bool
	task       *Pending
	seq        uint64
	closed     bool
}

func NewController(ctx context.Context, auth Authenticator) *Controller {
	base, stop := context.WithCancel(ctx)
	return &Controller{
		base:  base,
		stop:  stop,
		auth:  auth,
		state: State{Page: pages.Default},
		local: make(map[string]string),
		taken: make(map[int]bool),
		prefs: make(map[string]bool),
	}
}

// Snapshot returns a deep copy of the state with the page resolved.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		User:            c.state.User.Clone(),
		Page:            pages.Resolve(c.state.Page, c.state.User != nil),
		Requested:       c.state.Page,
		Local:           make(map[string]string, len(c.local)),
		Busy:            c.task != nil,
		ChallengesTaken: make(map[int]bool, len(c.taken)),
		Preferences:     make(map[string]bool, len(c.prefs)),
	}
	if c.state.SelectedProductID != nil {
		id := *c.state.SelectedProductID
		s.SelectedProductID = &id
	}
	for k, v := range c.local {
		s.Local[k] = v
	}
	for k, v := range c.taken {
		s.ChallengesTaken[k] = v
	}
	for k, v := range c.prefs {
		s.Preferences[k] = v
	}
	if c.task != nil {
		s.PendingKind = c.task.kind
	}
	return s
}

// Resolve maps the stored page onto what may actually be shown.
func (c *Controller) Resolve() pages.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pages.Resolve(c.state.Page, c.state.User != nil)
}

// Navigate sets the current page. A product id is only recorded for the
// product page. Any page change abandons the pending task.
func (c *Controller) Navigate(page pages.ID, productID *int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !page.Valid() {
		page = pages.Default
	}
	if page != c.state.Page {
		c.cancelTaskLocked()
		clear(c.local)
	}
	c.state.Page = page
	if page == pages.Product && productID != nil {
		id := *productID
		c.state.SelectedProductID = &id
	}
}

// Login stores the user and lands on the store front. It never rejects.
func (c *Controller) Login(u *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelTaskLocked()
	c.signInLocked(u, nil)
}

// Register has the same contract as Login.
func (c *Controller) Register(u *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelTaskLocked()
	c.signInLocked(u, nil)
}

func (c *Controller) signInLocked(u *models.User, credential []byte) {
	user := u.Clone()
	if user.LevelUpRewards == nil {
		user.LevelUpRewards = []models.LevelUpReward{}
	}
	user.NextLevelProgress = loyalty.NextLevelProgress(user.Referrals, user.Level)
	c.state.User = user
	c.credential = credential
	c.state.Page = pages.Ecommerce
	clear(c.local)
	clear(c.taken)
	clear(c.prefs)
}

// UpdateUser replaces the stored user wholesale. The referral code is
// kept, progress is derived again and crossed levels append rewards.
func (c *Controller) UpdateUser(u *models.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updateUserLocked(u)
}

func (c *Controller) updateUserLocked(u *models.User) error {
	if c.state.User == nil {
		return ErrNoSession
	}
	prev := c.state.User
	next := u.Clone()
	next.ReferralCode = prev.ReferralCode
	if next.LevelUpRewards == nil {
		next.LevelUpRewards = []models.LevelUpReward{}
	}
	if next.Level > prev.Level {
		loyalty.AppendLevelUpRewards(next, prev.Level)
	}
	next.NextLevelProgress = loyalty.NextLevelProgress(next.Referrals, next.Level)
	c.state.User = next
	return nil
}

// UpdateProfile edits the personal fields of the stored user.
func (c *Controller) UpdateProfile(name, email, phone string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.User == nil {
		return ErrNoSession
	}
	u := c.state.User.Clone()
	u.Name, u.Email, u.Phone = name, email, phone
	if err := c.updateUserLocked(u); err != nil {
		return err
	}
	c.pushLocked(NoticeSuccess, "Perfil atualizado com sucesso!")
	return nil
}

// ChangePassword checks the current password against the credential kept
// for this session and stores the new hash.
func (c *Controller) ChangePassword(current string, newHash []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.User == nil {
		return ErrNoSession
	}
	if err := services.CheckPassword(c.credential, current); err != nil {
		return err
	}
	c.credential = newHash
	c.pushLocked(NoticeSuccess, "Senha alterada com sucesso!")
	return nil
}

// ClaimReward moves a level-up reward into the cashback balance.
func (c *Controller) ClaimReward(level int) (models.LevelUpReward, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.User == nil {
		return models.LevelUpReward{}, ErrNoSession
	}
	r, err := loyalty.ClaimReward(c.state.User, level)
	if err != nil {
		return models.LevelUpReward{}, err
	}
	c.pushLocked(NoticeSuccess, fmt.Sprintf("R$ %.2f de cashback resgatado!", r.Cashback))
	return r, nil
}

// CollectChallenge credits the reward of a completed challenge once per session.
func (c *Controller) CollectChallenge(ch models.Challenge) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.User == nil {
		return ErrNoSession
	}
	if !ch.Completed() {
		return ErrChallengeOpen
	}
	if c.taken[ch.ID] {
		return ErrChallengeTaken
	}
	c.taken[ch.ID] = true
	c.state.User.Points += ch.Reward.Points
	c.state.User.Cashback += ch.Reward.Cashback
	c.pushLocked(NoticeSuccess, fmt.Sprintf("Desafio concluído! +%d pontos + R$ %.2f!", ch.Reward.Points, ch.Reward.Cashback))
	return nil
}

// Logout clears the user and returns to the store front.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelTaskLocked()
	c.state.User = nil
	c.state.Page = pages.Ecommerce
	c.credential = nil
	clear(c.local)
	clear(c.taken)
	clear(c.prefs)
}

// SetLocal stores page-local UI state such as the active tab. It is
// dropped on the next page change.
func (c *Controller) SetLocal(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.local[key] = value
}

// SetPreference stores a notification or privacy toggle for the member.
func (c *Controller) SetPreference(key string, enabled bool, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.User == nil {
		return ErrNoSession
	}
	c.prefs[key] = enabled
	c.pushLocked(NoticeSuccess, message)
	return nil
}

// Notify queues a notice for the visitor.
func (c *Controller) Notify(kind NoticeKind, message string) Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pushLocked(kind, message)
}

func (c *Controller) pushLocked(kind NoticeKind, message string) Notice {
	n := NewNotice(kind, message)
	c.notices = append(c.notices, n)
	if len(c.notices) > maxNotices {
		c.notices = c.notices[len(c.notices)-maxNotices:]
	}
	return n
}

// DrainNotices returns and clears the queued notices.
func (c *Controller) DrainNotices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.notices
	c.notices = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}

// Close cancels the pending task and rejects further tasks.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cancelTaskLocked()
	c.stop()
}
