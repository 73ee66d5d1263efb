// Package testutil provides an in-memory repository.Store for service and
// handler tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"github.com/sefazor/crowdfunding-backend/internal/repository"
)

type state struct {
	packages      map[uuid.UUID]models.Package
	options       map[uuid.UUID]models.PackageOption
	rewards       map[uuid.UUID]models.Reward
	users         map[uuid.UUID]models.User
	pledges       map[uuid.UUID]models.Pledge
	pledgeOptions []models.PledgeOption
	sources       []models.PaymentSource
}

func newState() *state {
	return &state{
		packages: map[uuid.UUID]models.Package{},
		options:  map[uuid.UUID]models.PackageOption{},
		rewards:  map[uuid.UUID]models.Reward{},
		users:    map[uuid.UUID]models.User{},
		pledges:  map[uuid.UUID]models.Pledge{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.packages {
		c.packages[k] = v
	}
	for k, v := range s.options {
		c.options[k] = v
	}
	for k, v := range s.rewards {
		c.rewards[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.pledges {
		c.pledges[k] = v
	}
	c.pledgeOptions = append(c.pledgeOptions, s.pledgeOptions...)
	c.sources = append(c.sources, s.sources...)
	return c
}

// MemoryStore is a repository.Store keeping committed state in memory. A
// transaction works on a copy that replaces the committed state on Commit.
type MemoryStore struct {
	mu    sync.Mutex
	state *state
	fail  map[string]error
	clock time.Time

	RollbackErr error
	Commits     int
	Rollbacks   int
}

var _ repository.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: newState(),
		fail:  map[string]error{},
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// FailOn makes every later call of the named store method return err.
func (m *MemoryStore) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[method] = err
}

func (m *MemoryStore) failure(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fail[method]
}

func (m *MemoryStore) now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *MemoryStore) Begin(ctx context.Context) (repository.Tx, error) {
	if err := m.failure("Begin"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return &memoryTx{memoryView: memoryView{store: m, st: m.state.clone()}}, nil
}

func (m *MemoryStore) Read(ctx context.Context) repository.Reader {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &memoryView{store: m, st: m.state.clone()}
}

type memoryView struct {
	store *MemoryStore
	st    *state
}

func (v *memoryView) withReward(o models.PackageOption) models.PackageOption {
	if o.RewardID != nil {
		if r, ok := v.st.rewards[*o.RewardID]; ok {
			o.Reward = &r
		}
	}
	return o
}

func (v *memoryView) packageWithOptions(p models.Package) models.Package {
	p.Options = nil
	for _, o := range v.st.options {
		if o.PackageID == p.ID {
			p.Options = append(p.Options, v.withReward(o))
		}
	}
	sort.Slice(p.Options, func(i, j int) bool { return p.Options[i].Price > p.Options[j].Price })
	return p
}

func (v *memoryView) pledgeWithOptions(p models.Pledge) models.Pledge {
	p.Options = nil
	for _, o := range v.st.pledgeOptions {
		if o.PledgeID == p.ID {
			p.Options = append(p.Options, o)
		}
	}
	return p
}

func (v *memoryView) ListPackages() ([]models.Package, error) {
	if err := v.store.failure("ListPackages"); err != nil {
		return nil, err
	}
	packages := make([]models.Package, 0, len(v.st.packages))
	for _, p := range v.st.packages {
		packages = append(packages, v.packageWithOptions(p))
	}
	sort.Slice(packages, func(i, j int) bool { return packages[i].Name < packages[j].Name })
	return packages, nil
}

func (v *memoryView) GetPackage(id uuid.UUID) (*models.Package, error) {
	if err := v.store.failure("GetPackage"); err != nil {
		return nil, err
	}
	p, ok := v.st.packages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = v.packageWithOptions(p)
	return &p, nil
}

func (v *memoryView) FindPackageOptions(ids []uuid.UUID) ([]models.PackageOption, error) {
	if err := v.store.failure("FindPackageOptions"); err != nil {
		return nil, err
	}
	var options []models.PackageOption
	for _, id := range ids {
		if o, ok := v.st.options[id]; ok {
			options = append(options, v.withReward(o))
		}
	}
	return options, nil
}

func (v *memoryView) FindUserByID(id uuid.UUID) (*models.User, error) {
	if err := v.store.failure("FindUserByID"); err != nil {
		return nil, err
	}
	u, ok := v.st.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (v *memoryView) FindUserByEmail(email string) (*models.User, error) {
	if err := v.store.failure("FindUserByEmail"); err != nil {
		return nil, err
	}
	email = models.NormalizeEmail(email)
	for _, u := range v.st.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (v *memoryView) GetPledge(id uuid.UUID) (*models.Pledge, error) {
	if err := v.store.failure("GetPledge"); err != nil {
		return nil, err
	}
	p, ok := v.st.pledges[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = v.pledgeWithOptions(p)
	return &p, nil
}

func (v *memoryView) ListPledgesByUser(userID uuid.UUID) ([]models.Pledge, error) {
	if err := v.store.failure("ListPledgesByUser"); err != nil {
		return nil, err
	}
	var pledges []models.Pledge
	for _, p := range v.st.pledges {
		if p.UserID == userID {
			pledges = append(pledges, v.pledgeWithOptions(p))
		}
	}
	sort.Slice(pledges, func(i, j int) bool { return pledges[i].CreatedAt.After(pledges[j].CreatedAt) })
	return pledges, nil
}

func (v *memoryView) CountPledgesByUser(userID uuid.UUID) (int64, error) {
	if err := v.store.failure("CountPledgesByUser"); err != nil {
		return 0, err
	}
	var count int64
	for _, p := range v.st.pledges {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (v *memoryView) CountRewardedPledgesByUser(userID uuid.UUID) (int64, error) {
	if err := v.store.failure("CountRewardedPledgesByUser"); err != nil {
		return 0, err
	}
	rewarded := map[uuid.UUID]struct{}{}
	for _, po := range v.st.pledgeOptions {
		p, ok := v.st.pledges[po.PledgeID]
		if !ok || p.UserID != userID {
			continue
		}
		tmpl, ok := v.st.options[po.TemplateID]
		if !ok || tmpl.RewardID == nil {
			continue
		}
		if _, ok := v.st.rewards[*tmpl.RewardID]; ok {
			rewarded[p.ID] = struct{}{}
		}
	}
	return int64(len(rewarded)), nil
}

func (v *memoryView) FindPaymentSource(userID uuid.UUID, method string) (*models.PaymentSource, error) {
	if err := v.store.failure("FindPaymentSource"); err != nil {
		return nil, err
	}
	for i := len(v.st.sources) - 1; i >= 0; i-- {
		s := v.st.sources[i]
		if s.UserID == userID && s.Method == method {
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memoryTx struct {
	memoryView
	done bool
}

func (t *memoryTx) CreateUser(user *models.User) error {
	if err := t.store.failure("CreateUser"); err != nil {
		return err
	}
	user.Email = models.NormalizeEmail(user.Email)
	for _, u := range t.st.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate email %s", user.Email)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = t.store.now()
	user.UpdatedAt = user.CreatedAt
	t.st.users[user.ID] = *user
	return nil
}

func (t *memoryTx) UpdateUserName(userID uuid.UUID, firstName, lastName string) error {
	if err := t.store.failure("UpdateUserName"); err != nil {
		return err
	}
	u, ok := t.st.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.FirstName, u.LastName = firstName, lastName
	u.UpdatedAt = t.store.now()
	t.st.users[userID] = u
	return nil
}

func (t *memoryTx) CreatePledge(pledge *models.Pledge) error {
	if err := t.store.failure("CreatePledge"); err != nil {
		return err
	}
	if pledge.ID == uuid.Nil {
		pledge.ID = uuid.New()
	}
	pledge.CreatedAt = t.store.now()
	pledge.UpdatedAt = pledge.CreatedAt
	stored := *pledge
	stored.Options = nil
	t.st.pledges[pledge.ID] = stored
	return nil
}

func (t *memoryTx) CreatePledgeOptions(options []models.PledgeOption) error {
	if err := t.store.failure("CreatePledgeOptions"); err != nil {
		return err
	}
	for i := range options {
		if _, ok := t.st.pledges[options[i].PledgeID]; !ok {
			return fmt.Errorf("pledge %s does not exist", options[i].PledgeID)
		}
		options[i].CreatedAt = t.store.now()
		options[i].UpdatedAt = options[i].CreatedAt
		t.st.pledgeOptions = append(t.st.pledgeOptions, options[i])
	}
	return nil
}

func (t *memoryTx) Commit() error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	if err := t.store.failure("Commit"); err != nil {
		return err
	}
	t.done = true
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.state = t.st
	t.store.Commits++
	return nil
}

func (t *memoryTx) Rollback() error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	t.done = true
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.Rollbacks++
	return t.store.RollbackErr
}
