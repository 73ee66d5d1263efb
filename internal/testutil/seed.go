package testutil

import (
	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
)

// AddReward stores a reward of the given type and returns its id.
func (m *MemoryStore) AddReward(rewardType models.RewardType) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	reward := models.Reward{ID: uuid.New(), Type: rewardType}
	m.state.rewards[reward.ID] = reward
	return reward.ID
}

// RemoveReward deletes a reward while options keep pointing at it.
func (m *MemoryStore) RemoveReward(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.state.rewards, id)
}

// AddPackage stores a package with the given options. Missing option ids are generated.
func (m *MemoryStore) AddPackage(name string, options ...models.PackageOption) models.Package {
	m.mu.Lock()
	defer m.mu.Unlock()
	pkg := models.Package{ID: uuid.New(), Name: name}
	for _, o := range options {
		if o.ID == uuid.Nil {
			o.ID = uuid.New()
		}
		o.PackageID = pkg.ID
		m.state.options[o.ID] = o
		pkg.Options = append(pkg.Options, o)
	}
	stored := pkg
	stored.Options = nil
	m.state.packages[pkg.ID] = stored
	return pkg
}

func (m *MemoryStore) AddUser(user models.User) models.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = models.NormalizeEmail(user.Email)
	user.CreatedAt = m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.users[user.ID] = user
	return user
}

// AddPledge stores a committed pledge with its options.
func (m *MemoryStore) AddPledge(pledge models.Pledge) models.Pledge {
	if pledge.ID == uuid.Nil {
		pledge.ID = uuid.New()
	}
	if pledge.Status == "" {
		pledge.Status = models.PledgeStatusDraft
	}
	pledge.CreatedAt = m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range pledge.Options {
		pledge.Options[i].PledgeID = pledge.ID
		m.state.pledgeOptions = append(m.state.pledgeOptions, pledge.Options[i])
	}
	stored := pledge
	stored.Options = nil
	m.state.pledges[pledge.ID] = stored
	return pledge
}

func (m *MemoryStore) AddPaymentSource(userID uuid.UUID, method, pspID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.sources = append(m.state.sources, models.PaymentSource{
		ID:     uuid.New(),
		UserID: userID,
		Method: method,
		PspID:  pspID,
	})
}

// Users returns the committed users.
func (m *MemoryStore) Users() []models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0, len(m.state.users))
	for _, u := range m.state.users {
		users = append(users, u)
	}
	return users
}

// Pledges returns the committed pledges with their options.
func (m *MemoryStore) Pledges() []models.Pledge {
	m.mu.Lock()
	view := &memoryView{store: m, st: m.state.clone()}
	m.mu.Unlock()

	pledges := make([]models.Pledge, 0, len(view.st.pledges))
	for _, p := range view.st.pledges {
		pledges = append(pledges, view.pledgeWithOptions(p))
	}
	return pledges
}

// PledgeOptionCount is the number of committed pledge option rows.
func (m *MemoryStore) PledgeOptionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.pledgeOptions)
}
