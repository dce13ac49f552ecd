package models

// LevelUpReward is a pending cashback grant earned by reaching a level.
type LevelUpReward struct {
	Level    int     `json:"level"`
	Cashback float64 `json:"cashback"`
}

// User is the in-memory session user. It is never persisted.
type User struct {
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	Points            int             `json:"points"`
	Level             int             `json:"level"`
	ReferralCode      string          `json:"referralCode"`
	Referrals         int             `json:"referrals"`
	Cashback          float64         `json:"cashback"`
	AffiliatePoints   int             `json:"affiliatePoints"`
	NextLevelProgress int             `json:"nextLevelProgress"`
	LevelUpRewards    []LevelUpReward `json:"levelUpRewards"`
}

// Clone returns a deep copy so callers can't alias the rewards ledger.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.LevelUpRewards = make([]LevelUpReward, len(u.LevelUpRewards))
	copy(cp.LevelUpRewards, u.LevelUpRewards)
	return &cp
}

// PendingCashback sums the unclaimed level-up rewards.
func (u *User) PendingCashback() float64 {
	var total float64
	for _, r := range u.LevelUpRewards {
		total += r.Cashback
	}
	return total
}
