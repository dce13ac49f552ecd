// Package loyalty implements the affiliate program rules: level tiers,
// progress toward the next tier, the level-up reward ledger and the
// cashback withdrawal threshold.
package loyalty

import (
	"errors"

	"github.com/vitalrecife/storefront/internal/format"
	"github.com/vitalrecife/storefront/internal/models"
)

var ErrRewardNotFound = errors.New("level-up reward not found")

type Tier string

const (
	Bronze   Tier = "Bronze"
	Silver   Tier = "Silver"
	Gold     Tier = "Gold"
	Platinum Tier = "Platinum"
)

// Badge is everything a page shows about a user's tier.
type Badge struct {
	Name                Tier     `json:"name"`
	Color               string   `json:"color"`
	TextColor           string   `json:"textColor"`
	Icon                string   `json:"icon"`
	NextLevel           Tier     `json:"nextLevel"`
	NextLevelTarget     int      `json:"nextLevelTarget"`
	CashbackPerReferral float64  `json:"cashbackPerReferral"`
	MonthlyCashback     int      `json:"monthlyCashbackPercent"`
	Discount            int      `json:"discountPercent"`
	Benefits            []string `json:"benefits"`
	Perks               []string `json:"perks"`
}

// TierFor is the single level classification rule.
func TierFor(level int) Tier {
	switch {
	case level >= 5:
		return Gold
	case level >= 3:
		return Silver
	default:
		return Bronze
	}
}

// BadgeFor returns the tier badge for a level.
func BadgeFor(level int) Badge {
	switch TierFor(level) {
	case Gold:
		return Badge{
			Name:                Gold,
			Color:               "bg-yellow-500",
			TextColor:           "text-yellow-600",
			Icon:                "🥇",
			NextLevel:           Platinum,
			NextLevelTarget:     10,
			CashbackPerReferral: 25,
			MonthlyCashback:     5,
			Discount:            25,
			Benefits:            []string{"R$ 25 por indicação", "5% cashback mensal", "25% desconto", "Eventos exclusivos"},
			Perks:               []string{"Eventos exclusivos", "Consultor pessoal"},
		}
	case Silver:
		return Badge{
			Name:                Silver,
			Color:               "bg-gray-400",
			TextColor:           "text-gray-600",
			Icon:                "🥈",
			NextLevel:           Gold,
			NextLevelTarget:     5,
			CashbackPerReferral: 20,
			MonthlyCashback:     3,
			Discount:            15,
			Benefits:            []string{"R$ 20 por indicação", "3% cashback mensal", "15% desconto", "Material exclusivo"},
			Perks:               []string{"Material exclusivo", "Suporte VIP"},
		}
	default:
		return Badge{
			Name:                Bronze,
			Color:               "bg-amber-600",
			TextColor:           "text-amber-600",
			Icon:                "🥉",
			NextLevel:           Silver,
			NextLevelTarget:     3,
			CashbackPerReferral: 15,
			MonthlyCashback:     2,
			Discount:            0,
			Benefits:            []string{"R$ 15 por indicação", "2% cashback mensal", "Suporte prioritário"},
			Perks:               []string{"Suporte prioritário"},
		}
	}
}

// NextLevelProgress derives the 0-100 progress from referrals against the
// referral target of the user's current tier.
func NextLevelProgress(referrals, level int) int {
	return format.ProgressInt(referrals, BadgeFor(level).NextLevelTarget)
}

// LevelUpCashback is the reward granted when a user reaches level.
func LevelUpCashback(level int) float64 {
	if level < 2 {
		return 0
	}
	return 25 * float64(level-1)
}

// AppendLevelUpRewards appends one ledger entry for every level crossed
// going from prevLevel to u.Level. Levels already in the ledger are skipped.
func AppendLevelUpRewards(u *models.User, prevLevel int) {
	for lvl := prevLevel + 1; lvl <= u.Level; lvl++ {
		if hasReward(u, lvl) || LevelUpCashback(lvl) == 0 {
			continue
		}
		u.LevelUpRewards = append(u.LevelUpRewards, models.LevelUpReward{
			Level:    lvl,
			Cashback: LevelUpCashback(lvl),
		})
	}
}

// ClaimReward removes the reward for level from the ledger and credits
// its cashback to the balance.
func ClaimReward(u *models.User, level int) (models.LevelUpReward, error) {
	for i, r := range u.LevelUpRewards {
		if r.Level != level {
			continue
		}
		u.LevelUpRewards = append(u.LevelUpRewards[:i:i], u.LevelUpRewards[i+1:]...)
		u.Cashback += r.Cashback
		return r, nil
	}
	return models.LevelUpReward{}, ErrRewardNotFound
}

func hasReward(u *models.User, level int) bool {
	for _, r := range u.LevelUpRewards {
		if r.Level == level {
			return true
		}
	}
	return false
}
