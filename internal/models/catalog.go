package models

type NutritionalInfo struct {
	Portion  string `yaml:"portion" json:"portion"`
	Protein  string `yaml:"protein" json:"protein"`
	Carbs    string `yaml:"carbs" json:"carbs"`
	Fat      string `yaml:"fat" json:"fat"`
	Calories string `yaml:"calories" json:"calories"`
}

type Product struct {
	ID              int             `yaml:"id" json:"id"`
	Name            string          `yaml:"name" json:"name"`
	Category        string          `yaml:"category" json:"category"`
	Price           float64         `yaml:"price" json:"price"`
	OriginalPrice   float64         `yaml:"original_price" json:"originalPrice"`
	Rating          float64         `yaml:"rating" json:"rating"`
	Reviews         int             `yaml:"reviews" json:"reviews"`
	Stock           int             `yaml:"stock" json:"stock"`
	Images          []string        `yaml:"images" json:"images"`
	Summary         string          `yaml:"summary" json:"summary"`
	Description     string          `yaml:"description" json:"description"`
	Ingredients     []string        `yaml:"ingredients" json:"ingredients"`
	HowToUse        string          `yaml:"how_to_use" json:"howToUse"`
	NutritionalInfo NutritionalInfo `yaml:"nutritional_info" json:"nutritionalInfo"`
	Badge           string          `yaml:"badge" json:"badge"`
	BadgeVariant    string          `yaml:"badge_variant" json:"badgeVariant"`
}

// ChallengeReward is what completing a challenge pays out.
type ChallengeReward struct {
	Points   int     `yaml:"points" json:"points"`
	Cashback float64 `yaml:"cashback" json:"cashback"`
}

type Challenge struct {
	ID          int             `yaml:"id" json:"id"`
	Title       string          `yaml:"title" json:"title"`
	Description string          `yaml:"description" json:"description"`
	Progress    int             `yaml:"progress" json:"progress"`
	Target      int             `yaml:"target" json:"target"`
	Reward      ChallengeReward `yaml:"reward" json:"reward"`
	Icon        string          `yaml:"icon" json:"icon"`
}

// Completed reports whether progress reached the target.
func (c Challenge) Completed() bool {
	return c.Target > 0 && c.Progress >= c.Target
}

type ReferralEntry struct {
	ID          int     `yaml:"id" json:"id"`
	Name        string  `yaml:"name" json:"name"`
	Email       string  `yaml:"email" json:"email"`
	JoinDate    string  `yaml:"join_date" json:"joinDate"`
	Status      string  `yaml:"status" json:"status"`
	Purchases   int     `yaml:"purchases" json:"purchases"`
	Earned      float64 `yaml:"earned" json:"earned"`
	Level       string  `yaml:"level" json:"level"`
	IsAffiliate bool    `yaml:"is_affiliate" json:"isAffiliate"`
}

type ClickOrigin struct {
	Origin      string `yaml:"origin" json:"origin"`
	Clicks      int    `yaml:"clicks" json:"clicks"`
	Conversions int    `yaml:"conversions" json:"conversions"`
	Time        string `yaml:"time" json:"time"`
}

type WeeklyGoal struct {
	Goal     string `yaml:"goal" json:"goal"`
	Progress int    `yaml:"progress" json:"progress"`
	Target   int    `yaml:"target" json:"target"`
	Reward   string `yaml:"reward" json:"reward"`
}

type MonthlyStat struct {
	Month     string  `yaml:"month" json:"month"`
	Referrals int     `yaml:"referrals" json:"referrals"`
	Cashback  float64 `yaml:"cashback" json:"cashback"`
	Sales     int     `yaml:"sales" json:"sales"`
}

type Activity struct {
	ID          int     `yaml:"id" json:"id"`
	Type        string  `yaml:"type" json:"type"`
	Description string  `yaml:"description" json:"description"`
	Amount      float64 `yaml:"amount" json:"amount"`
	Time        string  `yaml:"time" json:"time"`
}
