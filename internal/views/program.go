package views

import (
	"github.com/vitalrecife/storefront/internal/format"
	"github.com/vitalrecife/storefront/internal/loyalty"
	"github.com/vitalrecife/storefront/internal/models"
	"github.com/vitalrecife/storefront/internal/services"
)

type RewardRow struct {
	Level    int    `json:"level"`
	Cashback string `json:"cashback"`
}

type ChallengeRow struct {
	models.Challenge
	Percent   int  `json:"percent"`
	Completed bool `json:"completed"`
	Collected bool `json:"collected"`
}

type GamificationView struct {
	Phrase     string          `json:"phrase"`
	Level      LevelProgress   `json:"level"`
	Stats      QuickStats      `json:"stats"`
	Rewards    []RewardRow     `json:"rewards"`
	Pending    string          `json:"pendingCashback"`
	Challenges []ChallengeRow  `json:"challenges"`
	Engagement EngagementCard  `json:"engagement"`
	Tiers      []loyalty.Badge `json:"tiers"`
}

func buildGamification(in Input) (any, []Action, error) {
	u := in.Session.User
	v := GamificationView{
		Level:      levelProgress(u),
		Stats:      quickStats(u),
		Rewards:    []RewardRow{},
		Pending:    format.Currency(u.PendingCashback()),
		Challenges: []ChallengeRow{},
		Engagement: engagementCard(in.Catalog.WeeklyEngagement()),
		Tiers:      []loyalty.Badge{loyalty.BadgeFor(1), loyalty.BadgeFor(3), loyalty.BadgeFor(5)},
	}

	if phrases := in.Catalog.MotivationalPhrases(); len(phrases) > 0 {
		i := 0
		if in.Intn != nil {
			i = in.Intn(len(phrases))
		}
		v.Phrase = phrases[i]
	}

	for _, r := range u.LevelUpRewards {
		v.Rewards = append(v.Rewards, RewardRow{Level: r.Level, Cashback: format.Currency(r.Cashback)})
	}

	collectable := false
	for _, ch := range in.Catalog.Challenges() {
		row := ChallengeRow{
			Challenge: ch,
			Percent:   format.ProgressInt(ch.Progress, ch.Target),
			Completed: ch.Completed(),
			Collected: in.Session.ChallengesTaken[ch.ID],
		}
		if row.Completed && !row.Collected {
			collectable = true
		}
		v.Challenges = append(v.Challenges, row)
	}

	var actions []Action
	if len(v.Rewards) > 0 {
		actions = append(actions, Action{Name: "claimReward", Method: "POST", Path: "/api/rewards/:level/claim"})
	}
	if collectable {
		actions = append(actions, Action{Name: "collectChallenge", Method: "POST", Path: "/api/challenges/:id/collect"})
	}
	return v, actions, nil
}

type ReferralTotals struct {
	Referrals  int    `json:"referrals"`
	Affiliates int    `json:"affiliates"`
	Purchases  int    `json:"purchases"`
	Earned     string `json:"earned"`
}

type ClickRow struct {
	models.ClickOrigin
	Conversion int `json:"conversionPercent"`
}

type LevelPerks struct {
	Badge               loyalty.Badge `json:"badge"`
	CashbackPerReferral string        `json:"cashbackPerReferral"`
	MonthlyCashback     string        `json:"monthlyCashback"`
	Discount            string        `json:"discount"`
}

type ReferralView struct {
	Share      services.ShareLinks    `json:"share"`
	Perks      LevelPerks             `json:"perks"`
	Stats      QuickStats             `json:"stats"`
	History    []models.ReferralEntry `json:"history"`
	Totals     ReferralTotals         `json:"totals"`
	Clicks     []ClickRow             `json:"clicks"`
	Conversion int                    `json:"conversionPercent"`
	Withdrawal loyalty.Withdrawal     `json:"withdrawal"`
}

func buildReferral(in Input) (any, []Action, error) {
	u := in.Session.User
	b := loyalty.BadgeFor(u.Level)
	v := ReferralView{
		Share: services.BuildShareLinks(in.SiteURL, u),
		Perks: LevelPerks{
			Badge:               b,
			CashbackPerReferral: format.Currency(b.CashbackPerReferral),
			MonthlyCashback:     format.Percent(b.MonthlyCashback),
			Discount:            format.Percent(b.Discount),
		},
		Stats:      quickStats(u),
		History:    in.Catalog.ReferralHistory(),
		Clicks:     []ClickRow{},
		Withdrawal: loyalty.WithdrawalFor(u.Cashback),
	}

	var earned float64
	for _, r := range v.History {
		v.Totals.Referrals++
		v.Totals.Purchases += r.Purchases
		earned += r.Earned
		if r.IsAffiliate {
			v.Totals.Affiliates++
		}
	}
	v.Totals.Earned = format.Currency(earned)

	var clicks, conversions int
	for _, c := range in.Catalog.RecentClicks() {
		clicks += c.Clicks
		conversions += c.Conversions
		v.Clicks = append(v.Clicks, ClickRow{ClickOrigin: c, Conversion: format.ProgressInt(c.Conversions, c.Clicks)})
	}
	v.Conversion = format.ProgressInt(conversions, clicks)

	return v, []Action{{Name: "share", Method: "GET", Path: "/api/referral/share"}}, nil
}

type Toggle struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

type AccountInfo struct {
	ReferralCode string        `json:"referralCode"`
	Status       string        `json:"status"`
	Badge        loyalty.Badge `json:"badge"`
	MemberSince  string        `json:"memberSince"`
	LastActivity string        `json:"lastActivity"`
}

type ProfileView struct {
	Tab           string            `json:"tab"`
	Tabs          []string          `json:"tabs"`
	Personal      Form              `json:"personal"`
	Values        map[string]string `json:"values"`
	Security      Form              `json:"security"`
	Notifications []Toggle          `json:"notifications"`
	Privacy       []Toggle          `json:"privacy"`
	Account       AccountInfo       `json:"account"`
	Stats         QuickStats        `json:"stats"`
}

var profileTabs = []string{"personal", "security", "notifications", "account"}

type toggleDef struct {
	key, label string
	def        bool
}

var notificationToggles = []toggleDef{
	{"emailMarketing", "E-mails promocionais", true},
	{"pushNotifications", "Notificações push", true},
	{"smsMarketing", "SMS promocionais", false},
	{"weeklyReports", "Relatórios semanais", true},
	{"newReferrals", "Novas indicações", true},
	{"levelUp", "Subida de nível", true},
}

var privacyToggles = []toggleDef{
	{"showProfile", "Perfil público", true},
	{"showEarnings", "Mostrar ganhos", false},
	{"allowMessages", "Permitir mensagens", true},
}

// PreferenceGroup returns "notifications" or "privacy" for a known
// preference key and "" otherwise.
func PreferenceGroup(key string) string {
	for _, d := range notificationToggles {
		if d.key == key {
			return "notifications"
		}
	}
	for _, d := range privacyToggles {
		if d.key == key {
			return "privacy"
		}
	}
	return ""
}

func toggles(in Input, defs []toggleDef) []Toggle {
	out := make([]Toggle, 0, len(defs))
	for _, d := range defs {
		enabled, ok := in.Session.Preferences[d.key]
		if !ok {
			enabled = d.def
		}
		out = append(out, Toggle{Key: d.key, Label: d.label, Enabled: enabled})
	}
	return out
}

func buildProfile(in Input) (any, []Action, error) {
	u := in.Session.User
	v := ProfileView{
		Tab:  tab(in, profileTabs...),
		Tabs: profileTabs,
		Personal: Form{
			Fields: []Field{
				{Name: "name", Label: "Nome completo", Type: "text", Required: true},
				{Name: "email", Label: "E-mail", Type: "email", Required: true},
				{Name: "phone", Label: "Telefone", Type: "tel", Required: true},
			},
			Submit: "Salvar alterações",
		},
		Values: map[string]string{"name": u.Name, "email": u.Email, "phone": u.Phone},
		Security: Form{
			Fields: []Field{
				{Name: "currentPassword", Label: "Senha atual", Type: "password", Required: true},
				{Name: "newPassword", Label: "Nova senha", Type: "password", Required: true},
				{Name: "confirmPassword", Label: "Confirmar nova senha", Type: "password", Required: true},
			},
			Submit: "Alterar senha",
		},
		Notifications: toggles(in, notificationToggles),
		Privacy:       toggles(in, privacyToggles),
		Account: AccountInfo{
			ReferralCode: u.ReferralCode,
			Status:       "Ativa",
			Badge:        loyalty.BadgeFor(u.Level),
			MemberSince:  "Janeiro 2024",
			LastActivity: "Hoje, 14:30",
		},
		Stats: quickStats(u),
	}
	return v, []Action{
		{Name: "updateUser", Method: "PUT", Path: "/api/profile"},
		{Name: "changePassword", Method: "PUT", Path: "/api/profile/password"},
		{Name: "setPreference", Method: "PUT", Path: "/api/profile/preferences"},
	}, nil
}
