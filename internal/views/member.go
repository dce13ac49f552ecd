package views

import (
	"fmt"

	"github.com/vitalrecife/storefront/internal/format"
	"github.com/vitalrecife/storefront/internal/loyalty"
	"github.com/vitalrecife/storefront/internal/models"
	"github.com/vitalrecife/storefront/internal/pages"
)

// barScale is the cashback that fills a monthly bar completely.
const barScale = 100.0

type QuickStats struct {
	Cashback        string `json:"cashback"`
	Points          int    `json:"points"`
	Referrals       int    `json:"referrals"`
	AffiliatePoints int    `json:"affiliatePoints"`
}

type LevelProgress struct {
	Badge    loyalty.Badge `json:"badge"`
	Level    int           `json:"level"`
	Progress int           `json:"progress"`
	Label    string        `json:"label"`
	Hint     string        `json:"hint"`
}

func levelProgress(u *models.User) LevelProgress {
	b := loyalty.BadgeFor(u.Level)
	return LevelProgress{
		Badge:    b,
		Level:    u.Level,
		Progress: u.NextLevelProgress,
		Label:    "Progresso para " + string(b.NextLevel),
		Hint:     fmt.Sprintf("%d de %d indicações para alcançar %s", u.Referrals, b.NextLevelTarget, b.NextLevel),
	}
}

type EngagementCard struct {
	loyalty.Engagement
	Current int    `json:"current"`
	Label   string `json:"label"`
}

func engagementCard(progress int) EngagementCard {
	e := loyalty.EngagementFor(progress)
	return EngagementCard{
		Engagement: e,
		Current:    progress,
		Label:      fmt.Sprintf("%d%% - %s", progress, e.Level),
	}
}

type QuickLink struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Target      pages.ID `json:"target"`
}

type RewardsAlert struct {
	Count   int    `json:"count"`
	Total   string `json:"total"`
	Message string `json:"message"`
}

type UserAreaView struct {
	Greeting   string            `json:"greeting"`
	Stats      QuickStats        `json:"stats"`
	Level      LevelProgress     `json:"level"`
	Engagement EngagementCard    `json:"engagement"`
	Links      []QuickLink       `json:"links"`
	Activities []models.Activity `json:"activities"`
	Rewards    *RewardsAlert     `json:"rewards,omitempty"`
}

func quickStats(u *models.User) QuickStats {
	return QuickStats{
		Cashback:        format.Currency(u.Cashback),
		Points:          u.Points,
		Referrals:       u.Referrals,
		AffiliatePoints: u.AffiliatePoints,
	}
}

func buildUserArea(in Input) (any, []Action, error) {
	u := in.Session.User
	v := UserAreaView{
		Greeting:   fmt.Sprintf("Bem-vindo, %s!", u.Name),
		Stats:      quickStats(u),
		Level:      levelProgress(u),
		Engagement: engagementCard(u.NextLevelProgress),
		Links: []QuickLink{
			{Title: "Dashboard", Description: "Visão geral dos seus ganhos e estatísticas", Target: pages.Dashboard},
			{Title: "Gamificação", Description: "Desafios, níveis e recompensas", Target: pages.Gamification},
			{Title: "Indicações", Description: "Gerencie seu programa de indicações", Target: pages.Referral},
			{Title: "Perfil", Description: "Edite suas informações pessoais", Target: pages.Profile},
		},
		Activities: in.Catalog.RecentActivities(),
	}
	if n := len(u.LevelUpRewards); n > 0 {
		v.Rewards = &RewardsAlert{
			Count:   n,
			Total:   format.Currency(u.PendingCashback()),
			Message: fmt.Sprintf("%d recompensa(s) de nível esperando por você", n),
		}
	}
	return v, nil, nil
}

type MonthBar struct {
	models.MonthlyStat
	CashbackLabel string  `json:"cashbackLabel"`
	Bar           float64 `json:"bar"`
}

type GoalRow struct {
	models.WeeklyGoal
	Percent   int  `json:"percent"`
	Completed bool `json:"completed"`
}

type DashboardTotals struct {
	Earnings       string `json:"earnings"`
	Referrals      int    `json:"referrals"`
	Sales          int    `json:"sales"`
	AverageMonthly string `json:"averageMonthly"`
	ConversionRate int    `json:"conversionRate"`
}

type DashboardView struct {
	Stats      QuickStats         `json:"stats"`
	Badge      loyalty.Badge      `json:"badge"`
	Tab        string             `json:"tab"`
	Tabs       []string           `json:"tabs"`
	Totals     DashboardTotals    `json:"totals"`
	Monthly    []MonthBar         `json:"monthly"`
	Goals      []GoalRow          `json:"goals"`
	Activities []models.Activity  `json:"activities"`
	Tips       []string           `json:"tips"`
	Withdrawal loyalty.Withdrawal `json:"withdrawal"`
}

var dashboardTabs = []string{"overview", "performance", "goals", "analytics"}

func buildDashboard(in Input) (any, []Action, error) {
	u := in.Session.User
	v := DashboardView{
		Stats:      quickStats(u),
		Badge:      loyalty.BadgeFor(u.Level),
		Tab:        tab(in, dashboardTabs...),
		Tabs:       dashboardTabs,
		Monthly:    []MonthBar{},
		Goals:      []GoalRow{},
		Activities: in.Catalog.RecentActivities(),
		Withdrawal: loyalty.WithdrawalFor(u.Cashback),
		Tips: []string{
			"Compartilhe seu link nas redes sociais para aumentar conversões",
			"Tente indicar 1-2 novos filiados por semana",
			"Seu melhor dia para indicações é terça-feira",
		},
	}

	series := in.Catalog.MonthlySeries()
	var earned float64
	for _, m := range series {
		earned += m.Cashback
		v.Totals.Referrals += m.Referrals
		v.Totals.Sales += m.Sales
		v.Monthly = append(v.Monthly, MonthBar{
			MonthlyStat:   m,
			CashbackLabel: format.Currency(m.Cashback),
			Bar:           format.Progress(m.Cashback, barScale),
		})
	}
	v.Totals.Earnings = format.Currency(earned)
	if len(series) > 0 {
		v.Totals.AverageMonthly = format.Currency(earned / float64(len(series)))
	} else {
		v.Totals.AverageMonthly = format.Currency(0)
	}
	v.Totals.ConversionRate = format.ProgressInt(v.Totals.Referrals, v.Totals.Sales)

	for _, g := range in.Catalog.WeeklyGoals() {
		v.Goals = append(v.Goals, GoalRow{
			WeeklyGoal: g,
			Percent:    format.ProgressInt(g.Progress, g.Target),
			Completed:  g.Target > 0 && g.Progress >= g.Target,
		})
	}

	b := v.Badge
	if remaining := b.NextLevelTarget - u.Referrals; remaining > 0 {
		v.Tips = append(v.Tips, fmt.Sprintf("Você está a %d indicação(ões) do nível %s!", remaining, b.NextLevel))
	}

	return v, nil, nil
}
