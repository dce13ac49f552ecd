// Package catalog provides the read-only mock tables behind every page:
// products, referral history, challenges and the performance series.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vitalrecife/storefront/internal/models"
)

//go:embed catalog.yaml
var embedded []byte

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product out of stock")
)

// ClampQuantity keeps a requested quantity between 1 and the stock on hand.
func ClampQuantity(qty, stock int) int {
	if qty < 1 {
		qty = 1
	}
	if stock > 0 && qty > stock {
		qty = stock
	}
	return qty
}

// Provider is the data source the pages read from. A real backend would
// implement it over the network with the same shapes.
type Provider interface {
	Categories() []string
	Products() []models.Product
	Product(id int) (models.Product, error)
	Related(id int, limit int) []models.Product
	ReferralHistory() []models.ReferralEntry
	RecentClicks() []models.ClickOrigin
	Challenges() []models.Challenge
	WeeklyEngagement() int
	WeeklyGoals() []models.WeeklyGoal
	MonthlySeries() []models.MonthlyStat
	RecentActivities() []models.Activity
	MotivationalPhrases() []string
}

type tables struct {
	Categories          []string               `yaml:"categories"`
	Products            []models.Product       `yaml:"products"`
	ReferralHistory     []models.ReferralEntry `yaml:"referral_history"`
	RecentClicks        []models.ClickOrigin   `yaml:"recent_clicks"`
	Challenges          []models.Challenge     `yaml:"challenges"`
	WeeklyEngagement    int                    `yaml:"weekly_engagement"`
	WeeklyGoals         []models.WeeklyGoal    `yaml:"weekly_goals"`
	MonthlySeries       []models.MonthlyStat   `yaml:"monthly_series"`
	RecentActivities    []models.Activity      `yaml:"recent_activities"`
	MotivationalPhrases []string               `yaml:"motivational_phrases"`
}

// Static serves tables decoded once at startup. It is safe for concurrent
// use because nothing mutates it after Parse returns; accessors hand out copies.
type Static struct {
	t    tables
	byID map[int]int
}

// Embedded parses the tables compiled into the binary.
func Embedded() (*Static, error) {
	return Parse(embedded)
}

// LoadFromFile parses an override catalog from disk.
func LoadFromFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Static, error) {
	var t tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := validate(&t); err != nil {
		return nil, err
	}

	s := &Static{t: t, byID: make(map[int]int, len(t.Products))}
	for i, p := range t.Products {
		s.byID[p.ID] = i
	}
	return s, nil
}

func validate(t *tables) error {
	seen := make(map[int]bool, len(t.Products))
	for _, p := range t.Products {
		if p.ID <= 0 {
			return fmt.Errorf("catalog: product %q has non-positive id %d", p.Name, p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		seen[p.ID] = true
		if p.Price < 0 || p.OriginalPrice < p.Price {
			return fmt.Errorf("catalog: product %d has invalid prices (%.2f / %.2f)", p.ID, p.Price, p.OriginalPrice)
		}
	}
	for _, c := range t.Challenges {
		if c.Target <= 0 {
			return fmt.Errorf("catalog: challenge %d has non-positive target", c.ID)
		}
	}
	return nil
}

func (s *Static) Categories() []string {
	return append([]string(nil), s.t.Categories...)
}

func (s *Static) Products() []models.Product {
	return append([]models.Product(nil), s.t.Products...)
}

func (s *Static) Product(id int) (models.Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return s.t.Products[i], nil
}

// Related returns up to limit other products, same category first.
func (s *Static) Related(id int, limit int) []models.Product {
	if limit <= 0 {
		return nil
	}
	category := ""
	if p, err := s.Product(id); err == nil {
		category = p.Category
	}

	out := make([]models.Product, 0, limit)
	for pass := 0; pass < 2 && len(out) < limit; pass++ {
		for _, p := range s.t.Products {
			if len(out) == limit {
				break
			}
			if p.ID == id {
				continue
			}
			sameCategory := category != "" && p.Category == category
			if (pass == 0) == sameCategory {
				out = append(out, p)
			}
		}
	}
	return out
}

func (s *Static) ReferralHistory() []models.ReferralEntry {
	return append([]models.ReferralEntry(nil), s.t.ReferralHistory...)
}

func (s *Static) RecentClicks() []models.ClickOrigin {
	return append([]models.ClickOrigin(nil), s.t.RecentClicks...)
}

func (s *Static) Challenges() []models.Challenge {
	return append([]models.Challenge(nil), s.t.Challenges...)
}

func (s *Static) WeeklyEngagement() int { return s.t.WeeklyEngagement }

func (s *Static) WeeklyGoals() []models.WeeklyGoal {
	return append([]models.WeeklyGoal(nil), s.t.WeeklyGoals...)
}

func (s *Static) MonthlySeries() []models.MonthlyStat {
	return append([]models.MonthlyStat(nil), s.t.MonthlySeries...)
}

func (s *Static) RecentActivities() []models.Activity {
	return append([]models.Activity(nil), s.t.RecentActivities...)
}

func (s *Static) MotivationalPhrases() []string {
	return append([]string(nil), s.t.MotivationalPhrases...)
}
