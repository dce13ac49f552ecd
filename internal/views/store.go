package views

import (
	"errors"
	"fmt"

	"github.com/vitalrecife/storefront/internal/catalog"
	"github.com/vitalrecife/storefront/internal/format"
	"github.com/vitalrecife/storefront/internal/loyalty"
	"github.com/vitalrecife/storefront/internal/models"
	"github.com/vitalrecife/storefront/internal/pages"
)

// AllCategories is the filter entry that shows every product.
const AllCategories = "Todos"

const relatedLimit = 3

type ProductCard struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Summary       string  `json:"summary"`
	Image         string  `json:"image"`
	Price         string  `json:"price"`
	OriginalPrice string  `json:"originalPrice"`
	Discount      int     `json:"discountPercent"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
	Badge         string  `json:"badge,omitempty"`
	BadgeVariant  string  `json:"badgeVariant,omitempty"`
}

func card(p models.Product) ProductCard {
	c := ProductCard{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Summary:       p.Summary,
		Price:         format.Currency(p.Price),
		OriginalPrice: format.Currency(p.OriginalPrice),
		Discount:      format.DiscountPercent(p.Price, p.OriginalPrice),
		Rating:        p.Rating,
		Reviews:       p.Reviews,
		Badge:         p.Badge,
		BadgeVariant:  p.BadgeVariant,
	}
	if len(p.Images) > 0 {
		c.Image = p.Images[0]
	}
	return c
}

type Hero struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Buttons  []HeroButton `json:"buttons"`
}

type HeroButton struct {
	Label  string   `json:"label"`
	Target pages.ID `json:"target"`
}

type MemberStats struct {
	Referrals int           `json:"referrals"`
	Cashback  string        `json:"cashback"`
	Points    int           `json:"points"`
	Level     int           `json:"level"`
	Badge     loyalty.Badge `json:"badge"`
}

type CallToAction struct {
	Title  string     `json:"title"`
	Button HeroButton `json:"button"`
}

type EcommerceView struct {
	Hero           Hero          `json:"hero"`
	Member         *MemberStats  `json:"member,omitempty"`
	Categories     []string      `json:"categories"`
	ActiveCategory string        `json:"activeCategory"`
	Products       []ProductCard `json:"products"`
	CallToAction   CallToAction  `json:"callToAction"`
}

func buildEcommerce(in Input) (any, []Action, error) {
	v := EcommerceView{
		Hero: Hero{
			Title:    "Vital Recife Suplementos",
			Subtitle: "Sua evolução fitness começa aqui. Suplementos de qualidade premium com sistema de gamificação exclusivo para filiados.",
		},
		Categories: append([]string{AllCategories}, in.Catalog.Categories()...),
	}

	v.ActiveCategory = AllCategories
	if want := in.param("category"); want != "" {
		for _, c := range v.Categories {
			if c == want {
				v.ActiveCategory = want
			}
		}
	}

	v.Products = []ProductCard{}
	for _, p := range in.Catalog.Products() {
		if v.ActiveCategory == AllCategories || p.Category == v.ActiveCategory {
			v.Products = append(v.Products, card(p))
		}
	}

	actions := []Action{navigate(pages.Product)}
	if u := in.Session.User; u != nil {
		v.Hero.Buttons = []HeroButton{
			{Label: "Área do Filiado", Target: pages.Dashboard},
			{Label: "Ver Gamificação", Target: pages.Gamification},
		}
		v.Member = &MemberStats{
			Referrals: u.Referrals,
			Cashback:  format.Currency(u.Cashback),
			Points:    u.Points,
			Level:     u.Level,
			Badge:     loyalty.BadgeFor(u.Level),
		}
		v.CallToAction = CallToAction{Title: "Continue Evoluindo!", Button: HeroButton{Label: "Ver Indicações", Target: pages.Referral}}
	} else {
		v.Hero.Buttons = []HeroButton{
			{Label: "Tornar-se Filiado", Target: pages.Register},
			{Label: "Fazer Login", Target: pages.Login},
		}
		v.CallToAction = CallToAction{Title: "Pronto para Evoluir?", Button: HeroButton{Label: "Cadastre-se Grátis", Target: pages.Register}}
	}
	return v, actions, nil
}

type ProductDetail struct {
	ProductCard
	Images          []string               `json:"images"`
	SelectedImage   int                    `json:"selectedImage"`
	Stock           int                    `json:"stock"`
	InStock         bool                   `json:"inStock"`
	DescriptionHTML string                 `json:"descriptionHtml"`
	Ingredients     []string               `json:"ingredients"`
	HowToUse        string                 `json:"howToUse"`
	Nutrition       models.NutritionalInfo `json:"nutritionalInfo"`
}

type AffiliatePerk struct {
	Badge    loyalty.Badge `json:"badge"`
	Discount int           `json:"discountPercent"`
	Message  string        `json:"message"`
}

type ProductView struct {
	State     string         `json:"state"`
	Product   *ProductDetail `json:"product,omitempty"`
	Quantity  int            `json:"quantity"`
	Tab       string         `json:"tab"`
	Tabs      []string       `json:"tabs"`
	Related   []ProductCard  `json:"related"`
	Affiliate *AffiliatePerk `json:"affiliate,omitempty"`
	Total     string         `json:"total,omitempty"`
}

var productTabs = []string{"description", "ingredients", "howto", "reviews"}

func buildProduct(in Input) (any, []Action, error) {
	back := []Action{navigate(pages.Ecommerce)}
	if in.Session.SelectedProductID == nil {
		return ProductView{State: "not_found", Related: []ProductCard{}}, back, nil
	}
	p, err := in.Catalog.Product(*in.Session.SelectedProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return ProductView{State: "not_found", Related: []ProductCard{}}, back, nil
	}
	if err != nil {
		return nil, nil, err
	}

	desc := p.Description
	if in.Markdown != nil {
		html, err := in.Markdown.Render(p.Description)
		if err != nil {
			return nil, nil, fmt.Errorf("product %d description: %w", p.ID, err)
		}
		desc = html
	}

	img := in.intParam("image", 0)
	if img < 0 || img >= len(p.Images) {
		img = 0
	}
	qty := catalog.ClampQuantity(in.intParam("qty", 1), p.Stock)

	v := ProductView{
		State: "ok",
		Product: &ProductDetail{
			ProductCard:     card(p),
			Images:          append([]string(nil), p.Images...),
			SelectedImage:   img,
			Stock:           p.Stock,
			InStock:         p.Stock > 0,
			DescriptionHTML: desc,
			Ingredients:     append([]string(nil), p.Ingredients...),
			HowToUse:        p.HowToUse,
			Nutrition:       p.NutritionalInfo,
		},
		Quantity: qty,
		Tab:      tab(in, productTabs...),
		Tabs:     productTabs,
		Related:  []ProductCard{},
		Total:    format.Currency(p.Price * float64(qty)),
	}
	for _, r := range in.Catalog.Related(p.ID, relatedLimit) {
		v.Related = append(v.Related, card(r))
	}
	if u := in.Session.User; u != nil {
		b := loyalty.BadgeFor(u.Level)
		v.Affiliate = &AffiliatePerk{
			Badge:    b,
			Discount: b.Discount,
			Message:  fmt.Sprintf("Filiado %s: ganhe %d%% de cashback nesta compra", b.Name, b.MonthlyCashback),
		}
	}

	actions := append(back,
		navigate(pages.Product),
		Action{Name: "addToCart", Method: "POST", Path: "/api/cart"},
		Action{Name: "buyNow", Method: "POST", Path: "/api/cart/checkout"},
	)
	return v, actions, nil
}
