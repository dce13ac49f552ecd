package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalrecife/storefront/internal/catalog"
	"github.com/vitalrecife/storefront/internal/config"
	"github.com/vitalrecife/storefront/internal/dto"
	"github.com/vitalrecife/storefront/internal/email"
	"github.com/vitalrecife/storefront/internal/handlers"
	"github.com/vitalrecife/storefront/internal/middleware"
	"github.com/vitalrecife/storefront/internal/routes"
	"github.com/vitalrecife/storefront/internal/services"
	"github.com/vitalrecife/storefront/internal/session"
)

type testEnv struct {
	t     *testing.T
	app   *fiber.App
	store *session.Store
	token string
}

func testConfig() *config.Config {
	return &config.Config{
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		LoginDelay:    time.Millisecond,
		RegisterDelay: time.Millisecond,
		ResetDelay:    time.Millisecond,
		SiteURL:       "https://vitalrecife.com",
		CORSOrigins:   "*",
	}
}

func newTestEnv(t *testing.T, cfg *config.Config, cat catalog.Provider) *testEnv {
	t.Helper()
	if cat == nil {
		embedded, err := catalog.Embedded()
		require.NoError(t, err)
		cat = embedded
	}

	authService := services.NewAuthService(cfg, email.LogService{})
	store := session.NewStore(context.Background(), authService, cfg.SessionTTL)
	t.Cleanup(store.Close)

	renderer := handlers.NewRenderer(cat, cfg.SiteURL)
	renderer.Intn = func(int) int { return 0 }

	app := fiber.New()
	app.Use(requestid.New())
	routes.Setup(app, cfg, store,
		handlers.NewSessionHandler(store, services.NewTokenService(cfg.SessionSecret, cfg.SessionTTL), renderer, false),
		handlers.NewAuthHandler(authService, renderer),
		handlers.NewProfileHandler(authService, renderer),
		handlers.NewRewardsHandler(cat, cfg.SiteURL, renderer),
		handlers.NewCartHandler(cat, renderer),
		handlers.NewHealthHandler(store),
		handlers.NewLegalHandler(cfg.SiteURL),
	)
	return &testEnv{t: t, app: app, store: store}
}

func (e *testEnv) do(method, path string, body any) (*http.Response, []byte) {
	e.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return resp, data
}

type pageBody struct {
	ID        string           `json:"id"`
	Requested string           `json:"requested"`
	Content   json.RawMessage  `json:"content"`
	Notices   []session.Notice `json:"notices"`
	Actions   []struct {
		Name string `json:"name"`
	} `json:"actions"`
	Navbar struct {
		ShowLogout bool `json:"showLogout"`
		User       *struct {
			Name   string `json:"name"`
			Points int    `json:"points"`
			Level  int    `json:"level"`
			Cash   string `json:"cashback"`
			Badge  struct {
				Name string `json:"name"`
			} `json:"badge"`
		} `json:"user"`
	} `json:"navbar"`
}

func decodePage(t *testing.T, data []byte) pageBody {
	t.Helper()
	var p pageBody
	require.NoError(t, json.Unmarshal(data, &p), string(data))
	return p
}

func (e *testEnv) startSession() pageBody {
	e.t.Helper()
	resp, data := e.do(http.MethodPost, "/api/session", nil)
	require.Equal(e.t, fiber.StatusCreated, resp.StatusCode, string(data))

	var body struct {
		Token string          `json:"token"`
		Page  json.RawMessage `json:"page"`
	}
	require.NoError(e.t, json.Unmarshal(data, &body))
	require.NotEmpty(e.t, body.Token)
	e.token = body.Token
	return decodePage(e.t, body.Page)
}

func (e *testEnv) navigate(page string, productID *int) pageBody {
	e.t.Helper()
	resp, data := e.do(http.MethodPost, "/api/navigate", dto.NavigateRequest{Page: page, ProductID: productID})
	require.Equal(e.t, fiber.StatusOK, resp.StatusCode, string(data))
	return decodePage(e.t, data)
}

func (e *testEnv) loginDemo() pageBody {
	e.t.Helper()
	e.navigate("login", nil)
	resp, data := e.do(http.MethodPost, "/api/auth/login?wait=true", dto.LoginRequest{Email: "joao@email.com", Password: "123456"})
	require.Equal(e.t, fiber.StatusOK, resp.StatusCode, string(data))

	var body struct {
		Applied bool            `json:"applied"`
		Page    json.RawMessage `json:"page"`
	}
	require.NoError(e.t, json.Unmarshal(data, &body))
	require.True(e.t, body.Applied)
	return decodePage(e.t, body.Page)
}

func noticeMessages(p pageBody) []string {
	out := []string{}
	for _, n := range p.Notices {
		out = append(out, n.Message)
	}
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	resp, data := env.do(http.MethodGet, "/api/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "disabled", body.DB)
}

func TestCreateSession(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	resp, _ := env.do(http.MethodPost, "/api/session", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 1, env.store.Len())

	page := env.startSession()
	assert.Equal(t, "ecommerce", page.ID)
	assert.Nil(t, page.Navbar.User)
}

func TestSessionRequired(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	resp, _ := env.do(http.MethodGet, "/api/page", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	env.token = "not-a-jwt"
	resp, _ = env.do(http.MethodGet, "/api/page", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSessionBearerHeader(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()

	resp, _ := env.do(http.MethodGet, "/api/page", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/page", nil)
	req.Header.Set("Authorization", env.token)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSessionCookie(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()

	req := httptest.NewRequest(http.MethodGet, "/api/page", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: env.token})
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAnonymousDashboardFallsBackToStore(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()

	page := env.navigate("dashboard", nil)
	assert.Equal(t, "ecommerce", page.ID)
	assert.Equal(t, "dashboard", page.Requested)

	page = env.navigate("checkout", nil)
	assert.Equal(t, "ecommerce", page.ID)
}

func TestLogin_EndToEnd(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()

	page := env.loginDemo()
	assert.Equal(t, "ecommerce", page.ID)
	require.NotNil(t, page.Navbar.User)
	assert.Equal(t, "João Silva", page.Navbar.User.Name)
	assert.Equal(t, 3, page.Navbar.User.Level)
	assert.Equal(t, "R$ 45.50", page.Navbar.User.Cash)
	assert.Equal(t, "Silver", page.Navbar.User.Badge.Name)
	assert.Contains(t, noticeMessages(page), "Bem-vindo de volta, João Silva!")

	page = env.navigate("dashboard", nil)
	assert.Equal(t, "dashboard", page.ID)

	resp, data := env.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page = decodePage(t, data)
	assert.Equal(t, "ecommerce", page.ID)
	assert.Nil(t, page.Navbar.User)

	page = env.navigate("dashboard", nil)
	assert.Equal(t, "ecommerce", page.ID)
}

func TestLogin_ValidationError(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()

	env.navigate("login", nil)

	resp, data := env.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "joao@email.com"})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "Preencha todos os campos", body.Message)
	require.NotNil(t, body.Notice)
	assert.Equal(t, string(session.NoticeError), body.Notice.Kind)
	assert.Equal(t, body.Message, body.Notice.Message)
	assert.NotEmpty(t, body.Notice.ID)
}

func TestLogin_PendingAndCancel(t *testing.T) {
	cfg := testConfig()
	cfg.LoginDelay = time.Hour
	env := newTestEnv(t, cfg, nil)
	env.startSession()
	env.navigate("login", nil)

	req := dto.LoginRequest{Email: "joao@email.com", Password: "123456"}
	resp, data := env.do(http.MethodPost, "/api/auth/login", req)
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode, string(data))

	var body dto.PendingResponse
	require.NoError(t, json.Unmarshal(data, &body))
	assert.True(t, body.Busy)
	assert.Equal(t, "login", body.Kind)

	resp, _ = env.do(http.MethodPost, "/api/auth/login", req)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = env.do(http.MethodDelete, "/api/auth/pending", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, data = env.do(http.MethodGet, "/api/auth/pending", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &body))
	assert.False(t, body.Busy)

	resp, _ = env.do(http.MethodDelete, "/api/auth/pending", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLogin_NavigatingAwayDropsResult(t *testing.T) {
	cfg := testConfig()
	cfg.LoginDelay = time.Hour
	env := newTestEnv(t, cfg, nil)
	env.startSession()
	env.navigate("login", nil)

	resp, _ := env.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "a@b.co", Password: "x"})
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	page := env.navigate("ecommerce", nil)
	assert.Nil(t, page.Navbar.User)

	resp, data := env.do(http.MethodGet, "/api/auth/pending", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"busy":false`)
}

func TestRegister_WithReferralCode(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()
	env.navigate("register", nil)

	resp, data := env.do(http.MethodPost, "/api/auth/register?wait=true", dto.RegisterRequest{
		Name:            "Maria Clara Souza",
		Email:           "maria@email.com",
		Phone:           "(81) 98888-7777",
		Password:        "segredo1",
		ConfirmPassword: "segredo1",
		ReferralCode:    "JOAO123",
		AcceptTerms:     true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))

	var body struct {
		Page json.RawMessage `json:"page"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	page := decodePage(t, body.Page)

	assert.Equal(t, "ecommerce", page.ID)
	require.NotNil(t, page.Navbar.User)
	assert.Equal(t, 1, page.Navbar.User.Level)
	assert.Equal(t, 100, page.Navbar.User.Points)
	assert.Equal(t, "Bronze", page.Navbar.User.Badge.Name)
	assert.Contains(t, noticeMessages(page), "Cadastro realizado! Você ganhou 100 pontos por usar o código JOAO123!")
}

func TestRegister_TermsRequired(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()
	env.navigate("register", nil)

	resp, data := env.do(http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Name: "Ana", Email: "ana@email.com", Phone: "1", Password: "segredo", ConfirmPassword: "segredo",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(data), "Você deve aceitar os termos de uso")
}

func TestResetPassword(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()

	env.navigate("reset-password", nil)

	resp, _ := env.do(http.MethodPost, "/api/auth/reset-password", dto.ResetPasswordRequest{Email: "invalido"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, data := env.do(http.MethodPost, "/api/auth/reset-password", dto.ResetPasswordRequest{Email: "joao@email.com"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	page := decodePage(t, data)
	assert.Equal(t, "reset-password", page.ID)
	assert.Contains(t, noticeMessages(page), "E-mail de recuperação enviado!")

	var content struct {
		Sent   bool   `json:"sent"`
		SentTo string `json:"sentTo"`
	}
	require.NoError(t, json.Unmarshal(page.Content, &content))
	assert.True(t, content.Sent)
	assert.Equal(t, "joao@email.com", content.SentTo)
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()

	resp, _ := env.do(http.MethodPut, "/api/profile", dto.UpdateProfileRequest{Name: "X", Email: "x@x.com", Phone: "1"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	env.loginDemo()
	env.navigate("profile", nil)

	resp, _ = env.do(http.MethodPut, "/api/profile", dto.UpdateProfileRequest{Name: "João"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, data := env.do(http.MethodPut, "/api/profile", dto.UpdateProfileRequest{
		Name: "João P. Silva", Email: "jp@email.com", Phone: "(81) 90000-0000",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page := decodePage(t, data)
	assert.Equal(t, "João P. Silva", page.Navbar.User.Name)
	assert.Contains(t, noticeMessages(page), "Perfil atualizado com sucesso!")

	var content struct {
		Account struct {
			ReferralCode string `json:"referralCode"`
		} `json:"account"`
	}
	require.NoError(t, json.Unmarshal(page.Content, &content))
	assert.Equal(t, "JOAO123", content.Account.ReferralCode)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()
	env.loginDemo()
	env.navigate("profile", nil)

	resp, data := env.do(http.MethodPut, "/api/profile/password", dto.ChangePasswordRequest{
		CurrentPassword: "errada", NewPassword: "novasenha", ConfirmPassword: "novasenha",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(data), "Senha atual incorreta")

	resp, data = env.do(http.MethodPut, "/api/profile/password", dto.ChangePasswordRequest{
		CurrentPassword: "123456", NewPassword: "novasenha", ConfirmPassword: "novasenha",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	assert.Contains(t, noticeMessages(decodePage(t, data)), "Senha alterada com sucesso!")
}

func TestPreferences(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()
	env.loginDemo()
	env.navigate("profile", nil)

	resp, _ := env.do(http.MethodPut, "/api/profile/preferences", dto.PreferenceRequest{Key: "darkMode", Enabled: true})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, data := env.do(http.MethodPut, "/api/profile/preferences", dto.PreferenceRequest{Key: "showEarnings", Enabled: true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, noticeMessages(decodePage(t, data)), "Configurações de privacidade atualizadas!")

	env.navigate("dashboard", nil)
	page := env.navigate("profile", nil)
	assert.Contains(t, string(page.Content), `{"key":"showEarnings","label":"Mostrar ganhos","enabled":true}`)
}

func TestClaimReward(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()
	env.loginDemo()
	env.navigate("gamification", nil)

	resp, data := env.do(http.MethodPost, "/api/rewards/3/claim", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))

	var body struct {
		Cashback float64         `json:"cashback"`
		Page     json.RawMessage `json:"page"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, 50.0, body.Cashback)
	page := decodePage(t, body.Page)
	assert.Equal(t, "R$ 95.50", page.Navbar.User.Cash)
	assert.Contains(t, noticeMessages(page), "R$ 50.00 de cashback resgatado!")

	resp, _ = env.do(http.MethodPost, "/api/rewards/3/claim", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(http.MethodPost, "/api/rewards/abc/claim", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

const completedChallengeCatalog = `
categories: [Creatina]
products:
  - {id: 1, name: Creatina Pura, category: Creatina, price: 59.9, original_price: 79.9, stock: 5, images: [a.jpg]}
challenges:
  - {id: 7, title: Indicar, description: Indicar 3, progress: 3, target: 3, reward: {points: 100, cashback: 12.5}}
  - {id: 8, title: Vender, description: Vender 5, progress: 1, target: 5, reward: {points: 50, cashback: 5}}
weekly_engagement: 50
`

func TestCollectChallenge(t *testing.T) {
	cat, err := catalog.Parse([]byte(completedChallengeCatalog))
	require.NoError(t, err)
	env := newTestEnv(t, testConfig(), cat)
	env.startSession()
	env.loginDemo()
	env.navigate("gamification", nil)

	resp, data := env.do(http.MethodPost, "/api/challenges/7/collect", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	page := decodePage(t, data)
	assert.Equal(t, 1350, page.Navbar.User.Points)
	assert.Equal(t, "R$ 58.00", page.Navbar.User.Cash)

	resp, _ = env.do(http.MethodPost, "/api/challenges/7/collect", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp, _ = env.do(http.MethodPost, "/api/challenges/8/collect", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp, _ = env.do(http.MethodPost, "/api/challenges/99/collect", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestShare(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()

	resp, _ := env.do(http.MethodGet, "/api/referral/share", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	env.loginDemo()
	resp, data := env.do(http.MethodGet, "/api/referral/share", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var links services.ShareLinks
	require.NoError(t, json.Unmarshal(data, &links))
	assert.Equal(t, "https://vitalrecife.com/ref/JOAO123", links.Link)
	assert.True(t, strings.HasPrefix(links.WhatsAppURL, "https://wa.me/?text="))
	assert.True(t, strings.HasPrefix(links.MailtoURL, "mailto:?subject="))
}

func TestCart(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()
	id := 1
	env.navigate("product", &id)

	resp, data := env.do(http.MethodPost, "/api/cart", dto.CartRequest{ProductID: 1, Quantity: 2})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, noticeMessages(decodePage(t, data)), "2x Whey Protein Premium adicionado ao carrinho!")

	resp, data = env.do(http.MethodPost, "/api/cart", dto.CartRequest{ProductID: 1, Quantity: 1000})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, noticeMessages(decodePage(t, data)), "47x Whey Protein Premium adicionado ao carrinho!")

	resp, _ = env.do(http.MethodPost, "/api/cart", dto.CartRequest{ProductID: 404})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, data = env.do(http.MethodPost, "/api/cart/checkout", dto.CartRequest{ProductID: 1})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page := decodePage(t, data)
	assert.Equal(t, "login", page.ID)
	assert.Contains(t, noticeMessages(page), "Faça login para finalizar a compra")

	env.loginDemo()
	env.navigate("product", &id)
	resp, data = env.do(http.MethodPost, "/api/cart/checkout", dto.CartRequest{ProductID: 1})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page = decodePage(t, data)
	assert.Equal(t, "product", page.ID)
	assert.Contains(t, noticeMessages(page), "Redirecionando para pagamento...")
}

func TestProductPage(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()

	missing := 999
	page := env.navigate("product", &missing)
	assert.Equal(t, "product", page.ID)
	assert.Contains(t, string(page.Content), `"state":"not_found"`)

	id := 2
	env.navigate("product", &id)
	resp, data := env.do(http.MethodGet, "/api/page?tab=howto&qty=3", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page = decodePage(t, data)

	var content struct {
		State    string `json:"state"`
		Tab      string `json:"tab"`
		Quantity int    `json:"quantity"`
		Product  struct {
			ID int `json:"id"`
		} `json:"product"`
	}
	require.NoError(t, json.Unmarshal(page.Content, &content))
	assert.Equal(t, "ok", content.State)
	assert.Equal(t, 2, content.Product.ID)
	assert.Equal(t, "howto", content.Tab)
	assert.Equal(t, 3, content.Quantity)
}

func TestPageLocalState(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()
	env.loginDemo()
	env.navigate("dashboard", nil)

	resp, data := env.do(http.MethodPut, "/api/page/local", dto.LocalStateRequest{Key: "tab", Value: "goals"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(decodePage(t, data).Content), `"tab":"goals"`)

	resp, _ = env.do(http.MethodPut, "/api/page/local", dto.LocalStateRequest{Key: "user", Value: "x"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env.navigate("referral", nil)
	page := env.navigate("dashboard", nil)
	assert.Contains(t, string(page.Content), `"tab":"overview"`)
}

func TestExpiredSessionReopensAnonymous(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()
	env.loginDemo()

	env.store.Sweep(time.Now().Add(2 * time.Hour))

	page := env.navigate("dashboard", nil)
	assert.Equal(t, "ecommerce", page.ID)
	assert.Nil(t, page.Navbar.User)
}

func TestLegalTerms(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	resp, data := env.do(http.MethodGet, "/api/legal/terms", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(data), "Termos de Uso")
	assert.Contains(t, string(data), "contato@vitalrecife.com")
}

func TestActionsRequireOwningPage(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	env.startSession()

	resp, _ := env.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "joao@email.com", Password: "123456"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, _ = env.do(http.MethodPost, "/api/cart", dto.CartRequest{ProductID: 1})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, _ = env.do(http.MethodPost, "/api/auth/reset-password", dto.ResetPasswordRequest{Email: "joao@email.com"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	env.loginDemo()
	env.navigate("dashboard", nil)

	resp, _ = env.do(http.MethodPut, "/api/profile", dto.UpdateProfileRequest{
		Name: "Mallory", Email: "m@x.com", Phone: "1",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, _ = env.do(http.MethodPut, "/api/profile/password", dto.ChangePasswordRequest{
		CurrentPassword: "123456", NewPassword: "novasenha", ConfirmPassword: "novasenha",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, _ = env.do(http.MethodPost, "/api/rewards/3/claim", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, _ = env.do(http.MethodPost, "/api/auth/register?wait=true", dto.RegisterRequest{
		Name: "Mallory", Email: "m@x.com", Phone: "1",
		Password: "segredo", ConfirmPassword: "segredo", AcceptTerms: true,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	page := env.navigate("profile", nil)
	assert.Equal(t, "João Silva", page.Navbar.User.Name)
	assert.Equal(t, "R$ 45.50", page.Navbar.User.Cash)

	resp, _ = env.do(http.MethodPut, "/api/profile", dto.UpdateProfileRequest{
		Name: "João S.", Email: "joao@email.com", Phone: "1",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

const outOfStockCatalog = `
categories: [Creatina]
products:
  - {id: 1, name: Creatina Pura, category: Creatina, price: 59.9, original_price: 79.9, stock: 0, images: [a.jpg]}
`

func TestCart_OutOfStock(t *testing.T) {
	cat, err := catalog.Parse([]byte(outOfStockCatalog))
	require.NoError(t, err)
	env := newTestEnv(t, testConfig(), cat)
	env.startSession()
	id := 1
	env.navigate("product", &id)

	resp, _ := env.do(http.MethodPost, "/api/cart", dto.CartRequest{ProductID: 1, Quantity: 2})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp, _ = env.do(http.MethodPost, "/api/cart/checkout", dto.CartRequest{ProductID: 1})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
