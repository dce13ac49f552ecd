package views

import (
	"github.com/vitalrecife/storefront/internal/pages"
	"github.com/vitalrecife/storefront/internal/session"
)

// LocalResetSentTo is the page-local key holding the address a reset
// link was sent to.
const LocalResetSentTo = "resetSentTo"

type Field struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type Form struct {
	Fields []Field `json:"fields"`
	Submit string  `json:"submit"`
	Busy   bool    `json:"busy"`
}

type FormLink struct {
	Label  string   `json:"label"`
	Target pages.ID `json:"target"`
}

type AuthView struct {
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle"`
	Form     Form       `json:"form"`
	Links    []FormLink `json:"links"`
	Benefits []string   `json:"benefits,omitempty"`
}

func busyWith(s session.Snapshot, kind session.TaskKind) bool {
	return s.Busy && s.PendingKind == kind
}

func buildLogin(in Input) (any, []Action, error) {
	busy := busyWith(in.Session, session.TaskLogin)
	submit := "Entrar"
	if busy {
		submit = "Entrando..."
	}
	v := AuthView{
		Title:    "Bem-vindo de volta",
		Subtitle: "Entre na sua conta de filiado",
		Form: Form{
			Fields: []Field{
				{Name: "email", Label: "E-mail", Type: "email", Required: true},
				{Name: "password", Label: "Senha", Type: "password", Required: true},
				{Name: "rememberMe", Label: "Lembrar de mim", Type: "checkbox"},
			},
			Submit: submit,
			Busy:   busy,
		},
		Links: []FormLink{
			{Label: "Esqueceu a senha?", Target: pages.ResetPassword},
			{Label: "Cadastre-se", Target: pages.Register},
			{Label: "Voltar à loja", Target: pages.Ecommerce},
		},
	}
	return v, []Action{
		navigate(pages.ResetPassword),
		{Name: "login", Method: "POST", Path: "/api/auth/login"},
		{Name: "cancel", Method: "DELETE", Path: "/api/auth/pending"},
	}, nil
}

func buildRegister(in Input) (any, []Action, error) {
	busy := busyWith(in.Session, session.TaskRegister)
	submit := "Criar Conta"
	if busy {
		submit = "Criando conta..."
	}
	v := AuthView{
		Title:    "Torne-se um Filiado",
		Subtitle: "Cadastre-se e comece a ganhar com indicações",
		Form: Form{
			Fields: []Field{
				{Name: "name", Label: "Nome completo", Type: "text", Required: true},
				{Name: "email", Label: "E-mail", Type: "email", Required: true},
				{Name: "phone", Label: "Telefone", Type: "tel", Required: true},
				{Name: "password", Label: "Senha", Type: "password", Required: true},
				{Name: "confirmPassword", Label: "Confirmar senha", Type: "password", Required: true},
				{Name: "referralCode", Label: "Código de indicação (opcional)", Type: "text"},
				{Name: "acceptTerms", Label: "Aceito os termos de uso", Type: "checkbox", Required: true},
				{Name: "acceptNewsletter", Label: "Quero receber novidades", Type: "checkbox"},
			},
			Submit: submit,
			Busy:   busy,
		},
		Links: []FormLink{
			{Label: "Já tem conta? Entrar", Target: pages.Login},
			{Label: "Voltar à loja", Target: pages.Ecommerce},
		},
		Benefits: []string{
			"Ganhe cashback em cada indicação",
			"Suba de nível e desbloqueie recompensas",
			"100 pontos de bônus usando um código de indicação",
		},
	}
	return v, []Action{
		{Name: "register", Method: "POST", Path: "/api/auth/register"},
		{Name: "cancel", Method: "DELETE", Path: "/api/auth/pending"},
		{Name: "terms", Method: "GET", Path: "/api/legal/terms"},
	}, nil
}

type ResetPasswordView struct {
	AuthView
	Sent   bool   `json:"sent"`
	SentTo string `json:"sentTo,omitempty"`
}

func buildResetPassword(in Input) (any, []Action, error) {
	v := ResetPasswordView{
		AuthView: AuthView{
			Title:    "Recuperar senha",
			Subtitle: "Digite seu e-mail para receber o link de recuperação",
			Form: Form{
				Fields: []Field{{Name: "email", Label: "E-mail", Type: "email", Required: true}},
				Submit: "Enviar link",
			},
			Links: []FormLink{
				{Label: "Voltar ao login", Target: pages.Login},
			},
		},
	}
	if to := in.Session.Local[LocalResetSentTo]; to != "" {
		v.Sent = true
		v.SentTo = to
		v.Subtitle = "Enviamos um link de recuperação para " + to
	}
	return v, []Action{
		{Name: "resetPassword", Method: "POST", Path: "/api/auth/reset-password"},
	}, nil
}
