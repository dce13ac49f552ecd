package handlers

import (
	"html"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const legalStyle = `<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>`

type LegalHandler struct {
	contact string
}

// NewLegalHandler derives the contact address from the public site URL.
func NewLegalHandler(siteURL string) *LegalHandler {
	host := strings.TrimPrefix(strings.TrimPrefix(siteURL, "https://"), "http://")
	host = strings.TrimSuffix(host, "/")
	return &LegalHandler{contact: html.EscapeString("contato@" + host)}
}

func (h *LegalHandler) TermsOfUse(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html lang="pt-BR"><head><title>Termos de Uso - Vital Recife Suplementos</title>
` + legalStyle + `
</head><body>
<h1>Termos de Uso</h1>
<p>Última atualização: outubro de 2026</p>
<h2>Aceitação</h2>
<p>Ao se cadastrar no programa de filiados da Vital Recife Suplementos, você concorda com estes termos.</p>
<h2>Programa de Filiados</h2>
<p>Filiados recebem cashback por indicações conforme o nível (Bronze, Silver ou Gold). Os valores e benefícios de cada nível são exibidos na área do filiado.</p>
<h2>Cashback e Saques</h2>
<p>O saque de cashback fica disponível a partir de R$ 50.00 de saldo.</p>
<h2>Conduta</h2>
<p>É proibido usar links de indicação em spam ou em conteúdo enganoso. Contas que violarem estes termos podem ser suspensas.</p>
<h2>Contato</h2>
<p>Dúvidas: ` + h.contact + `</p>
</body></html>`)
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html lang="pt-BR"><head><title>Política de Privacidade - Vital Recife Suplementos</title>
` + legalStyle + `
</head><body>
<h1>Política de Privacidade</h1>
<p>Última atualização: outubro de 2026</p>
<h2>Dados Coletados</h2>
<p>Nome, e-mail e telefone informados no cadastro, usados apenas durante a sua sessão.</p>
<h2>Armazenamento</h2>
<p>Os dados da conta ficam em memória e são descartados ao sair ou quando a sessão expira.</p>
<h2>Contato</h2>
<p>Dúvidas: ` + h.contact + `</p>
</body></html>`)
}
