package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arrancadaroraima/inscricoes-api/models"
)

func novoHandler(contas *fakeContas, verificacao *fakeVerificacao) *Handler {
	d := Deps{
		Contas:     contas,
		JWTKey:     []byte("segredo-de-teste"),
		AdminEmail: "admin@arrancada.com",
		AdminSenha: "super-secreta",
		BaseURL:    "https://api.test",
		SiteURL:    "https://site.test",
	}
	if verificacao != nil {
		d.Verificacao = verificacao
	}
	return New(d)
}

func postJSON(t *testing.T, h echo.HandlerFunc, path, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestCriarConta(t *testing.T) {
	contas := novoFakeContas()
	verificacao := &fakeVerificacao{}
	h := novoHandler(contas, verificacao)

	rec, err := postJSON(t, h.CriarConta, "/criar-conta",
		`{"nome":"Ana","email":"ana@x.com","senha":"segredo"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	conta := contas.porEmail["ana@x.com"]
	require.NotNil(t, conta)
	assert.False(t, conta.Verificado)
	require.NotNil(t, conta.TokenVerificacao)
	// Stored hash must not be the plain password.
	assert.NotEqual(t, "segredo", conta.SenhaHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(conta.SenhaHash), []byte("segredo")))

	require.Len(t, verificacao.enviados, 1)
	assert.Equal(t, "ana@x.com", verificacao.enviados[0])
	assert.Contains(t, verificacao.links[0], "/verificar-email?token=")
}

func TestCriarContaEmailDuplicado(t *testing.T) {
	contas := novoFakeContas()
	h := novoHandler(contas, nil)

	_, err := postJSON(t, h.CriarConta, "/criar-conta",
		`{"nome":"Ana","email":"ana@x.com","senha":"segredo"}`)
	require.NoError(t, err)

	_, err = postJSON(t, h.CriarConta, "/criar-conta",
		`{"nome":"Outra","email":"ana@x.com","senha":"outra"}`)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	// No duplicate entry and no mutation of the original account.
	assert.Len(t, contas.porEmail, 1)
	assert.Equal(t, "Ana", contas.porEmail["ana@x.com"].Nome)
}

func TestCriarContaCamposObrigatorios(t *testing.T) {
	h := novoHandler(novoFakeContas(), nil)

	_, err := postJSON(t, h.CriarConta, "/criar-conta", `{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestLoginAdmin(t *testing.T) {
	h := novoHandler(novoFakeContas(), nil)

	rec, err := postJSON(t, h.Login, "/login",
		`{"email":"admin@arrancada.com","senha":"super-secreta"}`)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Autorizado)
	assert.Equal(t, "admin", resp.Tipo)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginContaVerificada(t *testing.T) {
	contas := novoFakeContas()
	hash, _ := bcrypt.GenerateFromPassword([]byte("segredo"), bcrypt.MinCost)
	require.NoError(t, contas.Insert(context.Background(), &models.Conta{
		Nome: "Ana", Email: "ana@x.com", SenhaHash: string(hash), Verificado: true,
	}))
	h := novoHandler(contas, nil)

	rec, err := postJSON(t, h.Login, "/login", `{"email":"ana@x.com","senha":"segredo"}`)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Autorizado)
	assert.Equal(t, "piloto", resp.Tipo)
	assert.Equal(t, "ana@x.com", resp.Email)
}

func TestLoginRecusaUniforme(t *testing.T) {
	contas := novoFakeContas()
	hash, _ := bcrypt.GenerateFromPassword([]byte("segredo"), bcrypt.MinCost)
	naoVerificada := &models.Conta{Nome: "Ana", Email: "ana@x.com", SenhaHash: string(hash)}
	require.NoError(t, contas.Insert(context.Background(), naoVerificada))
	h := novoHandler(contas, nil)

	// Unknown email, wrong password and unverified account must be
	// indistinguishable to the caller.
	casos := map[string]string{
		"email desconhecido":   `{"email":"ninguem@x.com","senha":"segredo"}`,
		"senha errada":         `{"email":"ana@x.com","senha":"errada"}`,
		"conta não verificada": `{"email":"ana@x.com","senha":"segredo"}`,
	}
	for nome, body := range casos {
		t.Run(nome, func(t *testing.T) {
			rec, err := postJSON(t, h.Login, "/login", body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"autorizado":false}`, rec.Body.String())
		})
	}
}

func TestVerificarEmail(t *testing.T) {
	contas := novoFakeContas()
	token := "token-123"
	require.NoError(t, contas.Insert(context.Background(), &models.Conta{
		Nome: "Ana", Email: "ana@x.com", SenhaHash: "h", TokenVerificacao: &token,
	}))
	h := novoHandler(contas, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/verificar-email?token=token-123", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.VerificarEmail(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://site.test/email-verificado", rec.Header().Get(echo.HeaderLocation))
	assert.True(t, contas.porEmail["ana@x.com"].Verificado)
	assert.Nil(t, contas.porEmail["ana@x.com"].TokenVerificacao)
}

func TestVerificarEmailTokenInvalido(t *testing.T) {
	h := novoHandler(novoFakeContas(), nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/verificar-email?token=nada", nil)
	rec := httptest.NewRecorder()
	err := h.VerificarEmail(e.NewContext(req, rec))
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}
