package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/arrancadaroraima/inscricoes-api/middleware"
	"github.com/arrancadaroraima/inscricoes-api/models"
)

type criarContaRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	Autorizado bool   `json:"autorizado"`
	Tipo       string `json:"tipo,omitempty"`
	Email      string `json:"email,omitempty"`
	Token      string `json:"token,omitempty"`
}

// CriarConta registers a new account and emails the verification link.
// The account cannot log in until the link is clicked.
func (h *Handler) CriarConta(c echo.Context) error {
	var req criarContaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Nome = strings.TrimSpace(req.Nome)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Nome == "" || req.Email == "" || req.Senha == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "nome, email e senha são obrigatórios")
	}

	existente, err := h.d.Contas.PorEmail(c.Request().Context(), req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if existente != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "email já cadastrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token := uuid.NewString()
	conta := &models.Conta{
		Nome:             req.Nome,
		Email:            req.Email,
		SenhaHash:        string(hash),
		TokenVerificacao: &token,
	}
	if err := h.d.Contas.Insert(c.Request().Context(), conta); err != nil {
		// Concurrent signup with the same address loses to the unique index.
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusBadRequest, "email já cadastrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.d.Verificacao != nil {
		link := h.d.BaseURL + "/verificar-email?token=" + token
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.d.Timeout)
		defer cancel()
		if err := h.d.Verificacao.EnviarVerificacao(ctx, req.Email, req.Nome, link); err != nil {
			zap.L().Warn("enviar email de verificação",
				zap.String("email", req.Email), zap.Error(err))
		}
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"mensagem": "Conta criada. Verifique seu email para ativá-la.",
	})
}

// Login checks the privileged admin credential first, then the account
// store. Unknown email, wrong password and unverified accounts all answer
// the same way so the endpoint cannot be used to enumerate accounts.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Email == strings.ToLower(h.d.AdminEmail) && req.Senha == h.d.AdminSenha {
		token, err := h.issueToken(req.Email, mw.TipoAdmin)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, loginResponse{
			Autorizado: true, Tipo: mw.TipoAdmin, Email: req.Email, Token: token,
		})
	}

	conta, err := h.d.Contas.PorEmail(c.Request().Context(), req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if conta == nil || !conta.Verificado ||
		bcrypt.CompareHashAndPassword([]byte(conta.SenhaHash), []byte(req.Senha)) != nil {
		return c.JSON(http.StatusUnauthorized, loginResponse{Autorizado: false})
	}

	token, err := h.issueToken(conta.Email, "piloto")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, loginResponse{
		Autorizado: true, Tipo: "piloto", Email: conta.Email, Token: token,
	})
}

// VerificarEmail activates the account carrying the token and sends the
// browser back to the site.
func (h *Handler) VerificarEmail(c echo.Context) error {
	token := strings.TrimSpace(c.QueryParam("token"))
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token inválido")
	}

	conta, err := h.d.Contas.PorToken(c.Request().Context(), token)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if conta == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "token inválido")
	}

	if err := h.d.Contas.MarcarVerificado(c.Request().Context(), conta.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, h.d.SiteURL+"/email-verificado")
}

// issueToken signs a JWT valid for 30 days.
func (h *Handler) issueToken(email, tipo string) (string, error) {
	claims := &mw.Claims{
		Email: email,
		Tipo:  tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().AddDate(0, 0, 30)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.d.JWTKey)
}
