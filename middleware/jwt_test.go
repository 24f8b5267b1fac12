package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var chave = []byte("segredo-de-teste")

func tokenAssinado(t *testing.T, email, tipo string, key []byte) string {
	t.Helper()
	claims := &Claims{
		Email: email,
		Tipo:  tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func chamar(t *testing.T, mws []echo.MiddlewareFunc, token string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return rec, h(c)
}

func TestJWTValido(t *testing.T) {
	rec, err := chamar(t, []echo.MiddlewareFunc{JWT(chave)},
		tokenAssinado(t, "ana@x.com", "piloto", chave))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAusente(t *testing.T) {
	_, err := chamar(t, []echo.MiddlewareFunc{JWT(chave)}, "")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestJWTChaveErrada(t *testing.T) {
	_, err := chamar(t, []echo.MiddlewareFunc{JWT(chave)},
		tokenAssinado(t, "ana@x.com", "piloto", []byte("outra-chave")))
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.NotEqual(t, http.StatusOK, he.Code)
}

func TestAdminExigeTipo(t *testing.T) {
	mws := []echo.MiddlewareFunc{JWT(chave), Admin()}

	rec, err := chamar(t, mws, tokenAssinado(t, "admin@x.com", TipoAdmin, chave))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err = chamar(t, mws, tokenAssinado(t, "ana@x.com", "piloto", chave))
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
}
