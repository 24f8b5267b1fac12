package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arrancadaroraima/inscricoes-api/models"
	"github.com/arrancadaroraima/inscricoes-api/planilha"
)

// Inscritos returns every confirmed registration row, oldest first.
func (h *Handler) Inscritos(c echo.Context) error {
	linhas, err := h.d.Inscricoes.All(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if linhas == nil {
		linhas = []models.Inscricao{}
	}
	return c.JSON(http.StatusOK, linhas)
}

// BaixarPlanilha regenerates the xlsx artifact from the database and sends
// it as a download.
func (h *Handler) BaixarPlanilha(c echo.Context) error {
	linhas, err := h.d.Inscricoes.All(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := planilha.Gravar(h.d.PlanilhaPath, linhas); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Attachment(h.d.PlanilhaPath, "inscricoes_confirmadas.xlsx")
}
