package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/arrancadaroraima/inscricoes-api/models"
)

type criarPagamentoRequest struct {
	Preparador string        `json:"preparador"`
	Equipe     string        `json:"equipe"`
	Piloto     string        `json:"piloto"`
	Email      string        `json:"email"`
	Evento     string        `json:"evento"`
	Motos      []models.Moto `json:"motos"`

	// Legacy single-vehicle body still sent by the old form.
	Moto      string `json:"moto"`
	Categoria string `json:"categoria"`
}

// CriarPagamento stores the submitted registration as pending and returns
// the provider's hosted-checkout link. Nothing is confirmed here; the
// webhook does that after the payment is approved.
func (h *Handler) CriarPagamento(c echo.Context) error {
	var req criarPagamentoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if len(req.Motos) == 0 && req.Moto != "" {
		req.Motos = []models.Moto{{Modelo: req.Moto, Categoria: req.Categoria}}
	}
	if len(req.Motos) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "pelo menos uma moto é obrigatória")
	}

	agora := time.Now()
	pend := &models.Pendente{
		Referencia: uuid.NewString(),
		Preparador: req.Preparador,
		Equipe:     req.Equipe,
		Piloto:     req.Piloto,
		Email:      req.Email,
		Evento:     req.Evento,
		Motos:      req.Motos,
		CriadoEm:   agora,
		ExpiraEm:   agora.Add(h.d.PendenteTTL),
	}
	if err := h.d.Pendentes.Insert(c.Request().Context(), pend); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	titulo := fmt.Sprintf("Inscrição - %s - %s", req.Motos[0].Modelo, req.Motos[0].Categoria)
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.d.Timeout)
	defer cancel()
	link, err := h.d.Provider.CriarCheckout(ctx, pend.Referencia, titulo, len(req.Motos), h.d.Preco)
	if err != nil {
		zap.L().Error("criar checkout",
			zap.String("referencia", pend.Referencia), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"link": link})
}
