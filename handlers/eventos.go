package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arrancadaroraima/inscricoes-api/models"
)

type criarEventoRequest struct {
	Nome      string  `json:"nome"`
	Data      string  `json:"data"`
	Local     string  `json:"local"`
	Descricao string  `json:"descricao"`
	Preco     float64 `json:"preco"`
}

// Pointer fields so an omitted field is left untouched (shallow merge).
type atualizarEventoRequest struct {
	Nome      *string  `json:"nome"`
	Data      *string  `json:"data"`
	Local     *string  `json:"local"`
	Descricao *string  `json:"descricao"`
	Preco     *float64 `json:"preco"`
}

// ListarEventos returns the public event catalog.
func (h *Handler) ListarEventos(c echo.Context) error {
	evs, err := h.d.Eventos.Listar(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if evs == nil {
		evs = []models.Evento{}
	}
	return c.JSON(http.StatusOK, evs)
}

// CriarEvento inserts a new event with a time-based opaque id.
func (h *Handler) CriarEvento(c echo.Context) error {
	var req criarEventoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Nome = strings.TrimSpace(req.Nome)
	if req.Nome == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "nome é obrigatório")
	}

	agora := time.Now()
	ev := &models.Evento{
		ID:        strconv.FormatInt(agora.UnixMilli(), 10),
		Nome:      req.Nome,
		Data:      req.Data,
		Local:     req.Local,
		Descricao: req.Descricao,
		Preco:     req.Preco,
		CriadoEm:  agora,
	}
	if err := h.d.Eventos.Criar(c.Request().Context(), ev); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, ev)
}

// AtualizarEvento merges the provided fields into the stored event.
func (h *Handler) AtualizarEvento(c echo.Context) error {
	id := c.Param("id")

	ev, err := h.d.Eventos.Obter(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if ev == nil {
		return echo.NewHTTPError(http.StatusNotFound, "evento não encontrado")
	}

	var req atualizarEventoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Nome != nil {
		ev.Nome = *req.Nome
	}
	if req.Data != nil {
		ev.Data = *req.Data
	}
	if req.Local != nil {
		ev.Local = *req.Local
	}
	if req.Descricao != nil {
		ev.Descricao = *req.Descricao
	}
	if req.Preco != nil {
		ev.Preco = *req.Preco
	}

	if err := h.d.Eventos.Atualizar(c.Request().Context(), ev); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ev)
}

// DeletarEvento removes the event with the given id.
func (h *Handler) DeletarEvento(c echo.Context) error {
	id := c.Param("id")

	ev, err := h.d.Eventos.Obter(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if ev == nil {
		return echo.NewHTTPError(http.StatusNotFound, "evento não encontrado")
	}

	if err := h.d.Eventos.Deletar(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
