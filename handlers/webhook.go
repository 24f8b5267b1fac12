package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/arrancadaroraima/inscricoes-api/pipeline"
)

// The provider sends data.id either as a JSON string or a number depending
// on the notification type, so decode it raw.
type webhookRequest struct {
	Data struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

// Webhook receives payment notifications from the provider. Only the
// payment id is trusted; the status is re-fetched before anything is
// written. 404 tells the provider to retry later.
func (h *Handler) Webhook(c echo.Context) error {
	var req webhookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, ok := parsePagamentoID(req.Data.ID)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "id de pagamento ausente")
	}

	err := h.d.Confirmador.Confirmar(c.Request().Context(), id)
	if errors.Is(err, pipeline.ErrReferenciaDesconhecida) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		zap.L().Error("processar webhook", zap.Int("pagamento", id), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "erro ao processar notificação")
	}

	return c.NoContent(http.StatusOK)
}

func parsePagamentoID(raw json.RawMessage) (int, bool) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0, false
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
