// Package sheets mirrors the confirmed-registration table to a Google
// Sheet so the organizers always see the current list, replacing whatever
// was there before.
package sheets

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/arrancadaroraima/inscricoes-api/models"
)

const aba = "Inscricoes"

// Client pushes rows to one spreadsheet.
type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

// New builds a Sheets client from a service-account credentials file.
func New(ctx context.Context, credentialsFile, spreadsheetID string) (*Client, error) {
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, err
	}
	return &Client{srv: srv, spreadsheetID: spreadsheetID}, nil
}

// Substituir clears the sheet and rewrites it with the given rows. The
// sheet is a derived view; the database stays the system of record.
func (c *Client) Substituir(ctx context.Context, linhas []models.Inscricao) error {
	_, err := c.srv.Spreadsheets.Values.Clear(c.spreadsheetID, aba+"!A:N", &sheetsv4.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clear sheet: %w", err)
	}

	values := [][]interface{}{cabecalho()}
	for _, l := range linhas {
		values = append(values, []interface{}{
			l.Referencia,
			l.MotoIdx + 1,
			l.Preparador,
			l.Equipe,
			l.Piloto,
			l.Email,
			l.Evento,
			l.Modelo,
			l.Numero,
			l.Cor,
			l.Categoria,
			l.DataInscricao.Format("02/01/2006 15:04"),
			l.StatusPagamento,
			l.ModoPagamento,
		})
	}

	vr := &sheetsv4.ValueRange{Values: values}
	_, err = c.srv.Spreadsheets.Values.Update(c.spreadsheetID, aba+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update sheet: %w", err)
	}
	return nil
}

func cabecalho() []interface{} {
	return []interface{}{
		"Referência", "Moto", "Nome do Preparador", "Equipe", "Piloto", "Email",
		"Evento", "Modelo", "Número", "Cor", "Categoria",
		"Data de Inscrição", "Status de Pagamento", "Modo de Pagamento",
	}
}
