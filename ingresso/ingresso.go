// Package ingresso renders the confirmation PDF sent to the registrant.
// The embedded QR code is the gate-entry credential scanned at the event.
package ingresso

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/arrancadaroraima/inscricoes-api/models"
)

// Dados carries everything printed on the ticket.
type Dados struct {
	Referencia string
	Preparador string
	Equipe     string
	Piloto     string
	Email      string
	Evento     string
	Motos      []models.Moto
	Confirmado time.Time
}

// Credencial is the QR payload: preparer, team, vehicle count and event,
// pipe-separated. Gate staff match it against the printed list.
func Credencial(d Dados) string {
	return fmt.Sprintf("%s|%s|%d|%s", d.Preparador, d.Equipe, len(d.Motos), d.Evento)
}

// Gerar renders the ticket and returns the PDF bytes.
func Gerar(d Dados) ([]byte, error) {
	png, err := qrcode.Encode(Credencial(d), qrcode.Medium, 512)
	if err != nil {
		return nil, fmt.Errorf("qr code: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("Comprovante de Inscrição"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr(d.Evento), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	linha := func(rotulo, valor string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, tr(rotulo), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, tr(valor), "", 1, "L", false, 0, "")
	}

	linha("Preparador", d.Preparador)
	linha("Equipe", d.Equipe)
	if d.Piloto != "" {
		linha("Piloto", d.Piloto)
	}
	linha("Email", d.Email)
	linha("Confirmado em", d.Confirmado.Format("02/01/2006 15:04"))
	linha("Referência", d.Referencia)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Motos inscritas (%d)", len(d.Motos))), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for i, m := range d.Motos {
		texto := fmt.Sprintf("%d. %s  nº %s  %s  %s", i+1, m.Modelo, m.Numero, m.Cor, m.Categoria)
		pdf.CellFormat(0, 6, tr(texto), "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("credencial", opts, bytes.NewReader(png))
	x := (210.0 - 60.0) / 2
	pdf.ImageOptions("credencial", x, pdf.GetY(), 60, 60, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + 62)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, tr("Apresente este código na entrada do evento."), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
