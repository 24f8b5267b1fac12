// Package planilha maintains the local .xlsx artifact with every confirmed
// registration, one row per vehicle. The file is rebuilt from the database
// after each confirmation, so it can be regenerated at any time.
package planilha

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arrancadaroraima/inscricoes-api/models"
)

const aba = "Inscricoes"

var cabecalho = []string{
	"Referência", "Moto", "Nome do Preparador", "Equipe", "Piloto", "Email",
	"Evento", "Modelo", "Número", "Cor", "Categoria",
	"Data de Inscrição", "Status de Pagamento", "Modo de Pagamento",
}

// Arquivo binds Gravar to a fixed path so the confirmation pipeline can
// rewrite the artifact without knowing where it lives.
type Arquivo struct {
	Caminho string
}

func (a Arquivo) Gravar(linhas []models.Inscricao) error {
	return Gravar(a.Caminho, linhas)
}

// Gravar rewrites the artifact with the given rows.
func Gravar(caminho string, linhas []models.Inscricao) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", aba); err != nil {
		return err
	}

	for col, h := range cabecalho {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(aba, cell, h); err != nil {
			return err
		}
	}

	for i, l := range linhas {
		valores := []interface{}{
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
		}
		for col, v := range valores {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(aba, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(caminho); err != nil {
		return fmt.Errorf("save %s: %w", caminho, err)
	}
	return nil
}

// Ler loads rows back from an artifact, used by the legacy importer.
// Cells beyond the known columns are ignored; short rows are padded.
func Ler(caminho string) ([]models.Inscricao, error) {
	f, err := excelize.OpenFile(caminho)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(aba)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	out := make([]models.Inscricao, 0, len(rows)-1)
	for _, row := range rows[1:] {
		get := func(i int) string {
			if i < len(row) {
				return row[i]
			}
			return ""
		}
		quando, err := time.Parse("02/01/2006 15:04", get(11))
		if err != nil {
			quando = time.Time{}
		}
		idx := 0
		fmt.Sscanf(get(1), "%d", &idx)
		if idx > 0 {
			idx--
		}
		out = append(out, models.Inscricao{
			Referencia:      get(0),
			MotoIdx:         idx,
			Preparador:      get(2),
			Equipe:          get(3),
			Piloto:          get(4),
			Email:           get(5),
			Evento:          get(6),
			Modelo:          get(7),
			Numero:          get(8),
			Cor:             get(9),
			Categoria:       get(10),
			DataInscricao:   quando,
			StatusPagamento: get(12),
			ModoPagamento:   get(13),
		})
	}
	return out, nil
}
