package planilha

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrancadaroraima/inscricoes-api/models"
)

func TestGravarELer(t *testing.T) {
	caminho := filepath.Join(t.TempDir(), "inscricoes.xlsx")
	quando := time.Date(2025, 9, 20, 10, 30, 0, 0, time.UTC)

	linhas := []models.Inscricao{
		{
			Referencia: "R1", MotoIdx: 0,
			Preparador: "Ana", Equipe: "X", Piloto: "Bia", Email: "b@x.com",
			Evento: "GP1", Modelo: "CBR", Numero: "7", Cor: "red", Categoria: "Open",
			DataInscricao: quando, StatusPagamento: "Pago", ModoPagamento: "pix",
		},
		{
			Referencia: "R1", MotoIdx: 1,
			Preparador: "Ana", Equipe: "X", Piloto: "Bia", Email: "b@x.com",
			Evento: "GP1", Modelo: "R1", Numero: "9", Cor: "blue", Categoria: "Força Livre",
			DataInscricao: quando, StatusPagamento: "Pago", ModoPagamento: "pix",
		},
	}

	require.NoError(t, Gravar(caminho, linhas))

	lidas, err := Ler(caminho)
	require.NoError(t, err)
	require.Len(t, lidas, 2)

	assert.Equal(t, "R1", lidas[0].Referencia)
	assert.Equal(t, 0, lidas[0].MotoIdx)
	assert.Equal(t, "CBR", lidas[0].Modelo)
	assert.Equal(t, "Open", lidas[0].Categoria)
	assert.Equal(t, "Pago", lidas[0].StatusPagamento)
	assert.Equal(t, 1, lidas[1].MotoIdx)
	assert.Equal(t, "Força Livre", lidas[1].Categoria)
	assert.True(t, quando.Equal(lidas[1].DataInscricao))
}

func TestGravarVazio(t *testing.T) {
	caminho := filepath.Join(t.TempDir(), "vazio.xlsx")
	require.NoError(t, Gravar(caminho, nil))

	lidas, err := Ler(caminho)
	require.NoError(t, err)
	assert.Empty(t, lidas)
}
