package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Evento describes one race event shown on the public listing.
type Evento struct {
	bun.BaseModel `bun:"table:eventos,alias:ev"`

	ID        string    `bun:"id,pk" json:"id"`
	Nome      string    `bun:"nome,notnull" json:"nome"`
	Data      string    `bun:"data" json:"data"`
	Local     string    `bun:"local" json:"local"`
	Descricao string    `bun:"descricao" json:"descricao"`
	Preco     float64   `bun:"preco" json:"preco"`
	CriadoEm  time.Time `bun:"criado_em,notnull" json:"criadoEm"`
}
