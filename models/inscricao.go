package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Inscricao is one vehicle's confirmed, paid registration row.
// (referencia, moto_idx) is unique so a redelivered webhook cannot
// append the same registration twice.
type Inscricao struct {
	bun.BaseModel `bun:"table:inscricoes,alias:i"`

	ID              int       `bun:"id,pk,autoincrement" json:"id"`
	Referencia      string    `bun:"referencia,notnull" json:"referencia"`
	MotoIdx         int       `bun:"moto_idx,notnull" json:"motoIdx"`
	Preparador      string    `bun:"preparador,notnull" json:"preparador"`
	Equipe          string    `bun:"equipe,notnull" json:"equipe"`
	Piloto          string    `bun:"piloto" json:"piloto"`
	Email           string    `bun:"email,notnull" json:"email"`
	Evento          string    `bun:"evento,notnull" json:"evento"`
	Modelo          string    `bun:"modelo,notnull" json:"modelo"`
	Numero          string    `bun:"numero" json:"numero"`
	Cor             string    `bun:"cor" json:"cor"`
	Categoria       string    `bun:"categoria" json:"categoria"`
	DataInscricao   time.Time `bun:"data_inscricao,notnull" json:"dataInscricao"`
	StatusPagamento string    `bun:"status_pagamento,notnull" json:"statusPagamento"`
	ModoPagamento   string    `bun:"modo_pagamento,notnull" json:"modoPagamento"`
}
