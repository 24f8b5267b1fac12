package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Moto is one vehicle entry inside a registration.
type Moto struct {
	Modelo    string `json:"modelo"`
	Numero    string `json:"numero"`
	Cor       string `json:"cor"`
	Categoria string `json:"categoria"`
}

// Pendente is a submitted registration waiting for payment confirmation.
// The reference is echoed back by the payment provider as external_reference.
// Rows are never mutated after insert except for the consumed marker.
type Pendente struct {
	bun.BaseModel `bun:"table:pendentes,alias:pd"`

	Referencia  string     `bun:"referencia,pk" json:"referencia"`
	Preparador  string     `bun:"preparador,notnull" json:"preparador"`
	Equipe      string     `bun:"equipe,notnull" json:"equipe"`
	Piloto      string     `bun:"piloto" json:"piloto"`
	Email       string     `bun:"email,notnull" json:"email"`
	Evento      string     `bun:"evento,notnull" json:"evento"`
	Motos       []Moto     `bun:"motos,notnull,type:jsonb" json:"motos"`
	CriadoEm    time.Time  `bun:"criado_em,notnull" json:"criadoEm"`
	ExpiraEm    time.Time  `bun:"expira_em,notnull" json:"expiraEm"`
	ConsumidoEm *time.Time `bun:"consumido_em" json:"consumidoEm,omitempty"`
}
