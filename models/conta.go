package models

import "github.com/uptrace/bun"

// Conta is a user account with bcrypt-hashed password. Accounts cannot
// log in until the verification link has been clicked.
type Conta struct {
	bun.BaseModel `bun:"table:contas,alias:ct"`

	ID               int     `bun:"id,pk,autoincrement" json:"id"`
	Nome             string  `bun:"nome,notnull" json:"nome"`
	Email            string  `bun:"email,notnull,unique" json:"email"`
	SenhaHash        string  `bun:"senha_hash,notnull" json:"-"`
	Verificado       bool    `bun:"verificado,notnull,default:false" json:"verificado"`
	TokenVerificacao *string `bun:"token_verificacao" json:"-"`
}
