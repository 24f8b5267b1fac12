// cmd/adduser/main.go
// Creates or updates an already-verified account in the database.
//
// Usage:
//
//	go run ./cmd/adduser -nome "Ana" -email ana@example.com -senha testing
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/arrancadaroraima/inscricoes-api/config"
	bundb "github.com/arrancadaroraima/inscricoes-api/db"
	"github.com/arrancadaroraima/inscricoes-api/models"
)

func main() {
	nome := flag.String("nome", "", "display name (required)")
	email := flag.String("email", "", "email address (required)")
	senha := flag.String("senha", "", "plain-text password (required)")
	flag.Parse()

	if *nome == "" || *email == "" || *senha == "" {
		log.Fatal("-nome, -email and -senha are all required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*senha), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	conta := &models.Conta{
		Nome:       *nome,
		Email:      *email,
		SenhaHash:  string(hash),
		Verificado: true,
	}

	_, err = db.NewInsert().Model(conta).
		On("CONFLICT (email) DO UPDATE SET senha_hash = EXCLUDED.senha_hash, verificado = TRUE").
		Exec(context.Background())
	if err != nil {
		log.Fatal("insert conta:", err)
	}

	fmt.Printf("conta %q saved\n", *email)
}
