// cmd/importar/main.go
// One-shot import of the legacy on-disk stores into PostgreSQL: the
// usuarios.json / eventos.json files and the confirmed-registrations xlsx
// kept by earlier revisions of the backend.
//
// Usage:
//
//	go run ./cmd/importar -usuarios usuarios.json -eventos eventos.json \
//	  -planilha inscricoes_confirmadas.xlsx
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/arrancadaroraima/inscricoes-api/config"
	bundb "github.com/arrancadaroraima/inscricoes-api/db"
	"github.com/arrancadaroraima/inscricoes-api/models"
	"github.com/arrancadaroraima/inscricoes-api/planilha"

	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// Legacy JSON shapes. Earlier revisions stored plain-text passwords; those
// get hashed on the way in and the accounts marked verified (the legacy
// backend had no verification step).
type legadoUsuario struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type legadoEvento struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Data      string  `json:"data"`
	Local     string  `json:"local"`
	Descricao string  `json:"descricao"`
	Preco     float64 `json:"preco"`
}

func main() {
	usuarios := flag.String("usuarios", "", "path to legacy usuarios.json")
	eventos := flag.String("eventos", "", "path to legacy eventos.json")
	arquivo := flag.String("planilha", "", "path to legacy inscricoes_confirmadas.xlsx")
	flag.Parse()

	ctx := context.Background()

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	steps := []struct {
		name string
		path string
		fn   func(context.Context, *bun.DB, string) (int, error)
	}{
		{"usuarios", *usuarios, importarUsuarios},
		{"eventos", *eventos, importarEventos},
		{"inscricoes", *arquivo, importarInscricoes},
	}

	for _, s := range steps {
		if s.path == "" {
			continue
		}
		n, err := s.fn(ctx, db, s.path)
		if err != nil {
			log.Fatalf("importar %s: %v", s.name, err)
		}
		log.Printf("%s: %d rows imported", s.name, n)
	}
}

func importarUsuarios(ctx context.Context, db *bun.DB, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var legados []legadoUsuario
	if err := json.Unmarshal(raw, &legados); err != nil {
		return 0, err
	}

	count := 0
	for _, u := range legados {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Senha), bcrypt.DefaultCost)
		if err != nil {
			return count, err
		}
		conta := &models.Conta{
			Nome:       u.Nome,
			Email:      u.Email,
			SenhaHash:  string(hash),
			Verificado: true,
		}
		if _, err := db.NewInsert().Model(conta).
			On("CONFLICT (email) DO NOTHING").
			Exec(ctx); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func importarEventos(ctx context.Context, db *bun.DB, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var legados []legadoEvento
	if err := json.Unmarshal(raw, &legados); err != nil {
		return 0, err
	}

	count := 0
	for _, le := range legados {
		ev := &models.Evento{
			ID:        le.ID,
			Nome:      le.Nome,
			Data:      le.Data,
			Local:     le.Local,
			Descricao: le.Descricao,
			Preco:     le.Preco,
			CriadoEm:  time.Now(),
		}
		if _, err := db.NewInsert().Model(ev).
			On("CONFLICT (id) DO NOTHING").
			Exec(ctx); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func importarInscricoes(ctx context.Context, db *bun.DB, path string) (int, error) {
	linhas, err := planilha.Ler(path)
	if err != nil {
		return 0, err
	}
	if len(linhas) == 0 {
		return 0, nil
	}
	res, err := db.NewInsert().Model(&linhas).
		On("CONFLICT (referencia, moto_idx) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
