package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gestaopredial/condominio/internal/condominio"
	"github.com/gestaopredial/condominio/internal/db"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	ctx := context.Background()

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if dsn == "" {
		log.Fatal().Msg("defina DB_DSN ou DATABASE_URL")
	}

	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("não foi possível conectar ao banco")
	}
	defer pool.Close()

	service := condominio.NewService(condominio.NewRepository(pool))

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "create":
		if err := runCreate(ctx, service, args); err != nil {
			log.Fatal().Err(err).Msg("falha ao criar condomínio")
		}
	case "list":
		if err := runList(ctx, service); err != nil {
			log.Fatal().Err(err).Msg("falha ao listar condomínios")
		}
	case "deactivate":
		if err := runDeactivate(ctx, service, args); err != nil {
			log.Fatal().Err(err).Msg("falha ao desativar condomínio")
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "condominio CLI")
	fmt.Fprintln(os.Stderr, "uso:")
	fmt.Fprintln(os.Stderr, "  condominio create --slug residencial-sol --nome \"Residencial Sol\" [--endereco \"Rua A, 10\"] [--cidade Recife] [--uf PE]")
	fmt.Fprintln(os.Stderr, "  condominio list")
	fmt.Fprintln(os.Stderr, "  condominio deactivate --id <uuid>")
}

func runCreate(ctx context.Context, service *condominio.Service, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		slug     = fs.String("slug", "", "slug do condomínio (ex.: residencial-sol)")
		nome     = fs.String("nome", "", "nome exibido")
		endereco = fs.String("endereco", "", "endereço completo")
		cidade   = fs.String("cidade", "", "cidade")
		uf       = fs.String("uf", "", "unidade federativa")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *slug == "" || *nome == "" {
		return errors.New("slug e nome são obrigatórios")
	}

	created, err := service.Create(ctx, condominio.CreateInput{
		Slug:     *slug,
		Nome:     *nome,
		Endereco: *endereco,
		Cidade:   *cidade,
		UF:       *uf,
	})
	if err != nil {
		return err
	}

	output, _ := json.MarshalIndent(created, "", "  ")
	fmt.Println(string(output))
	return nil
}

func runList(ctx context.Context, service *condominio.Service) error {
	condominios, err := service.List(ctx)
	if err != nil {
		return err
	}

	if len(condominios) == 0 {
		fmt.Println("nenhum condomínio cadastrado")
		return nil
	}

	encoded, _ := json.MarshalIndent(condominios, "", "  ")
	fmt.Println(string(encoded))
	return nil
}

func runDeactivate(ctx context.Context, service *condominio.Service, args []string) error {
	fs := flag.NewFlagSet("deactivate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	idStr := fs.String("id", "", "identificador do condomínio")

	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := uuid.Parse(*idStr)
	if err != nil {
		return errors.New("id inválido")
	}

	return service.Deactivate(ctx, id)
}
