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
	"github.com/pixil98/go-pixelmmo/internal/auth"
	"github.com/pixil98/go-pixelmmo/internal/game"
	"github.com/pixil98/go-pixelmmo/internal/journal"
	"github.com/pixil98/go-pixelmmo/internal/storage"
)

const secretEnv = "PIXELMMO_AUTH_SECRET"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "create-player":
		err = createPlayerCmd(os.Args[2:])
	case "token":
		err = tokenCmd(os.Args[2:])
	case "journal":
		err = journalCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin <create-player|token|journal> [flags]")
}

func createPlayerCmd(args []string) error {
	fs := flag.NewFlagSet("create-player", flag.ExitOnError)
	driver := fs.String("driver", "sqlite", "storage driver: file, sqlite or postgres")
	path := fs.String("path", "./data/players.db", "storage path, or dsn for postgres")
	username := fs.String("username", "", "display name (required)")
	subject := fs.String("subject", "", "account id (defaults to a new uuid)")
	secret := fs.String("secret", os.Getenv(secretEnv), "token signing secret; prints a token when set")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	_ = fs.Parse(args)

	if strings.TrimSpace(*username) == "" {
		return errors.New("missing -username")
	}
	if *subject == "" {
		*subject = uuid.NewString()
	}

	repo, closeRepo, err := openRepository(*driver, *path)
	if err != nil {
		return err
	}
	defer func() { _ = closeRepo() }()

	rec := game.NewPlayerRecord(*subject, *username)
	if err := repo.Create(context.Background(), rec); err != nil {
		return fmt.Errorf("creating player: %w", err)
	}
	fmt.Println("subject:", rec.Subject)

	if *secret == "" {
		return nil
	}
	tok, err := auth.NewIssuer(*secret).Issue(rec.Subject, rec.Username, *ttl)
	if err != nil {
		return fmt.Errorf("issuing token: %w", err)
	}
	fmt.Println("token:", tok)
	return nil
}

func tokenCmd(args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	subject := fs.String("subject", "", "account id (required)")
	username := fs.String("username", "", "display name (required)")
	secret := fs.String("secret", os.Getenv(secretEnv), "token signing secret")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	_ = fs.Parse(args)

	if *subject == "" || *username == "" {
		return errors.New("missing -subject or -username")
	}
	if *secret == "" {
		return fmt.Errorf("missing -secret or %s", secretEnv)
	}

	tok, err := auth.NewIssuer(*secret).Issue(*subject, *username, *ttl)
	if err != nil {
		return fmt.Errorf("issuing token: %w", err)
	}
	fmt.Println(tok)
	return nil
}

func journalCmd(args []string) error {
	fs := flag.NewFlagSet("journal", flag.ExitOnError)
	event := fs.String("event", "", "only print this event name")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return errors.New("missing journal file")
	}

	enc := json.NewEncoder(os.Stdout)
	for _, path := range fs.Args() {
		entries, err := journal.ReadFile(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if *event != "" && e.Event != *event {
				continue
			}
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
	}
	return nil
}

func openRepository(driver, path string) (storage.Repository, func() error, error) {
	switch driver {
	case "postgres":
		repo, err := storage.OpenPostgres(context.Background(), path)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case "sqlite":
		repo, err := storage.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case "file":
		repo, err := storage.NewFileRepository(path)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
