// ledgerctl is the operator tool for a liveticket deployment: it mints
// bearer tokens, hashes the admin key and dumps the raw ledger store.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/farellandr/liveticket/config"
	"github.com/farellandr/liveticket/internal/auth"
	"github.com/farellandr/liveticket/internal/codec"
	"github.com/farellandr/liveticket/internal/models"
	"github.com/farellandr/liveticket/internal/store"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		printUsage(os.Stderr)
		return errors.New("subcommand required")
	}

	switch args[0] {
	case "token":
		return runToken(args[1:], stdout, time.Now())
	case "hash-admin-key":
		return runHashAdminKey(args[1:], stdout)
	case "keys":
		return runKeys(args[1:], stdout)
	case "-h", "--help", "help":
		printUsage(stdout)
		return nil
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown subcommand: %q", args[0])
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: ledgerctl <subcommand> [flags]

Subcommands:
  token            Mint a bearer token for an identity
  hash-admin-key   Print the bcrypt hash to use as ADMIN_KEY_HASH
  keys             Dump every stored key with its decoded value

Run 'ledgerctl <subcommand> --help' for subcommand flags.
`)
}

func runToken(args []string, stdout io.Writer, now time.Time) error {
	flags := pflag.NewFlagSet("token", pflag.ContinueOnError)
	identity := flags.String("identity", "", "identity the token asserts (required)")
	ttl := flags.Duration("ttl", 24*time.Hour, "token lifetime")
	secret := flags.String("secret", os.Getenv("JWT_SECRET"), "HS256 signing secret (default $JWT_SECRET)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	id, err := models.ParseIdentity(*identity)
	if err != nil {
		return fmt.Errorf("--identity: %w", err)
	}
	if *ttl <= 0 {
		return fmt.Errorf("--ttl must be positive, got %s", *ttl)
	}

	token, err := auth.IssueToken([]byte(*secret), id, *ttl, now)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, token)
	return nil
}

func runHashAdminKey(args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("hash-admin-key", pflag.ContinueOnError)
	key := flags.String("key", "", "admin key to hash (required)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *key == "" {
		return errors.New("--key is required")
	}

	hash, err := auth.HashAdminKey(*key)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, hash)
	return nil
}

func runKeys(args []string, stdout io.Writer) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	flags := pflag.NewFlagSet("keys", pflag.ContinueOnError)
	flags.StringVar(&cfg.StoreDriver, "driver", cfg.StoreDriver, "store backend: sqlite, postgres or memory")
	flags.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "sqlite database file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	st, err := config.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return dumpKeys(context.Background(), st, stdout)
}

func dumpKeys(ctx context.Context, st store.Store, stdout io.Writer) error {
	return st.Scan(ctx, func(key store.Key, value []byte) error {
		diag, err := codec.Diagnose(value)
		if err != nil {
			diag = fmt.Sprintf("<undecodable: %v>", err)
		}
		_, err = fmt.Fprintf(stdout, "%s\t%s\n", key, diag)
		return err
	})
}
