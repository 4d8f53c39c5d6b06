package logic_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/idelchi/armorpass/internal/config"
	"github.com/idelchi/armorpass/internal/credentials"
	"github.com/idelchi/armorpass/internal/generator"
	"github.com/idelchi/armorpass/internal/logic"
)

const master = "correct horse battery staple"

func newConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Vault:    filepath.Join(t.TempDir(), "vault.enc"),
		Password: master,
		Length:   generator.DefaultLength,
	}
}

// run executes fn, supplying the master password again since every unlock consumes it.
func run(t *testing.T, fn func(*config.Config, io.Writer) error, cfg *config.Config) string {
	t.Helper()

	if cfg.Password == "" && cfg.PasswordFile == "" {
		cfg.Password = master
	}

	var out bytes.Buffer

	if err := fn(cfg, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return out.String()
}

func TestLifecycle(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t)

	cfg.Identifier, cfg.Username, cfg.Secret = "github", "alice", "Xy9!kLm#2pQr"
	if got := run(t, logic.RunStore, cfg); got != "Stored github/alice\n" {
		t.Errorf("store output = %q", got)
	}

	cfg.Secret = ""
	if got := run(t, logic.RunGet, cfg); got != "Xy9!kLm#2pQr\n" {
		t.Errorf("get output = %q", got)
	}

	cfg.Identifier, cfg.Username, cfg.Secret = "gitlab", "bob", "another"
	run(t, logic.RunStore, cfg)

	cfg.Identifier, cfg.Secret = "", ""
	if got := run(t, logic.RunList, cfg); got != "github\ngitlab\n" {
		t.Errorf("list output = %q", got)
	}

	cfg.Pattern = "git*"

	got := run(t, logic.RunSearch, cfg)
	if strings.Contains(got, "Xy9!kLm#2pQr") || strings.Count(got, credentials.MaskedSecret) != 2 {
		t.Errorf("search output = %q, want two masked records", got)
	}

	cfg.Identifier, cfg.Username = "github", "alice"

	got = run(t, logic.RunUpdate, cfg)
	if !strings.HasPrefix(got, "Updated github/alice\nGenerated secret: ") {
		t.Fatalf("update output = %q", got)
	}

	generated := strings.TrimSpace(strings.TrimPrefix(got, "Updated github/alice\nGenerated secret: "))
	if utf8.RuneCountInString(generated) != int(generator.DefaultLength) {
		t.Errorf("generated secret %q has the wrong length", generated)
	}

	if got := run(t, logic.RunGet, cfg); got != generated+"\n" {
		t.Errorf("get after update = %q, want %q", got, generated)
	}

	run(t, logic.RunDelete, cfg)

	var out bytes.Buffer

	cfg.Password = master
	if err := logic.RunGet(cfg, &out); !errors.Is(err, credentials.ErrNotFound) {
		t.Errorf("get after delete error = %v, want ErrNotFound", err)
	}

	cfg.Password = master
	if err := logic.RunDelete(cfg, &out); !errors.Is(err, credentials.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestWrongPassword(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t)
	cfg.Identifier, cfg.Username, cfg.Secret = "github", "alice", "s3cret"

	run(t, logic.RunStore, cfg)

	cfg.Password = "wrong"

	var out bytes.Buffer
	if err := logic.RunGet(cfg, &out); !errors.Is(err, credentials.ErrVaultOpen) {
		t.Errorf("get with wrong password error = %v, want ErrVaultOpen", err)
	}

	if out.Len() != 0 {
		t.Errorf("output with wrong password = %q", out.String())
	}
}

func TestPasswordFile(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t)

	cfg.Password = ""
	cfg.PasswordFile = filepath.Join(t.TempDir(), "password")

	if err := os.WriteFile(cfg.PasswordFile, []byte("from a file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg.Identifier, cfg.Username, cfg.Secret = "github", "alice", "s3cret"
	run(t, logic.RunStore, cfg)

	// The trailing newline is not part of the password.
	cfg.PasswordFile, cfg.Password = "", "from a file"
	if got := run(t, logic.RunGet, cfg); got != "s3cret\n" {
		t.Errorf("get output = %q", got)
	}
}

func TestInvalidInputLeavesNoVault(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t)
	cfg.Identifier, cfg.Username, cfg.Secret = "gh", "alice", "s3cret"

	var out bytes.Buffer
	if err := logic.RunStore(cfg, &out); !errors.Is(err, credentials.ErrInvalidInput) {
		t.Fatalf("store error = %v, want ErrInvalidInput", err)
	}

	if _, err := os.Stat(cfg.Vault); !os.IsNotExist(err) {
		t.Errorf("vault file exists after a rejected store: %v", err)
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t)
	cfg.Length, cfg.MinDigits, cfg.Strength = 16, 4, true
	cfg.Explicit = map[string]bool{"length": true, "min-digits": true}

	lines := strings.Split(strings.TrimSpace(run(t, logic.RunGenerate, cfg)), "\n")
	if len(lines) != 2 {
		t.Fatalf("generate output = %q, want password and strength lines", lines)
	}

	if utf8.RuneCountInString(lines[0]) != 16 {
		t.Errorf("password %q is not 16 characters", lines[0])
	}

	if !strings.HasPrefix(lines[1], "Strength: ") {
		t.Errorf("strength line = %q", lines[1])
	}

	cfg.MinUppercase = 20
	cfg.Explicit["min-uppercase"] = true

	var out bytes.Buffer
	if err := logic.RunGenerate(cfg, &out); !errors.Is(err, generator.ErrInvalidPolicy) {
		t.Errorf("generate with impossible policy error = %v, want ErrInvalidPolicy", err)
	}
}

func TestInfo(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t)

	if got := run(t, logic.RunInfo, cfg); !strings.Contains(got, "not created yet") {
		t.Errorf("info before creation = %q", got)
	}

	cfg.Identifier, cfg.Username, cfg.Secret = "github", "alice", "s3cret"
	run(t, logic.RunStore, cfg)

	got := run(t, logic.RunInfo, cfg)

	for _, want := range []string{"Records:     1", "Identifiers: 1", " B\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("info output %q does not contain %q", got, want)
		}
	}
}

func TestPasswordNotRetained(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t)
	cfg.Identifier, cfg.Username, cfg.Secret = "github", "alice", "s3cret"

	run(t, logic.RunStore, cfg)

	if cfg.Password != "" {
		t.Errorf("configuration still holds the master password after unlocking")
	}
}
