// Armorpass is a local, single-user credential vault.
//
// Credentials are stored in one file encrypted with AES-256-CBC under a key derived
// from a master password with PBKDF2-HMAC-SHA256.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/armorpass/internal/commands"
	"github.com/idelchi/armorpass/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "armorpass: %v\n", err)
		os.Exit(1)
	}
}
