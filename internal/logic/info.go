package logic

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/armorpass/internal/config"
)

// RunInfo prints where the vault lives, its size and how many records it holds.
func RunInfo(cfg *config.Config, out io.Writer) error {
	stat, err := os.Stat(cfg.Vault)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(out, "Vault:       %s (not created yet)\n", cfg.Vault)

		return nil
	}

	if err != nil {
		return fmt.Errorf("inspecting vault: %w", err)
	}

	s, err := open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintf(out, "Vault:       %s\n", cfg.Vault)
	//nolint:gosec // file sizes are never negative
	fmt.Fprintf(out, "Size:        %s\n", humanize.IBytes(uint64(max(0, stat.Size()))))
	fmt.Fprintf(out, "Modified:    %s\n", humanize.Time(stat.ModTime()))
	fmt.Fprintf(out, "Permissions: %s\n", stat.Mode().Perm())
	fmt.Fprintf(out, "Records:     %s\n", humanize.Comma(int64(s.store.Len())))
	fmt.Fprintf(out, "Identifiers: %s\n", humanize.Comma(int64(len(s.store.Identifiers()))))

	return nil
}
