package packager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ensureRequirements flattens the dependency manifest into a plain
// requirement list if one does not already exist. The primary flattening
// tool is pipenv; when it is unavailable or fails, the currently resolved
// dependency set is frozen instead.
func (p *Packager) ensureRequirements(ctx context.Context) error {
	reqPath := filepath.Join(p.sourceDir, "requirements.txt")
	if _, err := os.Stat(reqPath); err == nil {
		return nil
	}

	out, err := p.runCommand(ctx, p.sourceDir, "pipenv", "requirements")
	if err != nil {
		out, err = p.runCommand(ctx, p.sourceDir, "python", "-m", "pip", "freeze")
		if err != nil {
			return fmt.Errorf("failed to flatten dependency manifest: %w", err)
		}
	}

	if err := os.WriteFile(reqPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write requirement list: %w", err)
	}
	return nil
}
