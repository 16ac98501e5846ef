package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/obsworks/obsqueue/pkg/core"
)

// DirTransport hands entries off by writing a hand-off file into a
// destination directory watched by the control process. Each file lists the
// entry's artifact references, one per line.
type DirTransport struct {
	dir string
}

// NewDirTransport creates a transport writing hand-off files under dir.
func NewDirTransport(dir string) *DirTransport {
	return &DirTransport{dir: dir}
}

// Send writes the hand-off file. The filename embeds a timestamp and a
// fresh id so repeated dispatches of equally-labelled entries never collide.
func (t *DirTransport) Send(ctx context.Context, e core.Entry, artifacts []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return fmt.Errorf("obsqueue: create handoff dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s.queue", time.Now().UTC().Format("20060102T150405"), uuid.New().String()[:8])
	body := strings.Join(artifacts, "\n") + "\n"

	// Write-then-rename so the watcher never sees a partial file.
	tmp := filepath.Join(t.dir, name+".tmp")
	if err := os.WriteFile(tmp, []byte(body), 0o644); err != nil {
		return fmt.Errorf("obsqueue: write handoff file: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(t.dir, name)); err != nil {
		return fmt.Errorf("obsqueue: publish handoff file: %w", err)
	}
	return nil
}
