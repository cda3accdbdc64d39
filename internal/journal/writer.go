package journal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vitos/trade_journal/internal/domain"
)

// FileWriter drops rendered reports under <baseDir>/<Timeframe>/.
type FileWriter struct {
	baseDir string
	log     *zap.Logger
}

func NewFileWriter(baseDir string, log *zap.Logger) (*FileWriter, error) {
	if baseDir == "" {
		return nil, errors.New("journal: reports directory is empty")
	}
	return &FileWriter{baseDir: baseDir, log: log}, nil
}

// Write stores the report and returns its path. The title doubles as the
// file name.
func (w *FileWriter) Write(timeframe domain.Timeframe, title, content string) (string, error) {
	if title == "" {
		return "", errors.New("journal: report title is empty")
	}
	if content == "" {
		return "", errors.New("journal: report content is empty")
	}

	dir := filepath.Join(w.baseDir, string(timeframe))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := title
	if !strings.HasSuffix(name, ".md") {
		name += ".md"
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	w.log.Info("journal written", zap.String("path", path))
	return path, nil
}
