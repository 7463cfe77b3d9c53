package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/openclaw/badge/render"
)

// Font files probed, in order, when no font is configured. The embedded
// Go fonts are the final fallback, so resolution never fails the
// process over a missing system font.
var (
	regularCandidates = []string{
		"DejaVuSans.ttf",
		"LiberationSans-Regular.ttf",
		"Arial.ttf",
		"arial.ttf",
		"Helvetica.ttf",
	}
	boldCandidates = []string{
		"DejaVuSans-Bold.ttf",
		"LiberationSans-Bold.ttf",
		"Arial Bold.ttf",
		"arialbd.ttf",
		"Helvetica-Bold.ttf",
	}
)

// ResolveFonts builds the immutable FontSet the renderer uses for the
// process lifetime: the configured font file if usable, otherwise the
// first usable system font from the candidate list, otherwise the
// embedded Go fonts.
func ResolveFonts(cfg *Config, log *slog.Logger) (*render.FontSet, error) {
	regular, err := resolveFont(cfg.FontRegular, regularCandidates, goregular.TTF, log)
	if err != nil {
		return nil, fmt.Errorf("resolve regular font: %w", err)
	}
	bold, err := resolveFont(cfg.FontBold, boldCandidates, gobold.TTF, log)
	if err != nil {
		return nil, fmt.Errorf("resolve bold font: %w", err)
	}
	return &render.FontSet{Regular: regular, Bold: bold}, nil
}

func resolveFont(path string, candidates []string, embedded []byte, log *slog.Logger) (*opentype.Font, error) {
	if path != "" {
		f, err := parseFontFile(path)
		if err == nil {
			return f, nil
		}
		log.Warn("configured font unusable, falling back", "path", path, "error", err)
	}
	for _, name := range candidates {
		found, err := findfont.Find(name)
		if err != nil {
			continue
		}
		f, err := parseFontFile(found)
		if err != nil {
			log.Debug("skipping unparsable system font", "path", found, "error", err)
			continue
		}
		return f, nil
	}
	return opentype.Parse(embedded)
}

func parseFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return opentype.Parse(data)
}
