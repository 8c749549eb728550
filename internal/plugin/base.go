package plugin

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/odysseus0/slh/internal/daypart"
)

//go:embed all:templates
var templates embed.FS

type templateData struct {
	Year int
	Day  int
	Part int
}

// filePlugin holds what every built-in plugin shares: sources live at
// dayNN/partP.<ext> and new days start from an embedded template directory.
type filePlugin struct {
	language string
	ext      string
	exec     execFunc
	log      zerolog.Logger
}

func newFilePlugin(language, ext string) filePlugin {
	return filePlugin{language: language, ext: ext, exec: runCommand, log: zerolog.Nop()}
}

func (p *filePlugin) Language() string {
	return p.language
}

// SetLogger replaces the plugin's logger.
func (p *filePlugin) SetLogger(log zerolog.Logger) {
	p.log = log
}

func (p *filePlugin) SrcFile(root string, dp daypart.DayPart) string {
	return daypart.Layout{Root: root}.SrcFile(dp, p.ext)
}

func (p *filePlugin) AllDayParts(root string) ([]daypart.DayPart, error) {
	matches, err := filepath.Glob(filepath.Join(root, "day*", "part*."+p.ext))
	if err != nil {
		return nil, err
	}
	out := make([]daypart.DayPart, 0, len(matches))
	for _, m := range matches {
		dp, err := daypart.Parse(filepath.ToSlash(m), p.ext)
		if err != nil {
			p.log.Warn().Str("file", m).Msg("skipping invalid day/part file")
			continue
		}
		out = append(out, dp)
	}
	daypart.Sort(out)
	return out, nil
}

func (p *filePlugin) GenerateNextFiles(root string, year int, next daypart.DayPart, prev *daypart.DayPart) ([]string, error) {
	src := p.SrcFile(root, next)
	if _, err := os.Stat(src); err == nil {
		return nil, fmt.Errorf("%s: %w", src, ErrSrcExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	dir := daypart.Layout{Root: root}.OutDir(next)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	if prev != nil && next.Part != 1 {
		data, err := os.ReadFile(p.SrcFile(root, *prev))
		if err != nil {
			return nil, fmt.Errorf("copy previous part: %w", err)
		}
		if err := os.WriteFile(src, data, 0o644); err != nil {
			return nil, err
		}
		return []string{src}, nil
	}
	return p.copyTemplates(dir, src, templateData{Year: year, Day: next.Day, Part: next.Part})
}

func (p *filePlugin) copyTemplates(dir, src string, data templateData) ([]string, error) {
	tdir := path.Join("templates", p.language)
	entries, err := fs.ReadDir(templates, tdir)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".tmpl")
		dest := filepath.Join(dir, name)
		if name == "part."+p.ext {
			dest = src
		} else if _, err := os.Stat(dest); err == nil {
			continue
		}

		raw, err := fs.ReadFile(templates, path.Join(tdir, e.Name()))
		if err != nil {
			return written, err
		}
		tmpl, err := template.New(e.Name()).Parse(string(raw))
		if err != nil {
			return written, fmt.Errorf("parse template %s: %w", e.Name(), err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return written, fmt.Errorf("render template %s: %w", e.Name(), err)
		}
		if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
			return written, err
		}
		p.log.Debug().Str("file", dest).Msg("template written")
		written = append(written, dest)
	}
	return written, nil
}

func (p *filePlugin) srcFiles(root string, dps []daypart.DayPart) []string {
	out := make([]string, 0, len(dps))
	for _, dp := range dps {
		out = append(out, p.SrcFile(root, dp))
	}
	return out
}

func answerFromOutput(out []byte) string {
	return strings.TrimSpace(string(out))
}
