package fonts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/errgroup"

	"github.com/stakpak/paks-og/pkg/httputil"
)

// Default remote font files (Inter, latin subset) served by the fontsource CDN.
const (
	DefaultRegularURL = "https://cdn.jsdelivr.net/fontsource/fonts/inter@latest/latin-400-normal.ttf"
	DefaultBoldURL    = "https://cdn.jsdelivr.net/fontsource/fonts/inter@latest/latin-700-normal.ttf"
)

// DefaultSubproject is the web app directory checked when the process runs
// from the repository root.
const DefaultSubproject = "apps/web"

// Source loads a complete FontSet or fails; it never returns a partial set.
type Source interface {
	Name() string
	Load(ctx context.Context, family string) (*FontSet, error)
}

// LocalSource reads <Family>-Regular.ttf and <Family>-Bold.ttf from a fonts
// directory resolved against the working directory.
type LocalSource struct {
	// Dir, when set, is the only directory tried.
	Dir string

	// Subproject is the path from the repository root to the web app
	// (default apps/web). The candidates are <cwd>/<Subproject>/public/fonts
	// and <cwd>/public/fonts, in that order.
	Subproject string

	// Getwd defaults to os.Getwd.
	Getwd func() (string, error)
}

// Name implements Source.
func (s *LocalSource) Name() string { return "local" }

// Dirs returns the candidate directories, most specific first.
func (s *LocalSource) Dirs() ([]string, error) {
	if s.Dir != "" {
		return []string{s.Dir}, nil
	}
	getwd := s.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}
	cwd, err := getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	sub := s.Subproject
	if sub == "" {
		sub = DefaultSubproject
	}
	return []string{
		filepath.Join(cwd, filepath.FromSlash(sub), "public", "fonts"),
		filepath.Join(cwd, "public", "fonts"),
	}, nil
}

// Load implements Source.
func (s *LocalSource) Load(ctx context.Context, family string) (*FontSet, error) {
	dirs, err := s.Dirs()
	if err != nil {
		return nil, err
	}
	var errs []error
	for _, dir := range dirs {
		fs, err := loadDir(ctx, dir, family)
		if err == nil {
			return fs, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

func loadDir(ctx context.Context, dir, family string) (*FontSet, error) {
	var regular, bold []byte
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		regular, err = os.ReadFile(filepath.Join(dir, FileName(family, WeightRegular)))
		return err
	})
	g.Go(func() (err error) {
		bold, err = os.ReadFile(filepath.Join(dir, FileName(family, WeightBold)))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return NewFontSet(family, regular, bold)
}

// RemoteSource downloads the two font files over HTTPS.
type RemoteSource struct {
	RegularURL string
	BoldURL    string

	// Client defaults to an *http.Client with Timeout.
	Client *http.Client

	// Timeout bounds each download; zero means no timeout.
	Timeout time.Duration

	// Retries is the number of extra attempts for transient failures.
	Retries int
}

// Name implements Source.
func (s *RemoteSource) Name() string { return "remote" }

// Load implements Source.
func (s *RemoteSource) Load(ctx context.Context, family string) (*FontSet, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: s.Timeout}
	}
	regularURL, boldURL := s.RegularURL, s.BoldURL
	if regularURL == "" {
		regularURL = DefaultRegularURL
	}
	if boldURL == "" {
		boldURL = DefaultBoldURL
	}

	fetch := func(ctx context.Context, url string) ([]byte, error) {
		var data []byte
		err := httputil.Retry(ctx, s.Retries+1, 500*time.Millisecond, func() (err error) {
			data, err = httputil.FetchBytes(ctx, client, url)
			return err
		})
		return data, err
	}

	var regular, bold []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		regular, err = fetch(gctx, regularURL)
		return err
	})
	g.Go(func() (err error) {
		bold, err = fetch(gctx, boldURL)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return NewFontSet(family, regular, bold)
}

// EmbeddedSource serves the Go fonts compiled into the binary. It never
// fails, so it is only appended when a fallback typeface is acceptable.
type EmbeddedSource struct{}

// EmbeddedFamily is the family name of the embedded fonts.
const EmbeddedFamily = "Go"

// Name implements Source.
func (EmbeddedSource) Name() string { return "embedded" }

// Load implements Source. The requested family is ignored.
func (EmbeddedSource) Load(context.Context, string) (*FontSet, error) {
	return NewFontSet(EmbeddedFamily, goregular.TTF, gobold.TTF)
}

// Save writes fs into dir using the file names LocalSource expects.
func Save(dir string, fs *FontSet) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, w := range []Weight{WeightRegular, WeightBold} {
		data, _ := fs.Bytes(w)
		if err := os.WriteFile(filepath.Join(dir, FileName(fs.Family, w)), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
