package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/stakpak/paks-og/pkg/cache"
	"github.com/stakpak/paks-og/pkg/card"
	"github.com/stakpak/paks-og/pkg/fonts"
)

// testConfig keeps commands quiet and points remote fonts at a closed port.
const testConfig = `log:
  level: error
fonts:
  regular_url: http://127.0.0.1:1/Inter-Regular.ttf
  bold_url: http://127.0.0.1:1/Inter-Bold.ttf
`

// runCLI executes the root command with args and a temporary config file so
// the working directory is never consulted.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "paks-og.yaml")
	if err := os.WriteFile(cfg, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// fontsDir writes a font pair where LocalSource finds it.
func fontsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	fs, err := fonts.NewFontSet("Inter", goregular.TTF, gobold.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if err := fonts.Save(dir, fs); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestRootCommandTree(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	for _, path := range [][]string{
		{"serve"},
		{"render"},
		{"fonts", "fetch"},
		{"fonts", "check"},
		{"cache", "clear"},
		{"cache", "path"},
		{"completion"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Errorf("command %v not found: %v", path, err)
		}
	}

	for _, name := range []string{"verbose", "config", "log-format"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

func TestRenderOfflineJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "card.json")
	if _, err := runCLI(t, "render", "acme/widgets", "--offline", "--format", "json", "-o", out, "-q"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var l card.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		t.Fatalf("output is not a layout: %v", err)
	}
	name, ok := l.Find(card.IDName)
	if !ok || name.Text != "widgets" {
		t.Errorf("name node = %+v", name)
	}
}

func TestRenderOfflinePNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "card.png")
	_, err := runCLI(t, "render", "acme/widgets", "--offline", "--width", "600",
		"--fonts-dir", fontsDir(t), "-o", out, "-q")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 600 || b.Dy() != 315 {
		t.Errorf("PNG size = %dx%d, want 600x315", b.Dx(), b.Dy())
	}
}

func TestRenderToStdout(t *testing.T) {
	stdout, err := runCLI(t, "render", "acme/widgets", "--offline", "--format", "svg",
		"--fonts-dir", fontsDir(t), "-o", "-")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !strings.HasPrefix(stdout, "<svg") {
		t.Errorf("stdout = %.40q, want an SVG document", stdout)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing slash", []string{"render", "widgets", "--offline"}},
		{"empty owner", []string{"render", "/widgets", "--offline"}},
		{"bad format", []string{"render", "acme/widgets", "--offline", "--format", "gif", "-o", "-"}},
		{"bad backend", []string{"render", "acme/widgets", "--offline", "--backend", "cairo", "-o", "-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCachePath(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "cache", "path", "--cache-dir", dir)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", out, dir)
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := runCLI(t, "cache", "clear", "--cache-dir", dir); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := fc.Get(ctx, "a"); hit {
		t.Error("entry survived cache clear")
	}
}

func TestFontsCheck(t *testing.T) {
	if _, err := runCLI(t, "fonts", "check", "--fonts-dir", fontsDir(t)); err != nil {
		t.Errorf("fonts check error: %v", err)
	}
}

func TestCompletion(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "paks-og") {
		t.Error("bash completion does not mention the program")
	}

	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestParsePakRef(t *testing.T) {
	tests := []struct {
		ref         string
		owner, name string
		wantErr     bool
	}{
		{"acme/widgets", "acme", "widgets", false},
		{"acme/a/b", "acme", "a/b", false},
		{"widgets", "", "", true},
		{"acme/", "", "", true},
		{"/widgets", "", "", true},
	}

	for _, tt := range tests {
		owner, name, err := parsePakRef(tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePakRef(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if owner != tt.owner || name != tt.name {
			t.Errorf("parsePakRef(%q) = %q, %q", tt.ref, owner, name)
		}
	}
}

func TestSpinnerStop(t *testing.T) {
	var buf bytes.Buffer
	s := startSpinner(context.Background(), &buf, "Working")
	time.Sleep(100 * time.Millisecond)
	s.Stop()
	s.Stop()

	if !strings.Contains(buf.String(), "Working") {
		t.Errorf("spinner output = %q", buf.String())
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, io.Discard, "Working")
	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after cancellation")
	}
	s.Stop()
}

func TestHelpers(t *testing.T) {
	if got := displayAddr(":8080"); got != "localhost:8080" {
		t.Errorf("displayAddr(:8080) = %q", got)
	}
	if got := displayAddr("0.0.0.0:9000"); got != "0.0.0.0:9000" {
		t.Errorf("displayAddr(0.0.0.0:9000) = %q", got)
	}
	if got := humanBytes(2048); got != "2.0 KB" {
		t.Errorf("humanBytes(2048) = %q", got)
	}
	if got := formatExt(""); got != "png" {
		t.Errorf("formatExt(\"\") = %q", got)
	}
}
