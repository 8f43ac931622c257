package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/playground/internal/config"
	apperrors "github.com/diogo/playground/internal/errors"
	"github.com/diogo/playground/internal/state"
	"github.com/diogo/playground/internal/tui"
)

type fakeTUI struct {
	called       bool
	configCalled bool
	store        *state.Store
	opts         tui.ChatOptions
	err          error
}

func (f *fakeTUI) RunChat(store *state.Store, opts tui.ChatOptions) error {
	f.called = true
	f.store = store
	f.opts = opts
	return f.err
}

func (f *fakeTUI) RunConfig() error {
	f.configCalled = true
	return f.err
}

type testEnv struct {
	deps    *Dependencies
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	tui     *fakeTUI
	copied  []string
	homeDir string
}

func newTestEnv(t *testing.T, stdin string) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PLAYGROUND_LOG_LEVEL", "")

	env := &testEnv{
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		tui:     &fakeTUI{},
		homeDir: home,
	}
	env.deps = &Dependencies{
		TUI:    env.tui,
		Stdin:  strings.NewReader(stdin),
		Stdout: env.stdout,
		Stderr: env.stderr,
		CopyText: func(text string) error {
			env.copied = append(env.copied, text)
			return nil
		},
		TerminalWidth: func() int { return 0 },
	}
	return env
}

func (e *testEnv) run(args ...string) error {
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const transcriptJSONL = `{"type":"user","text":"Hi","time":1}
{"type":"agent","text":"Hel","is_final":false,"time":2}
{"type":"agent","text":"Hello","is_final":true,"time":3}
`

func TestRootCommand_Help(t *testing.T) {
	cmd := NewRootCmd(newTestEnv(t, "").deps)

	if cmd.Use != "playground" {
		t.Errorf("Expected use 'playground', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("descriptions should not be empty")
	}

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"chat", "render", "export", "config"} {
		if !names[want] {
			t.Errorf("missing subcommand %s", want)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	env := newTestEnv(t, "")
	if err := env.run("--version"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "playground "+Version) {
		t.Errorf("unexpected version output: %q", env.stdout.String())
	}
}

func TestRenderCommand_FromStdin(t *testing.T) {
	env := newTestEnv(t, transcriptJSONL)
	if err := env.run("render", "--width", "60"); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	out := env.stdout.String()
	for _, want := range []string{"You", " Y", "Hi", "Agent", " Ag", "Hello"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Hel\n") || strings.Count(out, "Agent") != 1 {
		t.Errorf("partial record should be merged away:\n%s", out)
	}
}

func TestRenderCommand_Raw(t *testing.T) {
	env := newTestEnv(t, transcriptJSONL)
	if err := env.run("render", "--raw", "-"); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Count(env.stdout.String(), "Agent") != 2 {
		t.Errorf("raw render should print every record:\n%s", env.stdout.String())
	}
}

func TestRenderCommand_NameFromConfigAndFlag(t *testing.T) {
	env := newTestEnv(t, "")
	cfg := config.DefaultConfig()
	cfg.UserName = "alice"
	if err := config.SaveConfig(cfg); err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, env.homeDir, "t.jsonl", `{"type":"user","text":"Hi"}`)

	if err := env.run("render", path); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out := env.stdout.String(); !strings.Contains(out, "alice") || !strings.Contains(out, " A") {
		t.Errorf("configured name should be used:\n%s", out)
	}

	env.stdout.Reset()
	if err := env.run("render", "--name", "bob", path); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out := env.stdout.String(); !strings.Contains(out, "bob") || strings.Contains(out, "alice") {
		t.Errorf("--name should override config:\n%s", out)
	}
}

func TestRenderCommand_StrictError(t *testing.T) {
	env := newTestEnv(t, "{\"type\":\"agent\",\"text\":\"ok\"}\nbroken\n")

	err := env.run("render", "--strict")
	if !apperrors.IsParseError(err) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if apperrors.GetLine(err) != 2 {
		t.Errorf("GetLine() = %d, want 2", apperrors.GetLine(err))
	}
}

func TestRenderCommand_Copy(t *testing.T) {
	env := newTestEnv(t, transcriptJSONL)
	if err := env.run("render", "--copy"); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(env.copied) != 1 || !strings.Contains(env.copied[0], "## Agent") {
		t.Errorf("expected markdown on clipboard, got %v", env.copied)
	}
}

func TestRenderCommand_MissingFile(t *testing.T) {
	env := newTestEnv(t, "")
	if err := env.run("render", filepath.Join(env.homeDir, "nope.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExportCommand(t *testing.T) {
	env := newTestEnv(t, transcriptJSONL)
	if err := env.run("export", "--title", "Session", "--no-times"); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out := env.stdout.String()
	for _, want := range []string{"# Session", "## You\n", "## Agent\n", "Hello", "**Messages:** 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("export should contain %q:\n%s", want, out)
		}
	}
}

func TestExportCommand_ToFile(t *testing.T) {
	env := newTestEnv(t, transcriptJSONL)
	path := filepath.Join(env.homeDir, "out.md")

	if err := env.run("export", "-o", path, "--name", "carol"); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "## carol") {
		t.Errorf("export should use --name:\n%s", data)
	}
	if !strings.Contains(env.stderr.String(), "Exported") {
		t.Errorf("expected confirmation on stderr, got %q", env.stderr.String())
	}
}

func TestConfigCommands(t *testing.T) {
	env := newTestEnv(t, "")

	if err := env.run("config", "set", "user_name", "alice"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}
	env.stdout.Reset()
	if err := env.run("config", "get", "user_name"); err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if strings.TrimSpace(env.stdout.String()) != "alice" {
		t.Errorf("config get = %q, want alice", env.stdout.String())
	}

	if err := env.run("config", "set", "user_name"); err != nil {
		t.Fatalf("config set (clear) failed: %v", err)
	}
	cfg, _ := config.LoadConfig()
	if cfg.UserName != "" {
		t.Errorf("UserName = %q, want cleared", cfg.UserName)
	}

	env.stdout.Reset()
	if err := env.run("config", "list"); err != nil {
		t.Fatalf("config list failed: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "tui_theme = tokyonight") {
		t.Errorf("config list missing theme:\n%s", env.stdout.String())
	}

	env.stdout.Reset()
	if err := env.run("config", "path"); err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if !strings.Contains(env.stdout.String(), filepath.Join(env.homeDir, ".playground", "config.json")) {
		t.Errorf("config path = %q", env.stdout.String())
	}
}

func TestConfigCommand_Edit(t *testing.T) {
	env := newTestEnv(t, "")
	if err := env.run("config", "edit"); err != nil {
		t.Fatalf("config edit failed: %v", err)
	}
	if !env.tui.configCalled {
		t.Error("expected the settings editor to run")
	}
}

func TestConfigCommand_Errors(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.run("config", "set", "colour", "red")
	if !errors.Is(err, apperrors.ErrUnknownKey) {
		t.Errorf("expected unknown key error, got %v", err)
	}

	err = env.run("config", "set", "tui_theme", "neon")
	if !errors.Is(err, apperrors.ErrInvalidValue) {
		t.Errorf("expected invalid value error, got %v", err)
	}
	if !strings.Contains(tui.FormatError(err), "config list") {
		t.Errorf("formatted config error should carry a hint: %s", tui.FormatError(err))
	}
}

func TestChatCommand(t *testing.T) {
	env := newTestEnv(t, "")
	cfg := config.DefaultConfig()
	cfg.UserName = "alice"
	_ = config.SaveConfig(cfg)

	if err := env.run("chat"); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if !env.tui.called {
		t.Fatal("expected the TUI to run")
	}
	if env.tui.store.UserName() != "alice" {
		t.Errorf("store name = %q, want alice", env.tui.store.UserName())
	}
	if env.tui.opts.Feed != nil {
		t.Error("no feed expected without --transcript")
	}
	if env.tui.opts.Markdown != nil {
		t.Error("markdown should be off by default")
	}

	if err := env.tui.opts.SaveUserName("bob"); err != nil {
		t.Fatalf("SaveUserName failed: %v", err)
	}
	saved, _ := config.LoadConfig()
	if saved.UserName != "bob" {
		t.Errorf("saved UserName = %q, want bob", saved.UserName)
	}
}

func TestChatCommand_WithTranscript(t *testing.T) {
	env := newTestEnv(t, "")
	path := writeFile(t, env.homeDir, "t.jsonl", transcriptJSONL)

	if err := env.run("chat", "-t", path, "--replay-delay", "0s", "--name", "zoe", "--markdown"); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if env.tui.store.UserName() != "zoe" {
		t.Errorf("store name = %q, want zoe", env.tui.store.UserName())
	}
	if env.tui.opts.Markdown == nil {
		t.Error("--markdown should enable markdown rendering")
	}
	if env.tui.opts.Feed == nil {
		t.Fatal("expected a transcript feed")
	}

	saved, _ := config.LoadConfig()
	if saved.UserName != "" {
		t.Error("--name must not be persisted")
	}
}

func TestChatCommand_Errors(t *testing.T) {
	env := newTestEnv(t, "")

	if err := env.run("chat", "-t", "-"); err == nil {
		t.Error("expected error for stdin transcript")
	}

	env.tui.err = errors.New("no tty")
	err := env.run("chat")
	if err == nil || !strings.Contains(err.Error(), "no tty") {
		t.Errorf("expected TUI error to propagate, got %v", err)
	}
}

func TestOutputWidth(t *testing.T) {
	deps := &Dependencies{TerminalWidth: func() int { return 120 }}

	if got := outputWidth(deps, 50); got != 50 {
		t.Errorf("flag width = %d, want 50", got)
	}
	if got := outputWidth(deps, 0); got != 120 {
		t.Errorf("terminal width = %d, want 120", got)
	}
	if got := outputWidth(&Dependencies{}, 0); got != defaultWidth {
		t.Errorf("default width = %d, want %d", got, defaultWidth)
	}
}
