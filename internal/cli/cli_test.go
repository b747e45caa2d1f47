package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/five82/tael/internal/inbox"
	"github.com/five82/tael/internal/state"
)

// setupEnv isolates HOME and the multiplexer variables and returns an
// inbox path inside a temp dir.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{"ZELLIJ", "ZELLIJ_PANE_ID", "ZELLIJ_SESSION_NAME", "TMUX", "TMUX_PANE", "TAEL_FOCUS_CMD", "TAEL_DEBUG", "TAEL_INBOX_FILE"} {
		t.Setenv(k, "")
	}
	return filepath.Join(dir, "inbox.md")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("tael %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestAddAndRemove(t *testing.T) {
	file := setupEnv(t)

	out := mustRun(t, "add", "Auth question", "--file", file, "--pane", "42", "--project", "crucible", "--branch", "main")
	if out != "Added item for pane 42\n" {
		t.Fatalf("add output = %q", out)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read inbox: %v", err)
	}
	want := "## Waiting for Input\n\n- [ ] Auth question [pane:: 42] [proj:: crucible] [branch:: main]\n"
	if string(data) != want {
		t.Fatalf("inbox = %q, want %q", data, want)
	}

	out = mustRun(t, "remove", "--file", file, "--pane", "42")
	if out != "Removed item for pane 42\n" {
		t.Fatalf("remove output = %q", out)
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Fatalf("expected inbox file removed once empty, stat err = %v", err)
	}

	out = mustRun(t, "remove", "--file", file, "--pane", "42")
	if out != "No item found for pane 42\n" {
		t.Fatalf("second remove output = %q", out)
	}
}

func TestAdd_UpsertsByPane(t *testing.T) {
	file := setupEnv(t)

	mustRun(t, "add", "first", "-f", file, "-p", "7")
	mustRun(t, "add", "second", "-f", file, "-p", "7", "--status", "work")

	in, err := state.Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if in.Len() != 1 {
		t.Fatalf("Len = %d, want 1", in.Len())
	}
	got := in.Items[0]
	if got.Msg() != "second" || got.Status != inbox.Working {
		t.Fatalf("item = %+v, want second/working", got)
	}
}

func TestAdd_PaneFromEnvironment(t *testing.T) {
	file := setupEnv(t)
	t.Setenv("ZELLIJ_PANE_ID", "9")

	out := mustRun(t, "add", "hello", "-f", file)
	if out != "Added item for pane 9\n" {
		t.Fatalf("add output = %q", out)
	}
}

func TestAdd_Errors(t *testing.T) {
	file := setupEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing pane", []string{"add", "x", "-f", file}, "pane ID required"},
		{"bad pane", []string{"add", "x", "-f", file, "-p", "abc"}, `invalid pane ID "abc"`},
		{"negative pane", []string{"add", "x", "-f", file, "-p", "-1"}, "invalid pane ID"},
		{"bad status", []string{"add", "x", "-f", file, "-p", "1", "-s", "idle"}, `invalid status "idle"`},
		{"reserved attr", []string{"add", "x", "-f", file, "-p", "1", "--attr", "proj=x"}, "set by its own flag"},
		{"no text", []string{"add", "-f", file, "-p", "1"}, "accepts 1 arg"},
		{"blank text", []string{"add", "  ", "-f", file, "-p", "1"}, "item text is required"},
		{"multi-line text", []string{"add", "hi\n- [/] forged [pane:: 9]", "-f", file, "-p", "1"}, "text may not contain line breaks"},
		{"annotation in text", []string{"add", "see [ref:: x] here", "-f", file, "-p", "2"}, "annotation syntax"},
		{"bracket in project", []string{"add", "x", "-f", file, "-p", "2", "--project", "p]q"}, "project may not contain ']'"},
		{"bracket in branch", []string{"add", "x", "-f", file, "-p", "2", "-b", "main]"}, "branch may not contain ']'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want it to contain %q", err, tt.want)
			}
			if _, err := os.Stat(file); !os.IsNotExist(err) {
				t.Fatalf("rejected add wrote the inbox, stat err = %v", err)
			}
		})
	}
}

func TestAdd_BracketedTextRoundTrips(t *testing.T) {
	file := setupEnv(t)

	mustRun(t, "add", "Fix [bug] in parser", "-f", file, "-p", "42", "--project", "p[q")

	in, err := state.Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if in.Len() != 1 {
		t.Fatalf("Len = %d, want 1", in.Len())
	}
	item := in.Items[0]
	if item.Msg() != "Fix [bug] in parser" {
		t.Fatalf("Msg = %q, want %q", item.Msg(), "Fix [bug] in parser")
	}
	if proj, _ := item.Proj(); proj != "p[q" {
		t.Fatalf("proj = %q, want %q", proj, "p[q")
	}
}

func TestLogClosedAfterFailingCommand(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "tael.log")
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("log_file = \""+logPath+"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	a := &App{}
	var stdout, stderr bytes.Buffer
	err := execute(context.Background(), a, []string{"remove", "--config", cfgPath, "-f", filepath.Join(dir, "inbox.md")}, &stdout, &stderr)
	if err == nil {
		t.Fatalf("expected missing pane error")
	}
	if a.logCloser != nil {
		t.Fatalf("log file left open after failing command")
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "command failed") {
		t.Fatalf("log lacks failure record:\n%s", data)
	}
}

func TestAdd_ExtraAttrs(t *testing.T) {
	file := setupEnv(t)

	mustRun(t, "add", "review", "-f", file, "-p", "3", "--attr", "agent=claude", "--attr", "ticket = T-1")

	in, err := state.Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	item := in.Items[0]
	if v, _ := item.Get("agent"); v != "claude" {
		t.Fatalf("agent = %q, want %q", v, "claude")
	}
	if v, _ := item.Get("ticket"); v != "T-1" {
		t.Fatalf("ticket = %q, want %q", v, "T-1")
	}
}

func TestParseAttrs(t *testing.T) {
	tests := []struct {
		in      []string
		want    []string
		wantErr bool
	}{
		{in: nil, want: []string{}},
		{in: []string{"a=b"}, want: []string{"a", "b"}},
		{in: []string{"a=b=c"}, want: []string{"a", "b=c"}},
		{in: []string{"novalue"}, wantErr: true},
		{in: []string{"=x"}, wantErr: true},
		{in: []string{"a:b=c"}, wantErr: true},
		{in: []string{"a=b]"}, wantErr: true},
		{in: []string{"msg=x"}, wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseAttrs(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseAttrs(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseAttrs(%q): %v", tt.in, err)
		}
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Fatalf("parseAttrs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePane(t *testing.T) {
	if id, err := parsePane(" 12 "); err != nil || id != 12 {
		t.Fatalf("parsePane = %d, %v; want 12", id, err)
	}
	if _, err := parsePane("4294967296"); err == nil {
		t.Fatalf("expected overflow error")
	}
	if _, err := parsePane(""); err == nil {
		t.Fatalf("expected missing pane error")
	}
}

func TestList_JSON(t *testing.T) {
	file := setupEnv(t)

	out := mustRun(t, "list", "-f", file, "--format", "json")
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("empty json = %q, want []", out)
	}

	mustRun(t, "add", "bg", "-f", file, "-p", "2", "-s", "work")
	mustRun(t, "add", "fg", "-f", file, "-p", "1", "--project", "tael")

	out = mustRun(t, "list", "-f", file, "--format", "json")
	var items []inbox.Item
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Msg() != "fg" || items[0].Status != inbox.Waiting {
		t.Fatalf("first item = %+v, want waiting fg", items[0])
	}
	if items[1].Status != inbox.Working {
		t.Fatalf("second status = %v, want working", items[1].Status)
	}
	if !strings.Contains(out, `"status": "waiting"`) {
		t.Fatalf("json missing status text:\n%s", out)
	}
}

func TestList_YAML(t *testing.T) {
	file := setupEnv(t)
	mustRun(t, "add", "hello", "-f", file, "-p", "5")

	out := mustRun(t, "list", "-f", file, "--format", "yaml")
	var items []inbox.Item
	if err := yaml.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, out)
	}
	if len(items) != 1 || items[0].Msg() != "hello" {
		t.Fatalf("items = %+v", items)
	}
	if pane, ok := items[0].PaneID(); !ok || pane != 5 {
		t.Fatalf("pane = %d, %v; want 5", pane, ok)
	}
}

func TestList_Text(t *testing.T) {
	file := setupEnv(t)
	mustRun(t, "add", "Auth question", "-f", file, "-p", "42", "--project", "crucible")

	out := mustRun(t, "list", "-f", file)
	for _, want := range []string{"Tael - Agent Inbox", "Auth question", "crucible"} {
		if !strings.Contains(out, want) {
			t.Fatalf("text list missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("text list to a non-terminal should be uncolored:\n%q", out)
	}
	if strings.Contains(out, "enter:focus") {
		t.Fatalf("static list should not show the footer:\n%s", out)
	}
}

func TestList_UnknownFormat(t *testing.T) {
	file := setupEnv(t)
	if _, err := run(t, "list", "-f", file, "--format", "xml"); err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("error = %v, want unknown format", err)
	}
}

func TestClear(t *testing.T) {
	file := setupEnv(t)
	mustRun(t, "add", "a", "-f", file, "-p", "1")
	mustRun(t, "add", "b", "-f", file, "-p", "2")

	out := mustRun(t, "clear", "-f", file)
	if out != "Cleared inbox\n" {
		t.Fatalf("clear output = %q", out)
	}
	in, err := state.Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !in.IsEmpty() {
		t.Fatalf("inbox not empty after clear: %+v", in.Items)
	}
}

func TestDoc_Raw(t *testing.T) {
	file := setupEnv(t)

	out := mustRun(t, "doc", "-f", file)
	if out != "(empty inbox)\n" {
		t.Fatalf("empty doc = %q", out)
	}

	mustRun(t, "add", "hello", "-f", file, "-p", "1")
	out = mustRun(t, "doc", "-f", file)
	want := "## Waiting for Input\n\n- [ ] hello [pane:: 1]\n"
	if out != want {
		t.Fatalf("doc = %q, want %q", out, want)
	}
}

func TestConfigCommand(t *testing.T) {
	file := setupEnv(t)
	t.Setenv("TAEL_FOCUS_CMD", "echo {pane_id}")

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	body := "checkbox_style = \"circles\"\ngroup_by = [\"proj\"]\nrefresh_interval = 5\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out := mustRun(t, "config", "--config", cfgPath, "-f", file)
	for _, want := range []string{
		"Config file: " + cfgPath,
		"Inbox file: " + file,
		"focus_command: echo {pane_id}",
		"checkbox_style: circles",
		"colors: true",
		"group_by: proj",
		"refresh_interval: 5s",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("config output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigCommand_InvalidConfig(t *testing.T) {
	setupEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("colors = = true"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := run(t, "config", "--config", cfgPath)
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("error = %v, want load config error", err)
	}
}

func TestInboxPath_ConfigFallback(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()
	inboxFile := filepath.Join(dir, "shared.md")
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("inbox_file = \""+inboxFile+"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	mustRun(t, "add", "x", "--config", cfgPath, "-p", "1")
	if _, err := os.Stat(inboxFile); err != nil {
		t.Fatalf("expected inbox at %s: %v", inboxFile, err)
	}
}

func TestLogCommand(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "tael.log")
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("log_file = \""+logPath+"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	inboxFile := filepath.Join(dir, "inbox.md")

	// Logging is enabled by log_file, so add records an entry.
	mustRun(t, "add", "x", "--config", cfgPath, "-f", inboxFile, "-p", "4")

	out := mustRun(t, "log", "--config", cfgPath, "--level", "info")
	if !strings.Contains(out, "item added") || !strings.Contains(out, "pane=4") {
		t.Fatalf("log output missing add record:\n%s", out)
	}

	out = mustRun(t, "log", "--config", cfgPath, "--level", "error")
	if !strings.Contains(out, "No log entries") {
		t.Fatalf("error-level log output = %q, want no entries", out)
	}

	if _, err := run(t, "log", "--config", cfgPath, "--level", "loud"); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Setenv("TAEL_DEBUG", tt.value)
		if got := debugEnabled(); got != tt.want {
			t.Fatalf("debugEnabled(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
