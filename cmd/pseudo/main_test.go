package main

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/builtins"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/driver"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/interpreter"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

func initGitRepo(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(dir, ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		_, err = worktree.Add(filepath.ToSlash(rel))
		return err
	}); err != nil {
		t.Fatalf("stage files: %v", err)
	}
	hash, err := worktree.Commit("init", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Pseudo CLI",
			Email: "pseudo@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRunProgram(t *testing.T) {
	dir := t.TempDir()
	program := filepath.Join(dir, "main.pseudo")
	writeFile(t, program, `
DECLARE i : INTEGER
FOR i <- 1 TO 3
  OUTPUT "line ", i
NEXT i
`)

	res := runCLI(t, "", "run", program)
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", res.code, res.stderr)
	}
	if res.stdout != "line 1\nline 2\nline 3\n" {
		t.Fatalf("stdout = %q", res.stdout)
	}
}

func TestRunShortcutAcceptsSourceFile(t *testing.T) {
	dir := t.TempDir()
	program := filepath.Join(dir, "hello.pseudo")
	writeFile(t, program, `OUTPUT "hello"`)

	res := runCLI(t, "", program)
	if res.code != 0 || res.stdout != "hello\n" {
		t.Fatalf("result = %+v", res)
	}
}

func TestRunEmptyFileWarns(t *testing.T) {
	program := filepath.Join(t.TempDir(), "empty.pseudo")
	if err := os.WriteFile(program, []byte("  \n\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res := runCLI(t, "", "run", program)
	if res.code != 0 {
		t.Fatalf("exit code = %d, want 0", res.code)
	}
	if res.stderr != "warning: file empty.\n" {
		t.Fatalf("stderr = %q", res.stderr)
	}
}

func TestRunCommentOnlyFileWarns(t *testing.T) {
	program := filepath.Join(t.TempDir(), "notes.pseudo")
	writeFile(t, program, `
// nothing to run yet
// OUTPUT "later"
`)
	res := runCLI(t, "", "run", program)
	if res.code != 0 || res.stdout != "" {
		t.Fatalf("result = %+v", res)
	}
	if res.stderr != "warning: file empty.\n" {
		t.Fatalf("stderr = %q", res.stderr)
	}
}

func TestRunReportsEverySyntaxError(t *testing.T) {
	program := filepath.Join(t.TempDir(), "bad.pseudo")
	writeFile(t, program, `
DECLARE x INTEGER
OUTPUT "fine"
DECLARE : REAL
`)
	res := runCLI(t, "", "--color", "never", "run", program)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	if got := strings.Count(res.stderr, "syntax error: "); got != 2 {
		t.Fatalf("syntax errors reported = %d, want 2:\n%s", got, res.stderr)
	}
	if !strings.Contains(res.stderr, program+":1:11: ") || !strings.Contains(res.stderr, program+":3:9: ") {
		t.Fatalf("stderr missing locations:\n%s", res.stderr)
	}
	if res.stdout != "" {
		t.Fatalf("stdout = %q, want nothing run", res.stdout)
	}
}

func TestRunRuntimeErrorKeepsEarlierOutput(t *testing.T) {
	program := filepath.Join(t.TempDir(), "fail.pseudo")
	writeFile(t, program, `
OUTPUT "first"
OUTPUT missing
OUTPUT "never"
`)
	res := runCLI(t, "", "run", program)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	if res.stdout != "first\n" {
		t.Fatalf("stdout = %q", res.stdout)
	}
	want := "runtime error: " + program + ":2:8: variable missing not found\n"
	if !strings.HasPrefix(res.stderr, want) {
		t.Fatalf("stderr = %q, want prefix %q", res.stderr, want)
	}
	if strings.Count(res.stderr, "error:") != 1 {
		t.Fatalf("stderr reports more than one error:\n%s", res.stderr)
	}
}

func TestRunReadsInputFromStdin(t *testing.T) {
	program := filepath.Join(t.TempDir(), "echo.pseudo")
	writeFile(t, program, `
DECLARE name : STRING
INPUT name
OUTPUT "hi ", name
`)
	res := runCLI(t, "ada\n", "run", program)
	if res.code != 0 || res.stdout != "hi ada\n" {
		t.Fatalf("result = %+v", res)
	}
}

func TestRunInputFlag(t *testing.T) {
	dir := t.TempDir()
	program := filepath.Join(dir, "echo.pseudo")
	writeFile(t, program, `
DECLARE name : STRING
INPUT name
OUTPUT name
`)
	answers := filepath.Join(dir, "answers.txt")
	writeFile(t, answers, "grace")

	res := runCLI(t, "ignored\n", "run", "--input", answers, program)
	if res.code != 0 || res.stdout != "grace\n" {
		t.Fatalf("result = %+v", res)
	}
}

func TestRunSeedIsDeterministic(t *testing.T) {
	program := filepath.Join(t.TempDir(), "dice.pseudo")
	writeFile(t, program, `
DECLARE i : INTEGER
FOR i <- 1 TO 5
  OUTPUT RANDOMBETWEEN(1, 100)
NEXT
`)
	first := runCLI(t, "", "run", "--seed", "7", program)
	second := runCLI(t, "", "run", "--seed", "7", program)
	if first.code != 0 || second.code != 0 {
		t.Fatalf("results = %+v / %+v", first, second)
	}
	if first.stdout != second.stdout {
		t.Fatalf("seeded runs differ: %q vs %q", first.stdout, second.stdout)
	}
	if strings.Count(first.stdout, "\n") != 5 {
		t.Fatalf("stdout = %q", first.stdout)
	}
}

func TestRunUsesConfigNextToProgram(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, driver.ConfigFileName), `
name: homework
input: answers.txt
builtins:
  disable: [RANDOMBETWEEN]
`)
	writeFile(t, filepath.Join(dir, "answers.txt"), "from config")
	program := filepath.Join(dir, "src", "main.pseudo")
	writeFile(t, program, `
DECLARE s : STRING
INPUT s
OUTPUT s
OUTPUT RANDOMBETWEEN(1, 2)
`)

	res := runCLI(t, "", "run", program)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	if res.stdout != "from config\n" {
		t.Fatalf("stdout = %q", res.stdout)
	}
	if !strings.Contains(res.stderr, "function RANDOMBETWEEN not found") {
		t.Fatalf("stderr = %q", res.stderr)
	}
}

func TestRunConfigEntry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, driver.ConfigFileName), "entry: app/main.pseudo")
	writeFile(t, filepath.Join(dir, "app", "main.pseudo"), `OUTPUT "from entry"`)
	chdirForTest(t, dir)

	res := runCLI(t, "", "run")
	if res.code != 0 || res.stdout != "from entry\n" {
		t.Fatalf("result = %+v", res)
	}
}

func TestRunWithoutProgramOrEntry(t *testing.T) {
	chdirForTest(t, t.TempDir())
	res := runCLI(t, "", "run")
	if res.code != 1 || !strings.Contains(res.stderr, "no program given") {
		t.Fatalf("result = %+v", res)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, driver.ConfigFileName), "color: loud")
	program := filepath.Join(dir, "main.pseudo")
	writeFile(t, program, "OUTPUT 1")

	res := runCLI(t, "", "run", program)
	if res.code != 1 || !strings.Contains(res.stderr, "config validation failed:") {
		t.Fatalf("result = %+v", res)
	}
}

func TestRunRejectsInvalidColorFlag(t *testing.T) {
	program := filepath.Join(t.TempDir(), "main.pseudo")
	writeFile(t, program, "OUTPUT 1")
	res := runCLI(t, "", "--color", "loud", "run", program)
	if res.code != 1 || !strings.Contains(res.stderr, "--color must be auto, always or never") {
		t.Fatalf("result = %+v", res)
	}
}

func TestRunGitSource(t *testing.T) {
	t.Setenv(driver.HomeEnv, t.TempDir())
	remote := t.TempDir()
	writeFile(t, filepath.Join(remote, "week1", "hello.pseudo"), `OUTPUT "from git"`)
	initGitRepo(t, remote)

	project := t.TempDir()
	writeFile(t, filepath.Join(project, driver.ConfigFileName), `
sources:
  course: `+remote+`
`)
	chdirForTest(t, project)

	res := runCLI(t, "", "run", "course:week1/hello.pseudo")
	if res.code != 0 || res.stdout != "from git\n" {
		t.Fatalf("result = %+v", res)
	}
}

func TestFetchCommand(t *testing.T) {
	cache := t.TempDir()
	t.Setenv(driver.HomeEnv, cache)
	remote := t.TempDir()
	writeFile(t, filepath.Join(remote, "main.pseudo"), "OUTPUT 1")
	commit := initGitRepo(t, remote)

	project := t.TempDir()
	writeFile(t, filepath.Join(project, driver.ConfigFileName), `
sources:
  course:
    git: `+remote+`
    rev: `+commit+`
`)
	chdirForTest(t, project)

	res := runCLI(t, "", "fetch")
	if res.code != 0 {
		t.Fatalf("fetch failed: %+v", res)
	}
	wantDir := filepath.Join(cache, "sources", "course", commit)
	if !strings.Contains(res.stdout, "Fetched course "+commit+" -> "+wantDir) {
		t.Fatalf("stdout = %q", res.stdout)
	}

	again := runCLI(t, "", "fetch")
	if again.code != 0 || !strings.Contains(again.stdout, "Using cached course") {
		t.Fatalf("second fetch = %+v", again)
	}
}

func TestFetchRequiresConfig(t *testing.T) {
	chdirForTest(t, t.TempDir())
	res := runCLI(t, "", "fetch")
	if res.code != 1 || !strings.Contains(res.stderr, "unable to locate pseudo.yml") {
		t.Fatalf("result = %+v", res)
	}
}

func TestTokensCommand(t *testing.T) {
	program := filepath.Join(t.TempDir(), "main.pseudo")
	writeFile(t, program, "x <- 1")
	res := runCLI(t, "", "tokens", program)
	if res.code != 0 {
		t.Fatalf("result = %+v", res)
	}
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	if len(lines) != 4 {
		t.Fatalf("tokens = %q, want 4 lines", lines)
	}
	if lines[0] != "0..1\tidentifier x" || lines[2] != "5..6\tinteger 1" {
		t.Fatalf("tokens = %q", lines)
	}
}

func TestParseCommandYAML(t *testing.T) {
	program := filepath.Join(t.TempDir(), "main.pseudo")
	writeFile(t, program, `OUTPUT "a", 1`)
	res := runCLI(t, "", "parse", program)
	if res.code != 0 {
		t.Fatalf("result = %+v", res)
	}
	for _, want := range []string{"type: Output", "values:", "type: Value"} {
		if !strings.Contains(res.stdout, want) {
			t.Fatalf("stdout missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestParseCommandRejectsUnknownFormat(t *testing.T) {
	program := filepath.Join(t.TempDir(), "main.pseudo")
	writeFile(t, program, "OUTPUT 1")
	res := runCLI(t, "", "parse", "--format", "xml", program)
	if res.code != 1 || !strings.Contains(res.stderr, `unsupported format "xml"`) {
		t.Fatalf("result = %+v", res)
	}
}

// scriptedPrompter replays lines and then reports end of input.
type scriptedPrompter struct {
	lines   []string
	prompts []string
	history []string
}

func (s *scriptedPrompter) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedPrompter) AppendHistory(item string) {
	s.history = append(s.history, item)
}

func newTestRepl(lines ...string) (*repl, *scriptedPrompter, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	s := &session{
		printer: driver.NewPrinter(&stderr, driver.ColorNever),
		stdout:  &stdout,
		stderr:  &stderr,
		stdin:   strings.NewReader(""),
	}
	seed := int64(1)
	opts := interpreter.Options{Stdout: &stdout, Functions: builtins.Registry(builtins.NewRand(&seed))}
	ln := &scriptedPrompter{lines: lines}
	return newRepl(s, opts, ln), ln, &stdout, &stderr
}

func TestReplKeepsDeclarationsAndReadsBlocks(t *testing.T) {
	r, ln, stdout, stderr := newTestRepl(
		"DECLARE total : INTEGER",
		"total <- 4",
		"IF total > 3 THEN",
		`  OUTPUT "big"`,
		"ENDIF",
		":vars",
		"OUTPUT missing",
		":reset",
		":vars",
	)
	r.loop()

	if want := "big\ntotal : INTEGER = 4\nsession cleared\n\n"; stdout.String() != want {
		t.Fatalf("stdout = %q, want %q", stdout.String(), want)
	}
	if !strings.HasPrefix(stderr.String(), "runtime error: <repl:4>:1:8: variable missing not found\n") {
		t.Fatalf("stderr = %q", stderr.String())
	}
	wantPrompts := []string{promptMain, promptMain, promptMain, promptCont, promptCont, promptMain, promptMain, promptMain, promptMain, promptMain}
	if strings.Join(ln.prompts, "|") != strings.Join(wantPrompts, "|") {
		t.Fatalf("prompts = %q, want %q", ln.prompts, wantPrompts)
	}
	if ln.history[2] != `IF total > 3 THEN   OUTPUT "big" ENDIF` {
		t.Fatalf("history = %q", ln.history)
	}
}

func TestReplInputUsesPrompter(t *testing.T) {
	r, ln, stdout, _ := newTestRepl(
		"DECLARE name : STRING",
		"INPUT name",
		"ada",
		`OUTPUT "hi ", name`,
		":quit",
		"OUTPUT 1",
	)
	r.loop()
	if stdout.String() != "hi ada\n" {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if ln.prompts[2] != promptInput {
		t.Fatalf("prompts = %q, want INPUT prompt third", ln.prompts)
	}
	if len(ln.lines) != 1 {
		t.Fatalf("lines left = %d, want :quit to stop the loop", len(ln.lines))
	}
}

func TestReplLoadAndUnknownCommand(t *testing.T) {
	program := filepath.Join(t.TempDir(), "lib.pseudo")
	writeFile(t, program, `
DECLARE greeting : STRING
greeting <- "hello"
`)
	r, _, stdout, stderr := newTestRepl(
		":load "+program,
		"OUTPUT greeting",
		":nope",
	)
	r.loop()
	if stdout.String() != "hello\n\n" {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "unknown command :nope") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestReplSyntaxErrorDoesNotWaitForMoreInput(t *testing.T) {
	r, ln, _, stderr := newTestRepl("DECLARE x INTEGER")
	r.loop()
	if !strings.Contains(stderr.String(), "syntax error: <repl:1>:1:11: ") {
		t.Fatalf("stderr = %q", stderr.String())
	}
	if len(ln.prompts) != 2 || ln.prompts[1] != promptMain {
		t.Fatalf("prompts = %q", ln.prompts)
	}
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
