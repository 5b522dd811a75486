package lsp

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/squirrel/project"
)

const listGrammar = `
List <- Item ("," Item)*;
Item <- [a-z]+;
`

func newProject(t *testing.T, grammarText string) (*Workspace, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := project.Default(dir)
	require.NoError(t, cfg.Save())
	require.NoError(t, os.WriteFile(cfg.GrammarPath(), []byte(grammarText), 0o644))

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	return NewWorkspace(sub), dir
}

func TestWorkspace_Load(t *testing.T) {
	w, dir := newProject(t, listGrammar)
	require.NoError(t, w.Load())
	assert.NoError(t, w.LoadErr())
	assert.True(t, w.IsGrammar(filepath.Join(dir, "grammar.peg")))
	assert.True(t, w.Tracks(filepath.Join(dir, "in.txt")))
	assert.False(t, w.Tracks(filepath.Join(dir, "in.md")))
}

func TestWorkspace_LoadWithoutConfig(t *testing.T) {
	w := NewWorkspace(t.TempDir())
	err := w.Load()
	assert.ErrorIs(t, err, project.ErrNotFound)
	assert.False(t, w.Tracks("in.txt"))
}

func TestWorkspace_Diagnostics(t *testing.T) {
	w, dir := newProject(t, `S <- "a" "\n" "b" "c";`)
	require.NoError(t, w.Load())
	path := filepath.Join(dir, "in.txt")

	doc := w.Update(path, "a\nbc")
	require.NotNil(t, doc.Result)
	assert.Empty(t, w.Diagnostics(path))

	w.Update(path, "a\nb9c")
	diags := w.Diagnostics(path)
	require.Len(t, diags, 1)
	assert.Equal(t, `unexpected input "9"`, diags[0].Message)
	assert.Equal(t, protocol.Position{Line: 1, Character: 1}, diags[0].Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 2}, diags[0].Range.End)
	require.NotNil(t, diags[0].Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)

	w.Remove(path)
	assert.Nil(t, w.Document(path))
	assert.Empty(t, w.Diagnostics(path))
}

func TestWorkspace_DiagnosticsCountUTF16(t *testing.T) {
	w, dir := newProject(t, `S <- "😀" "a" "b";`)
	require.NoError(t, w.Load())
	path := filepath.Join(dir, "emoji.txt")

	w.Update(path, "😀Xab")
	diags := w.Diagnostics(path)
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.UInteger(2), diags[0].Range.Start.Character)
	assert.Equal(t, protocol.UInteger(3), diags[0].Range.End.Character)
}

func TestWorkspace_Reload(t *testing.T) {
	w, dir := newProject(t, listGrammar)
	require.NoError(t, w.Load())
	path := filepath.Join(dir, "in.txt")
	w.Update(path, "ab;c")
	assert.NotEmpty(t, w.Diagnostics(path))

	grammarPath := filepath.Join(dir, "grammar.peg")
	require.NoError(t, os.WriteFile(grammarPath, []byte(`
		List <- Item ((";" / ",") Item)*;
		Item <- [a-z]+;
	`), 0o644))
	require.NoError(t, w.Reload())
	assert.Empty(t, w.Diagnostics(path), "open documents are reparsed")

	broken := "List <- Item"
	require.NoError(t, os.WriteFile(grammarPath, []byte(broken), 0o644))
	assert.Error(t, w.Reload())
	diags := w.GrammarDiagnostics(broken)
	require.NotEmpty(t, diags)
	assert.Equal(t, "missing Semi", diags[0].Message)

	// The last good grammar stays in use.
	w.Update(path, "x;y")
	assert.Empty(t, w.Diagnostics(path))
}

func TestWorkspace_ReloadLeavesDocumentsUntouched(t *testing.T) {
	w, dir := newProject(t, listGrammar)
	require.NoError(t, w.Load())
	path := filepath.Join(dir, "in.txt")
	before := w.Update(path, "ab;c")
	result := before.Result
	require.NotNil(t, result)

	require.NoError(t, w.Reload())
	assert.Same(t, result, before.Result, "a document handed out is not reparsed in place")
	after := w.Document(path)
	require.NotNil(t, after)
	assert.NotSame(t, before, after)
	assert.Equal(t, before.Text, after.Text)
	assert.NotNil(t, after.Result)
}

func TestWorkspace_ConcurrentReloadAndDiagnostics(t *testing.T) {
	w, dir := newProject(t, listGrammar)
	require.NoError(t, w.Load())
	path := filepath.Join(dir, "in.txt")
	w.Update(path, "ab;c")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			assert.NoError(t, w.Reload())
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			assert.NotEmpty(t, w.Diagnostics(path))
		}
	}()
	wg.Wait()
}

func TestWorkspace_Paths(t *testing.T) {
	w, dir := newProject(t, listGrammar)
	require.NoError(t, w.Load())
	b := filepath.Join(dir, "b.txt")
	a := filepath.Join(dir, "a.txt")
	w.Update(b, "x")
	w.Update(a, "y")
	assert.Equal(t, []string{a, b}, w.Paths())
}

func TestURIConversion(t *testing.T) {
	path, err := uriToPath("file:///tmp/some%20dir/in.txt")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/some dir/in.txt", path)
	assert.Equal(t, "file:///tmp/some%20dir/in.txt", pathToURI(path))

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)
}
