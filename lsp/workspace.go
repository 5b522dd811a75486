package lsp

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/squirrel/grammar"
	"github.com/dhamidi/squirrel/peg"
	"github.com/dhamidi/squirrel/project"
	"github.com/dhamidi/squirrel/tree"
)

// Document is an open input file and its latest parse.
type Document struct {
	Path   string
	Text   string
	Result *peg.ParseResult
}

// Workspace holds the project grammar and the open documents.
type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	config  *project.Config
	grammar *peg.Grammar
	start   string
	loadErr error
	docs    map[string]*Document
}

// NewWorkspace returns an empty workspace rooted at rootDir. Call Load to
// read the project configuration.
func NewWorkspace(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		docs:    make(map[string]*Document),
	}
}

// RootDir returns the directory the workspace was opened in.
func (w *Workspace) RootDir() string {
	return w.rootDir
}

// Load finds squirrel.yaml in the root directory or its parents and
// compiles the grammar it names.
func (w *Workspace) Load() error {
	cfg, err := project.Find(w.rootDir)
	if err != nil {
		w.mu.Lock()
		w.loadErr = err
		w.mu.Unlock()
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.config = cfg
	return w.reloadLocked()
}

// UseConfig installs cfg as the project configuration and compiles its
// grammar.
func (w *Workspace) UseConfig(cfg *project.Config) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.config = cfg
	return w.reloadLocked()
}

// Reload recompiles the grammar and reparses every open document. A
// failed compile keeps the previous grammar.
func (w *Workspace) Reload() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.config == nil {
		return w.loadErr
	}
	return w.reloadLocked()
}

func (w *Workspace) reloadLocked() error {
	g, start, err := w.config.LoadGrammar()
	w.loadErr = err
	if err != nil {
		log.Errorf("load grammar: %s", err)
		return err
	}
	w.grammar, w.start = g, start
	log.Infof("using grammar %s from rule %s", w.config.GrammarPath(), start)
	for path, doc := range w.docs {
		w.parseLocked(path, doc.Text)
	}
	return nil
}

// LoadErr returns the error of the last configuration or grammar load.
func (w *Workspace) LoadErr() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loadErr
}

// IsGrammar reports whether path is the grammar file of the project.
func (w *Workspace) IsGrammar(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config != nil && samePath(w.config.GrammarPath(), path)
}

// Tracks reports whether path is an input file of the project.
func (w *Workspace) Tracks(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config != nil && w.config.Matches(path)
}

// Update stores the text of an input file and parses it if the grammar
// is loaded.
func (w *Workspace) Update(path, text string) *Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.parseLocked(path, text)
}

// parseLocked installs a new document for path. Stored documents are
// never modified, so callers may read them without holding the lock.
func (w *Workspace) parseLocked(path, text string) *Document {
	doc := &Document{Path: path, Text: text}
	w.docs[path] = doc
	if w.grammar == nil {
		return doc
	}
	res, err := peg.Parse(w.grammar, w.start, text)
	if err != nil {
		log.Errorf("parse %s: %s", path, err)
		return doc
	}
	doc.Result = res
	log.Debugf("parsed %s: %d errors", path, res.ErrorCount())
	return doc
}

// Remove forgets an input file.
func (w *Workspace) Remove(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, path)
}

// Document returns the open document at path, or nil.
func (w *Workspace) Document(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[path]
}

// Paths returns the paths of all open documents, sorted.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.docs))
	for p := range w.docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Diagnostics returns the syntax errors of the document at path as LSP
// diagnostics. A document that was not parsed has none.
func (w *Workspace) Diagnostics(path string) []protocol.Diagnostic {
	doc := w.Document(path)
	if doc == nil || doc.Result == nil {
		return []protocol.Diagnostic{}
	}
	x := tree.NewLineIndex(path, doc.Text)
	diags := []protocol.Diagnostic{}
	for _, d := range tree.Diagnostics(doc.Result, path) {
		diags = append(diags, diagnostic(x, d.Start.Offset, d.End.Offset, d.Message))
	}
	return diags
}

// GrammarDiagnostics returns the errors of the last grammar load, located
// in text, the content of the grammar file.
func (w *Workspace) GrammarDiagnostics(text string) []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}
	var list grammar.ErrorList
	if !errors.As(w.LoadErr(), &list) {
		return diags
	}
	x := tree.NewLineIndex("", text)
	for _, e := range list {
		diags = append(diags, diagnostic(x, e.Pos.Offset, e.Pos.Offset, e.Msg))
	}
	return diags
}

func diagnostic(x *tree.LineIndex, start, end int, msg string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: position(x, start),
			End:   position(x, end),
		},
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	}
}

func position(x *tree.LineIndex, offset int) protocol.Position {
	p := x.Position(offset)
	return protocol.Position{
		Line:      protocol.UInteger(p.Line - 1),
		Character: protocol.UInteger(x.UTF16Column(offset)),
	}
}

// readFile is used when a save notification carries no text.
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func samePath(a, b string) bool {
	if x, err := filepath.Abs(a); err == nil {
		a = x
	}
	if x, err := filepath.Abs(b); err == nil {
		b = x
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
