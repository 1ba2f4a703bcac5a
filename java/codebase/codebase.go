package codebase

import (
	"context"
	"os"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jcomplete/complete"
)

// Codebase holds the current text of every open document and answers
// completion requests against it.
type Codebase struct {
	mu       sync.RWMutex
	rootDir  string
	files    map[string]*FileInfo
	pipeline *complete.Pipeline
	snippets bool
	log      commonlog.Logger
}

type FileInfo struct {
	Path    string
	Content []byte
}

type Option func(*Codebase)

func WithPipeline(p *complete.Pipeline) Option {
	return func(c *Codebase) {
		c.pipeline = p
	}
}

// WithSnippets makes method insertions use snippet placeholders for
// their parameters.
func WithSnippets(enabled bool) Option {
	return func(c *Codebase) {
		c.snippets = enabled
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(c *Codebase) {
		c.log = log
	}
}

func New(rootDir string, opts ...Option) *Codebase {
	c := &Codebase{
		rootDir:  rootDir,
		files:    make(map[string]*FileInfo),
		pipeline: complete.NewPipeline(),
		snippets: true,
		log:      commonlog.GetLogger("jcomplete.codebase"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	c.UpdateFile(path, content)
	return nil
}

func (c *Codebase) UpdateFile(path string, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.files[path] = &FileInfo{
		Path:    path,
		Content: content,
	}
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// EditorAt returns an editor for the document at path with the cursor at
// a 1-based line and a 0-based UTF-16 column.
func (c *Codebase) EditorAt(path string, line, column int) (*Editor, error) {
	f := c.GetFile(path)
	if f == nil {
		return nil, errors.Newf("%s is not open", path)
	}
	offset, err := OffsetAt(f.Content, line, column)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return NewEditor(string(f.Content), offset, c.snippets), nil
}

// CompleteAt runs the completion pipeline at a position in an open
// document. A nil result with a nil error means no matcher handled the
// statement.
func (c *Codebase) CompleteAt(ctx context.Context, path string, line, column int) ([]complete.Suggestion, *Editor, error) {
	ed, err := c.EditorAt(path, line, column)
	if err != nil {
		return nil, nil, err
	}
	statement := ed.Statement()
	items, handled := c.pipeline.Complete(ctx, ed, statement)
	if !handled {
		c.log.Debugf("no matcher for %q", statement)
		return nil, ed, nil
	}
	return items, ed, nil
}

// OffsetAt converts a 1-based line and a 0-based column counted in UTF-16
// code units into a byte offset. Columns past the end of the line clamp to
// the line end.
func OffsetAt(content []byte, line, column int) (int, error) {
	if line <= 0 || column < 0 {
		return 0, errors.Newf("invalid position %d:%d", line, column)
	}
	offset := 0
	for l := 1; l < line; l++ {
		i := strings.IndexByte(string(content[offset:]), '\n')
		if i < 0 {
			return 0, errors.Newf("line %d past end of file", line)
		}
		offset += i + 1
	}

	units := 0
	for offset < len(content) && content[offset] != '\n' && units < column {
		r, size := utf8.DecodeRune(content[offset:])
		units += utf16.RuneLen(r)
		offset += size
	}
	return offset, nil
}
