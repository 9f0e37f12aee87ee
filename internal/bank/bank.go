// Package bank is the question repository: it loads authored templates,
// checks them against the template schema and indexes them by id, module
// and course.
package bank

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/rokuro32/staticamaster/internal/question"
)

//go:embed data/*.json
var dataFS embed.FS

// NotFoundError is returned when no template has the requested id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("question %q not found", e.ID)
}

// Bank is an immutable, indexed set of templates. All listings are sorted
// by template id.
type Bank struct {
	templates []*question.Template
	byID      map[string]*question.Template
	byModule  map[string][]*question.Template
	byCourse  map[string][]*question.Template
}

// New indexes templates. Duplicate or empty ids are rejected.
func New(templates []*question.Template) (*Bank, error) {
	b := &Bank{
		byID:     make(map[string]*question.Template, len(templates)),
		byModule: make(map[string][]*question.Template),
		byCourse: make(map[string][]*question.Template),
	}

	var errs []error
	for _, t := range templates {
		if t.ID == "" {
			errs = append(errs, errors.New("template with empty id"))
			continue
		}
		if _, dup := b.byID[t.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate question id %q", t.ID))
			continue
		}
		b.byID[t.ID] = t
		b.templates = append(b.templates, t)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	sort.Slice(b.templates, func(i, j int) bool { return b.templates[i].ID < b.templates[j].ID })
	for _, t := range b.templates {
		b.byModule[t.ModuleID] = append(b.byModule[t.ModuleID], t)
		if t.CourseID != "" {
			b.byCourse[t.CourseID] = append(b.byCourse[t.CourseID], t)
		}
	}
	return b, nil
}

// Load reads every .json file under fsys. A file holds either one template
// object or an array of them. Every template is checked against the
// template schema; all problems are reported together.
func Load(fsys fs.FS) (*Bank, error) {
	var (
		templates []*question.Template
		errs      []error
	)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".json" {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		docs, err := splitDocuments(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			return nil
		}
		for i, raw := range docs {
			t, err := question.Decode(raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s[%d]: %w", p, i, err))
				continue
			}
			templates = append(templates, t)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return New(templates)
}

// LoadDir loads the bank stored in dir.
func LoadDir(dir string) (*Bank, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("question bank: %w", err)
	}
	return Load(os.DirFS(dir))
}

var (
	defaultOnce sync.Once
	defaultBank *Bank
	defaultErr  error
)

// Default returns the bank compiled into the binary. It is loaded once.
func Default() (*Bank, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(dataFS, "data")
		if err != nil {
			defaultErr = err
			return
		}
		defaultBank, defaultErr = Load(sub)
	})
	return defaultBank, defaultErr
}

func splitDocuments(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var docs []json.RawMessage
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	}
	return []json.RawMessage{data}, nil
}

// Get returns the template with id.
func (b *Bank) Get(id string) (*question.Template, error) {
	t, ok := b.byID[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return t, nil
}

// All returns every template.
func (b *Bank) All() []*question.Template {
	return append([]*question.Template(nil), b.templates...)
}

// ByModule returns the templates of a module.
func (b *Bank) ByModule(moduleID string) []*question.Template {
	return append([]*question.Template(nil), b.byModule[moduleID]...)
}

// ByCourse returns the templates of a course.
func (b *Bank) ByCourse(courseID string) []*question.Template {
	return append([]*question.Template(nil), b.byCourse[courseID]...)
}

// Select returns the templates of moduleID, restricted to courseID when it
// is not empty.
func (b *Bank) Select(moduleID, courseID string) []*question.Template {
	var out []*question.Template
	for _, t := range b.byModule[moduleID] {
		if courseID == "" || t.CourseID == courseID {
			out = append(out, t)
		}
	}
	return out
}

// Modules returns the sorted module ids present in the bank.
func (b *Bank) Modules() []string {
	out := make([]string, 0, len(b.byModule))
	for m := range b.byModule {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of templates.
func (b *Bank) Len() int { return len(b.templates) }
