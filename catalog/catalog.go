// Package catalog keeps named filters that are known to parse.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"

	"github.com/jvitoroc/filterql/query"
)

const fileName = "catalog.json"

var ErrNotFound = errors.New("filter not found")

type Filter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// Expression parses the filter's text.
func (f *Filter) Expression(limits query.Limits) (*query.Group, error) {
	return limits.ParseText(f.Text)
}

type Catalog struct {
	mu      sync.Mutex
	filters []*Filter

	fs     billy.Filesystem
	lg     *slog.Logger
	limits query.Limits
}

// Open loads the catalog stored in fs, or starts an empty one if fs holds
// none yet.
func Open(fs billy.Filesystem, lg *slog.Logger, limits query.Limits) (*Catalog, error) {
	c := &Catalog{fs: fs, lg: lg, limits: limits}

	f, err := fs.Open(fileName)
	if errors.Is(err, os.ErrNotExist) {
		lg.Debug("catalog: starting empty", "root", fs.Root())
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	blob, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(blob, &c.filters); err != nil {
		return nil, fmt.Errorf("decode %s: %w", fileName, err)
	}

	lg.Debug("catalog: loaded", "root", fs.Root(), "filters", len(c.filters))
	return c, nil
}

// Add stores text under name after checking that it parses.
func (c *Catalog) Add(name, text string) (*Filter, error) {
	if name == "" {
		return nil, errors.New("filter name cannot be empty")
	}

	if _, err := c.limits.ParseText(text); err != nil {
		return nil, fmt.Errorf("filter '%s' is invalid: %w", name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hasFilter(name) {
		return nil, fmt.Errorf("filter with name '%s' already exists", name)
	}

	f := &Filter{
		ID:   uuid.NewString(),
		Name: name,
		Text: text,
	}

	c.filters = append(c.filters, f)
	if err := c.store(); err != nil {
		c.filters = c.filters[:len(c.filters)-1]
		return nil, err
	}

	c.lg.Info("catalog: added filter", "name", name, "id", f.ID)
	return f, nil
}

func (c *Catalog) Get(name string) *Filter {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range c.filters {
		if f.Name == name {
			return f
		}
	}

	return nil
}

// List returns the filters ordered by name.
func (c *Catalog) List() []*Filter {
	c.mu.Lock()
	defer c.mu.Unlock()

	filters := slices.Clone(c.filters)
	slices.SortFunc(filters, func(a, b *Filter) int {
		return strings.Compare(a.Name, b.Name)
	})

	return filters
}

func (c *Catalog) Remove(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.filters, func(f *Filter) bool { return f.Name == name })
	if i < 0 {
		return fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}

	removed := c.filters[i]
	c.filters = slices.Delete(c.filters, i, i+1)
	if err := c.store(); err != nil {
		c.filters = slices.Insert(c.filters, i, removed)
		return err
	}

	c.lg.Info("catalog: removed filter", "name", name, "id", removed.ID)
	return nil
}

func (c *Catalog) hasFilter(name string) bool {
	for _, f := range c.filters {
		if f.Name == name {
			return true
		}
	}

	return false
}

// store writes the catalog to its file. c.mu must be held.
func (c *Catalog) store() error {
	blob, err := json.MarshalIndent(c.filters, "", "  ")
	if err != nil {
		return err
	}

	if err := util.WriteFile(c.fs, fileName, blob, 0o666); err != nil {
		return fmt.Errorf("write %s: %w", fileName, err)
	}

	return nil
}
