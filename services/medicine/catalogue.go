package medicine

import (
	"context"
	"fmt"
	"os"
	"sync"

	"medlink/models"
	"medlink/utils"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 100
)

// Catalogue is the read-only medicine list loaded from a JSON export.
type Catalogue struct {
	path string

	once  sync.Once
	err   error
	items []models.Medicine
	byID  map[string]int
}

func NewCatalogue(path string) *Catalogue {
	return &Catalogue{path: path}
}

// NewCatalogueFromItems builds a catalogue that never touches the disk.
func NewCatalogueFromItems(items []models.Medicine) *Catalogue {
	c := &Catalogue{}
	c.once.Do(func() { c.index(items) })
	return c
}

func (c *Catalogue) index(items []models.Medicine) {
	c.items = items
	c.byID = make(map[string]int, len(items))
	for i := range items {
		c.byID[items[i].ID()] = i
	}
}

func (c *Catalogue) load() error {
	c.once.Do(func() {
		data, err := os.ReadFile(c.path)
		if err != nil {
			c.err = fmt.Errorf("failed to read medicines file: %w", err)
			return
		}
		var items []models.Medicine
		if err := json.Unmarshal(data, &items); err != nil {
			c.err = fmt.Errorf("failed to decode medicines file: %w", err)
			return
		}
		c.index(items)
		utils.GetLogger().Info("Medicine catalogue loaded", zap.Int("items", len(items)), zap.String("path", c.path))
	})
	if c.err != nil {
		return utils.WrapError(utils.ErrUpstream, "Medicine catalogue is unavailable", c.err)
	}
	return nil
}

// Page returns one page of the catalogue. page starts at 1; out-of-range
// values fall back to the defaults.
func (c *Catalogue) Page(_ context.Context, page, limit int) (*models.MedicinePage, error) {
	if err := c.load(); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	total := len(c.items)
	// Compare before multiplying so a huge page cannot overflow.
	start := total
	if page-1 <= total/limit {
		start = min((page-1)*limit, total)
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &models.MedicinePage{
		Data:       c.items[start:end],
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

func (c *Catalogue) Get(_ context.Context, id string) (*models.Medicine, error) {
	if err := c.load(); err != nil {
		return nil, err
	}
	i, ok := c.byID[id]
	if !ok {
		return nil, utils.NewError(utils.ErrNotFound, "Medicine not found")
	}
	m := c.items[i]
	return &m, nil
}
