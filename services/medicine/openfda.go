package medicine

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"medlink/models"
	"medlink/utils"

	json "github.com/goccy/go-json"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const detailsTTL = 24 * time.Hour

type drugLabel struct {
	Description         []string `json:"description"`
	IndicationsAndUsage []string `json:"indications_and_usage"`
	SplImage            []string `json:"spl_image"`
}

type labelResponse struct {
	Results []drugLabel `json:"results"`
}

// SharedCache is a details cache visible to every server instance.
type SharedCache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, v interface{}, ttl time.Duration) error
}

// Lookup enriches catalogue entries with the public FDA drug label.
type Lookup struct {
	catalogue *Catalogue
	baseURL   string
	http      *http.Client
	cache     *gocache.Cache
	shared    SharedCache
}

func NewLookup(catalogue *Catalogue, baseURL string, client *http.Client) *Lookup {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Lookup{
		catalogue: catalogue,
		baseURL:   baseURL,
		http:      client,
		cache:     gocache.New(detailsTTL, time.Hour),
	}
}

// WithSharedCache adds a second cache tier behind the in-process one.
func (l *Lookup) WithSharedCache(shared SharedCache) *Lookup {
	l.shared = shared
	return l
}

// searchTerm is the first word of the product name, which is how brand
// names are indexed on the label endpoint.
func searchTerm(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (l *Lookup) Details(ctx context.Context, id string) (*models.MedicineDetails, error) {
	if cached, ok := l.cache.Get(id); ok {
		return cached.(*models.MedicineDetails), nil
	}
	if l.shared != nil {
		var shared models.MedicineDetails
		found, err := l.shared.Get(ctx, id, &shared)
		if err != nil {
			utils.GetLogger().Warn("Lookup: shared cache read failed", zap.String("id", id), zap.Error(err))
		}
		if found {
			l.cache.SetDefault(id, &shared)
			return &shared, nil
		}
	}

	med, err := l.catalogue.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	label, err := l.fetchLabel(ctx, searchTerm(med.Name))
	if err != nil {
		utils.GetLogger().Error("Lookup: OpenFDA request failed", zap.String("medicine", med.Name), zap.Error(err))
		return nil, utils.WrapError(utils.ErrUpstream, "Error fetching online data", err)
	}

	details := &models.MedicineDetails{
		ID:          id,
		Name:        med.Name,
		Category:    med.Category,
		Description: med.Description,
	}
	if details.Description == "" {
		details.Description = "No description available"
	}
	if label != nil {
		if len(label.Description) > 0 {
			details.Description = label.Description[0]
		}
		if len(label.IndicationsAndUsage) > 0 {
			details.Indications = &label.IndicationsAndUsage[0]
		}
		if len(label.SplImage) > 0 {
			details.Image = &label.SplImage[0]
		}
	}

	l.cache.SetDefault(id, details)
	if l.shared != nil {
		if err := l.shared.Set(ctx, id, details, detailsTTL); err != nil {
			utils.GetLogger().Warn("Lookup: shared cache write failed", zap.String("id", id), zap.Error(err))
		}
	}
	return details, nil
}

// fetchLabel returns nil, nil when the endpoint has no label for term.
func (l *Lookup) fetchLabel(ctx context.Context, term string) (*drugLabel, error) {
	if term == "" {
		return nil, nil
	}
	q := url.Values{}
	q.Set("search", fmt.Sprintf(`openfda.brand_name.exact:"%s"`, term))
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenFDA returned status %d", resp.StatusCode)
	}

	var body labelResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode OpenFDA response: %w", err)
	}
	if len(body.Results) == 0 {
		return nil, nil
	}
	return &body.Results[0], nil
}
