package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kolah/swagts/internal/config"
	"github.com/kolah/swagts/internal/loader"
	"github.com/kolah/swagts/internal/model"
)

// ResourcesPath is the catalog endpoint served by every resource group.
const ResourcesPath = "/swagger-resources"

const defaultBackoff = 200 * time.Millisecond

// Client retrieves resource catalogs and their documents. Failures of one
// group or document are reported without stopping the others.
type Client struct {
	http     *http.Client
	attempts int
	backoff  time.Duration
	limit    int
	logger   *slog.Logger
}

func NewClient(cfg config.FetchConfig, workers int, logger *slog.Logger) *Client {
	attempts := cfg.Retries
	if attempts <= 0 {
		attempts = 1
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	limit := workers
	if limit <= 0 {
		limit = -1
	}
	return &Client{
		http:     &http.Client{Timeout: cfg.Timeout},
		attempts: attempts,
		backoff:  backoff,
		limit:    limit,
		logger:   logger,
	}
}

type catalogEntry struct {
	Name           string `json:"name"`
	URL            string `json:"url"`
	SwaggerVersion string `json:"swaggerVersion"`
	Location       string `json:"location"`
}

// Resources polls the catalog of every group. The result keeps group order,
// then catalog order. The returned error joins the failures of all groups
// that could not be read.
func (c *Client) Resources(ctx context.Context, groups []config.ResourceConfig) ([]model.Resource, error) {
	perGroup := make([][]model.Resource, len(groups))
	errs := make([]error, len(groups))

	var eg errgroup.Group
	eg.SetLimit(c.limit)
	for i, group := range groups {
		eg.Go(func() error {
			perGroup[i], errs[i] = c.catalog(ctx, group)
			return nil
		})
	}
	_ = eg.Wait()

	var resources []model.Resource
	for _, rs := range perGroup {
		resources = append(resources, rs...)
	}
	return resources, errors.Join(errs...)
}

func (c *Client) catalog(ctx context.Context, group config.ResourceConfig) ([]model.Resource, error) {
	base := strings.TrimRight(group.URL, "/")
	url := base + ResourcesPath

	data, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("resource group %s: %w", group.Name, err)
	}

	var entries []catalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("resource group %s: %w", group.Name, &Error{Code: DecodeError, URL: url, Cause: err})
	}

	resources := make([]model.Resource, 0, len(entries))
	for _, e := range entries {
		resources = append(resources, model.Resource{
			Source:         group.Name,
			Name:           e.Name,
			URL:            base + e.URL,
			SwaggerVersion: e.SwaggerVersion,
			Location:       e.Location,
		})
	}

	c.logger.Debug("resource catalog fetched", "group", group.Name, "resources", len(resources))
	return resources, nil
}

// Documents fetches and parses the document of every resource. Documents that
// fail are left out; the returned error joins their failures.
func (c *Client) Documents(ctx context.Context, resources []model.Resource) ([]*model.Document, error) {
	docs := make([]*model.Document, len(resources))
	errs := make([]error, len(resources))

	var eg errgroup.Group
	eg.SetLimit(c.limit)
	for i, res := range resources {
		eg.Go(func() error {
			docs[i], errs[i] = c.document(ctx, res)
			return nil
		})
	}
	_ = eg.Wait()

	out := make([]*model.Document, 0, len(docs))
	for _, doc := range docs {
		if doc != nil {
			out = append(out, doc)
		}
	}
	return out, errors.Join(errs...)
}

func (c *Client) document(ctx context.Context, res model.Resource) (*model.Document, error) {
	data, err := c.get(ctx, res.URL)
	if err != nil {
		return nil, fmt.Errorf("resource %s: %w", res.Key(), err)
	}

	result, err := loader.Load(data)
	if err != nil {
		return nil, fmt.Errorf("resource %s: %w", res.Key(), &Error{Code: DecodeError, URL: res.URL, Cause: err})
	}
	for _, w := range result.Warnings {
		c.logger.Debug("document warning", "resource", res.Key(), "warning", w)
	}

	doc, err := loader.Transform(result, res)
	if err != nil {
		return nil, fmt.Errorf("resource %s: %w", res.Key(), &Error{Code: DecodeError, URL: res.URL, Cause: err})
	}
	return doc, nil
}

// get retries network errors, 5xx and 429 with exponential backoff. Other
// status codes fail immediately.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	backoff := c.backoff
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		data, retry, err := c.do(ctx, url)
		if err == nil {
			return data, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err

		if attempt == c.attempts {
			break
		}
		c.logger.Debug("retrying request", "url", url, "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return nil, &Error{Code: NetworkError, URL: url, Cause: ctx.Err()}
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return nil, lastErr
}

func (c *Client) do(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, &Error{Code: NetworkError, URL: url, Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, &Error{Code: NetworkError, URL: url, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		cause := fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		transient := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, transient, &Error{Code: StatusError, URL: url, Cause: cause}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, &Error{Code: NetworkError, URL: url, Cause: err}
	}
	return data, false, nil
}
