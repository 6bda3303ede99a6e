// Package catalog talks to the public Pokémon catalog service (PokéAPI).
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public catalog endpoint
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// MinID and MaxID bound the ids the catalog is known to serve
	MinID = 1
	MaxID = 1010

	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "pokedex-web/1.0"
	maxBodyBytes     = 4 << 20
)

// Cache stores raw catalog payloads keyed by request URL
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// Client handles catalog API requests
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	cache      Cache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every request made by the client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithCache serves repeated requests from cache for ttl
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a catalog client rooted at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid catalog base url %q", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ParseID parses a route identifier such as "25" or "025" and checks it
// against the catalog's id range
func ParseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty id", ErrValidation)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: id %q is not numeric", ErrValidation, s)
		}
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q: %v", ErrValidation, s, err)
	}
	if err := ValidateID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// ValidateID rejects ids outside [MinID, MaxID]
func ValidateID(id int) error {
	if id < MinID || id > MaxID {
		return fmt.Errorf("%w: id %d outside %d..%d", ErrValidation, id, MinID, MaxID)
	}
	return nil
}

// FetchByID fetches a Pokémon record by numeric id
func (c *Client) FetchByID(ctx context.Context, id int) (*Pokemon, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	var p Pokemon
	if err := c.fetchJSON(ctx, c.resourceURL("pokemon", strconv.Itoa(id)), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchByName fetches a Pokémon record by name. The catalog is case
// sensitive, so the query is trimmed and lower-cased first.
func (c *Client) FetchByName(ctx context.Context, name string) (*Pokemon, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return nil, fmt.Errorf("%w: empty name", ErrValidation)
	}
	// Dot segments would be resolved by the server to a different resource
	if query == "." || query == ".." {
		return nil, fmt.Errorf("%w: no record named %q", ErrNotFound, query)
	}

	var p Pokemon
	if err := c.fetchJSON(ctx, c.resourceURL("pokemon", url.PathEscape(query)), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchSpecies follows the species URL embedded in a Pokémon record.
// Only URLs on the configured catalog origin are followed.
func (c *Client) FetchSpecies(ctx context.Context, speciesURL string) (*Species, error) {
	u, err := url.Parse(speciesURL)
	if err != nil || speciesURL == "" {
		return nil, fmt.Errorf("%w: species url %q", ErrValidation, speciesURL)
	}
	if u.Scheme != c.baseURL.Scheme || u.Host != c.baseURL.Host {
		return nil, fmt.Errorf("%w: species url %q is not on %s", ErrValidation, speciesURL, c.baseURL.Host)
	}

	var s Species
	if err := c.fetchJSON(ctx, u.String(), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) resourceURL(resource, key string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL.String(), resource, key)
}

// record is a decoded payload that can tell whether it is a real catalog entry
type record interface {
	check() error
}

func (p *Pokemon) check() error {
	if p.ID < MinID || p.Name == "" {
		return fmt.Errorf("%w: payload has no pokemon (id=%d name=%q)", ErrNotFound, p.ID, p.Name)
	}
	return nil
}

func (s *Species) check() error {
	if s.ID < MinID {
		return fmt.Errorf("%w: payload has no species (id=%d)", ErrNotFound, s.ID)
	}
	return nil
}

// fetchJSON makes a GET request (or reads the cache) and decodes the payload
// into v. Only payloads that pass v.check are returned or cached.
func (c *Client) fetchJSON(ctx context.Context, u string, v record) error {
	if c.cache != nil {
		payload, ok, err := c.cache.Get(ctx, u)
		if err != nil {
			c.logger.Warn("Catalog cache read failed", zap.String("url", u), zap.Error(err))
		}
		if ok {
			if err := json.Unmarshal(payload, v); err == nil && v.check() == nil {
				return nil
			}
			c.logger.Warn("Discarding unusable cached payload", zap.String("url", u))
		}
	}

	payload, err := c.get(ctx, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrTransport, u, err)
	}
	if err := v.check(); err != nil {
		return fmt.Errorf("%w: url=%s", err, u)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, u, payload, c.cacheTTL); err != nil {
			c.logger.Warn("Catalog cache write failed", zap.String("url", u), zap.Error(err))
		}
	}
	return nil
}

// get performs a single attempt; failures are never retried
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrTransport, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Catalog request",
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("%w: status=%d url=%s", ErrNotFound, resp.StatusCode, u)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}
	return payload, nil
}
