package tvmaze

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/showdeck/showdeck/utils"
)

const DefaultBaseURL = "https://api.tvmaze.com"

// Client is a stateless read-only client for the TVMaze catalog. All retry
// policy lives with callers; the client never retries internally.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	validate *validator.Validate
}

func NewClient() *Client {
	httpClient := utils.NewHTTPClient()
	httpClient.Timeout = 10 * time.Second
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: httpClient,
		validate:   validator.New(),
	}
}

// get performs one request and decodes the body into out. ctxMsg prefixes
// transport errors, genericMsg is used when there is no status to report.
func (c *Client) get(ctx context.Context, path, ctxMsg, genericMsg string, out any) error {
	endpoint := c.BaseURL + path
	slog.Debug("Requesting catalog resource", slog.String("url", endpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: genericMsg}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: genericMsg}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &Error{
			Kind:    KindTransport,
			Message: fmt.Sprintf("%s: %s", ctxMsg, http.StatusText(res.StatusCode)),
			Status:  res.StatusCode,
		}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: genericMsg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindValidation, Message: genericMsg}
	}
	return nil
}

func (c *Client) checkRecord(record any, genericMsg string) error {
	if err := c.validate.Struct(record); err != nil {
		return &Error{Kind: KindValidation, Message: genericMsg}
	}
	return nil
}

// SeriesPage fetches one server-side page of the full catalog listing.
// An empty slice means the catalog has no further pages.
func (c *Client) SeriesPage(ctx context.Context, page int) ([]Series, error) {
	var series []Series
	ctxMsg := fmt.Sprintf("error fetching series (page %d)", page)
	if err := c.get(ctx, fmt.Sprintf("/shows?page=%d", page), ctxMsg, "failed to fetch series data", &series); err != nil {
		return nil, err
	}
	for i := range series {
		if err := c.checkRecord(&series[i], "failed to fetch series data"); err != nil {
			return nil, err
		}
	}
	return series, nil
}

// SearchSeries returns every match for name in one call; the catalog does
// not page search results. A blank query short-circuits to an empty result
// without touching the network.
func (c *Client) SearchSeries(ctx context.Context, name string) ([]Series, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	var results []seriesSearchResult
	if err := c.get(ctx, "/search/shows?q="+url.QueryEscape(name), "error searching series", "failed to search series", &results); err != nil {
		return nil, err
	}
	series := make([]Series, 0, len(results))
	for i := range results {
		if err := c.checkRecord(&results[i].Show, "failed to search series"); err != nil {
			return nil, err
		}
		series = append(series, results[i].Show)
	}
	return series, nil
}

func (c *Client) SeriesByID(ctx context.Context, id int) (Series, error) {
	var series Series
	if err := c.get(ctx, fmt.Sprintf("/shows/%d", id), "error fetching series details", "failed to fetch series details", &series); err != nil {
		return Series{}, err
	}
	if err := c.checkRecord(&series, "failed to fetch series details"); err != nil {
		return Series{}, err
	}
	return series, nil
}

// Episodes fetches the flat episode list for a series. Season grouping is
// the caller's concern.
func (c *Client) Episodes(ctx context.Context, seriesID int) ([]Episode, error) {
	var episodes []Episode
	if err := c.get(ctx, fmt.Sprintf("/shows/%d/episodes", seriesID), "error fetching episodes", "failed to fetch episodes", &episodes); err != nil {
		return nil, err
	}
	for i := range episodes {
		if err := c.checkRecord(&episodes[i], "failed to fetch episodes"); err != nil {
			return nil, err
		}
	}
	return episodes, nil
}

// SearchPeople mirrors SearchSeries, including the blank-query short
// circuit.
func (c *Client) SearchPeople(ctx context.Context, query string) ([]Person, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	var results []personSearchResult
	if err := c.get(ctx, "/search/people?q="+url.QueryEscape(query), "failed to search people", "network error occurred while searching people", &results); err != nil {
		return nil, err
	}
	people := make([]Person, 0, len(results))
	for i := range results {
		if err := c.checkRecord(&results[i].Person, "network error occurred while searching people"); err != nil {
			return nil, err
		}
		people = append(people, results[i].Person)
	}
	return people, nil
}

func (c *Client) PersonByID(ctx context.Context, id int) (Person, error) {
	var person Person
	if err := c.get(ctx, fmt.Sprintf("/people/%d", id), "failed to fetch person", "network error occurred while fetching person", &person); err != nil {
		return Person{}, err
	}
	if err := c.checkRecord(&person, "network error occurred while fetching person"); err != nil {
		return Person{}, err
	}
	return person, nil
}

func (c *Client) PersonCastCredits(ctx context.Context, id int) ([]CastCredit, error) {
	var credits []CastCredit
	if err := c.get(ctx, fmt.Sprintf("/people/%d/castcredits", id), "failed to fetch cast credits", "network error occurred while fetching cast credits", &credits); err != nil {
		return nil, err
	}
	return credits, nil
}
