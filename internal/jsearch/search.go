package jsearch

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type SearchParams struct {
	Query    string `mapstructure:"query"`
	Location string `mapstructure:"location"`
	// Pages is passed through as num_pages; JSearch aggregates the pages
	// server-side into a single response.
	Pages int `mapstructure:"pages"`
}

type Jobs struct {
	Items []*Job
}

type Job struct {
	Title       string `json:"job_title,omitempty"`
	Employer    string `json:"employer_name,omitempty"`
	City        string `json:"job_city,omitempty"`
	Country     string `json:"job_country,omitempty"`
	Description string `json:"job_description,omitempty"`
	ApplyLink   string `json:"job_apply_link,omitempty"`
	GoogleLink  string `json:"job_google_link,omitempty"`
}

type searchResponse struct {
	Status string           `json:"status"`
	Data   []map[string]any `json:"data"`
}

// Search fetches live job postings for the given query and location.
func (c *Client) Search(ctx context.Context, params *SearchParams) (*Jobs, error) {
	if params == nil || strings.TrimSpace(params.Query) == "" {
		return nil, fmt.Errorf("search query is required")
	}

	query := params.Query
	if location := strings.TrimSpace(params.Location); location != "" {
		query = fmt.Sprintf("%s in %s", params.Query, location)
	}

	pages := params.Pages
	if pages <= 0 {
		pages = 1
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("page", "1")
	q.Set("num_pages", strconv.Itoa(pages))

	var response searchResponse
	if err := c.getJSON(ctx, searchPath, q, &response); err != nil {
		return nil, err
	}

	var jobs []*Job
	cfg := &mapstructure.DecoderConfig{
		Result:  &jobs,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(response.Data); err != nil {
		return nil, fmt.Errorf("decode job items: %w", err)
	}

	return &Jobs{Items: jobs}, nil
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

// Limit caps the list at n jobs, keeping input order.
func (j *Jobs) Limit(n int) {
	if n > 0 && len(j.Items) > n {
		j.Items = j.Items[:n]
	}
}

// Location prefers the city and falls back to the country.
func (job *Job) Location() string {
	if job.City != "" {
		return job.City
	}
	return job.Country
}

// Link prefers the direct apply link and falls back to the Google one.
func (job *Job) Link() string {
	if job.ApplyLink != "" {
		return job.ApplyLink
	}
	return job.GoogleLink
}
