// internal/genomesize/genomesize.go
package genomesize

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the NCBI expected-genome-size endpoint.
const DefaultBaseURL = "https://api.ncbi.nlm.nih.gov/genome/v0/expected_genome_size/expected_genome_size"

// Info is the expected-size record for one species taxid.
type Info struct {
	OrganismName   string `xml:"organism_name"`
	SpeciesTaxid   string `xml:"species_taxid"`
	ExpectedLength int64  `xml:"expected_ungapped_length"`
	MinimumLength  int64  `xml:"minimum_ungapped_length"`
	MaximumLength  int64  `xml:"maximum_ungapped_length"`
}

// Client fetches expected genome sizes. The zero value is not usable; use New.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New returns a Client. A nil httpClient gets a 10s-timeout default; an empty
// baseURL gets DefaultBaseURL (tests point it at an httptest server).
func New(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// Fetch retrieves the expected-size record for a species taxid.
func (c *Client) Fetch(ctx context.Context, taxid string) (Info, error) {
	if taxid == "" {
		return Info{}, fmt.Errorf("genomesize: empty taxid")
	}
	u := c.baseURL + "?species_taxid=" + url.QueryEscape(taxid)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Info{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return Info{}, fmt.Errorf("genomesize: taxid %s: HTTP %d", taxid, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Info{}, err
	}
	var info Info
	if err := xml.Unmarshal(body, &info); err != nil {
		return Info{}, fmt.Errorf("genomesize: taxid %s: %w", taxid, err)
	}
	if info.OrganismName == "" {
		return Info{}, fmt.Errorf("genomesize: taxid %s: no organism_name in response", taxid)
	}
	return info, nil
}
