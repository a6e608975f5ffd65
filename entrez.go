package kmerdb

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Courtesy parameters sent with every E-utilities request. They are a
// convention of the service, not authentication.
const (
	DefaultTool  = "kmunity"
	DefaultEmail = "research@univerity.edu"
)

const eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// RunInfoBatch is the practical upper bound on the number of uids one
// efetch runinfo request will reliably serve. Larger batches come back
// truncated or malformed; the service does not document the limit and
// this client does not enforce it. Callers chunk uid lists themselves.
const RunInfoBatch = 20

// SearchClient is the part of the Entrez client the run selector uses.
type SearchClient interface {
	// Count returns the total number of items matching term.
	Count(term string) (int, error)
	// UIDs returns one page of up to retmax opaque ids starting retstart
	// matches into the result set, in the API's original order.
	UIDs(term string, retstart, retmax int) ([]string, error)
	// RunInfo fetches and decodes run metadata for up to RunInfoBatch uids.
	RunInfo(uids []string) ([]RunRecord, error)
}

// SearchError reports a malformed or count-inconsistent E-utilities
// response. It is not retried; callers may retry the whole session.
type SearchError struct {
	Op  string // esearch or efetch
	Msg string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("entrez %s: %s", e.Op, e.Msg)
}

// Entrez issues esearch and efetch requests against the NCBI
// E-utilities. All calls are blocking; timeouts are whatever the
// injected HTTP client enforces.
type Entrez struct {
	BaseURL string       // E-utilities base URL.
	Db      string       // Entrez database name.
	Tool    string       // courtesy tool name.
	Email   string       // courtesy contact email.
	Client  *http.Client // HTTP transport.
}

// NewEntrez returns a client for the SRA database with default
// courtesy parameters.
func NewEntrez() *Entrez {
	return &Entrez{
		BaseURL: eutilsBase,
		Db:      "sra",
		Tool:    DefaultTool,
		Email:   DefaultEmail,
		Client:  http.DefaultClient,
	}
}

// esearch response document.
type eSearchResult struct {
	XMLName xml.Name `xml:"eSearchResult"`
	Count   *int     `xml:"Count"`
	IDs     []string `xml:"IdList>Id"`
}

// Count returns the total number of items matching term.
func (e *Entrez) Count(term string) (int, error) {
	res, err := e.search(term, url.Values{})
	if err != nil {
		return 0, err
	}
	return *res.Count, nil
}

// UIDs returns up to retmax ids starting retstart matches into the
// result set. An empty id list for the first page of a nonzero-counted
// search is a SearchError: it signals a stale count or a bad offset,
// not an empty result set. Empty pages at later offsets are returned
// as-is; the remote result set may have shrunk mid-session and callers
// treat that as exhaustion.
func (e *Entrez) UIDs(term string, retstart, retmax int) ([]string, error) {
	params := url.Values{}
	params.Set("retstart", strconv.Itoa(retstart))
	params.Set("retmax", strconv.Itoa(retmax))

	res, err := e.search(term, params)
	if err != nil {
		return nil, err
	}
	if len(res.IDs) == 0 && retstart == 0 && *res.Count > 0 {
		return nil, &SearchError{
			Op:  "esearch",
			Msg: fmt.Sprintf("no uids returned at offset 0 for a search counting %d matches", *res.Count),
		}
	}
	return res.IDs, nil
}

// RunInfo fetches run metadata for the given uids. The ids are joined
// into a single efetch request, so the list must respect RunInfoBatch.
// Document order is preserved and no deduplication is performed.
func (e *Entrez) RunInfo(uids []string) ([]RunRecord, error) {
	if len(uids) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("id", strings.Join(uids, ","))

	body, err := e.get("efetch.fcgi", params)
	if err != nil {
		return nil, err
	}
	return decodeRunInfo(body)
}

// search performs one esearch request and decodes the response.
func (e *Entrez) search(term string, params url.Values) (*eSearchResult, error) {
	params.Set("term", term)

	body, err := e.get("esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var res eSearchResult
	if err := xml.Unmarshal(body, &res); err != nil {
		return nil, &SearchError{Op: "esearch", Msg: "cannot parse response: " + err.Error()}
	}
	if res.Count == nil {
		return nil, &SearchError{Op: "esearch", Msg: "response has no Count field"}
	}
	return &res, nil
}

func (e *Entrez) get(endpoint string, params url.Values) ([]byte, error) {
	params.Set("db", e.Db)
	params.Set("tool", e.Tool)
	params.Set("email", e.Email)

	op := strings.TrimSuffix(endpoint, ".fcgi")
	resp, err := e.Client.Get(e.BaseURL + "/" + endpoint + "?" + params.Encode())
	if err != nil {
		return nil, &SearchError{Op: op, Msg: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SearchError{Op: op, Msg: "unexpected status " + resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SearchError{Op: op, Msg: "reading response: " + err.Error()}
	}
	return body, nil
}
