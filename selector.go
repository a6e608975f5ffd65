package kmerdb

import "errors"

// ErrExhausted signals the legitimate end of a selection session: the
// search result set has no further candidates. A new session re-counts
// and re-pages from offset 0.
var ErrExhausted = errors.New("kmerdb: search results exhausted")

// Selector defaults.
const (
	DefaultMinBases = int64(1e9)
	DefaultPageSize = 20
)

// Selector produces a lazy, ordered sequence of runs matching a search
// term that pass all filters. No more than one page of uids (and the
// detail batches needed to decode it) is fetched ahead of the caller.
// A selector is single-session: it is not restartable mid-iteration,
// and consistency against a remote result set that changes during
// iteration is not guaranteed.
type Selector struct {
	MinBases int64 // minimum total bases per run.
	PageSize int   // uids requested per search page.

	client  SearchClient
	term    SearchTerm
	table   *ResultTable
	exclude map[int]bool

	started bool
	total   int
	offset  int
	queue   []RunRecord
}

// NewSelector returns a selector over term with default paging and
// filtering. The default taxonomy exclusions always apply; extra ids
// extend them. Records whose run, sample, or taxonomy id already
// appear in table are skipped.
func NewSelector(client SearchClient, term SearchTerm, table *ResultTable, extraExclude ...int) *Selector {
	exclude := make(map[int]bool)
	for _, id := range DefaultExcludeTaxIDs {
		exclude[id] = true
	}
	for _, id := range extraExclude {
		exclude[id] = true
	}

	return &Selector{
		MinBases: DefaultMinBases,
		PageSize: DefaultPageSize,
		client:   client,
		term:     term,
		table:    table,
		exclude:  exclude,
	}
}

// OverrideExclude replaces the exclusion set entirely, including the
// defaults. Most callers should pass extra ids to NewSelector instead.
func (s *Selector) OverrideExclude(ids []int) {
	s.exclude = make(map[int]bool)
	for _, id := range ids {
		s.exclude[id] = true
	}
}

// Next returns the next run that passes all filters, in the order the
// API returned them. It returns ErrExhausted when the result set is
// finished, or the underlying search error.
func (s *Selector) Next() (*RunRecord, error) {
	for {
		for len(s.queue) > 0 {
			rec := s.queue[0]
			s.queue = s.queue[1:]
			if s.keep(rec) {
				return &rec, nil
			}
		}
		if err := s.advance(); err != nil {
			return nil, err
		}
	}
}

// advance fetches the next page of uids and decodes it into the queue.
func (s *Selector) advance() error {
	if !s.started {
		n, err := s.client.Count(s.term.Query)
		if err != nil {
			return err
		}
		s.total = n
		s.started = true
		Info.Printf("%s: %d matching runs\n", s.term.Name, n)
	}

	if s.offset >= s.total {
		return ErrExhausted
	}

	uids, err := s.client.UIDs(s.term.Query, s.offset, s.PageSize)
	if err != nil {
		return err
	}
	if len(uids) == 0 {
		// The remote result set shrank since the count was taken.
		s.offset = s.total
		return ErrExhausted
	}
	s.offset += len(uids)

	// Detail requests are chunked to the efetch batch cap.
	for start := 0; start < len(uids); start += RunInfoBatch {
		end := start + RunInfoBatch
		if end > len(uids) {
			end = len(uids)
		}
		records, err := s.client.RunInfo(uids[start:end])
		if err != nil {
			return err
		}
		s.queue = append(s.queue, records...)
	}

	return nil
}

// keep reports whether a candidate passes all filters. Rejections are
// normal control flow, not errors.
func (s *Selector) keep(rec RunRecord) bool {
	if rec.Run == "" {
		return false
	}
	if s.exclude[rec.TaxID] {
		Info.Printf("skipping %s: excluded taxid %d\n", rec.Run, rec.TaxID)
		return false
	}
	if rec.Bases < s.MinBases {
		Info.Printf("skipping %s: %.2f Gb below minimum\n", rec.Run, rec.Gb())
		return false
	}
	if s.table != nil && s.table.Contains(rec) {
		Info.Printf("skipping %s: already in database\n", rec.Run)
		return false
	}
	return true
}
