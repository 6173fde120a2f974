package export

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/trezcool/darasa/core"
)

var (
	ErrPageOutOfRange = errors.New("page out of range")
	ErrBadLimit       = errors.New("unsupported page size")
)

// SelectionMode discriminates the two mutually exclusive selection states:
// either the explicit id set is authoritative, or every row matching the
// current search is selected. Never both.
type SelectionMode int

const (
	SelectExplicit SelectionMode = iota
	SelectAllMatching
)

// Fetcher is the server-backed data source of the Controller.
type Fetcher interface {
	ListUsers(ctx context.Context, page, limit int, query string) (Page, error)
	AllEmails(ctx context.Context, query string) ([]string, error)
}

// Controller manages a paged, searchable, multi-select view over the export
// result set. It is safe for concurrent use: every fetch is tagged with a
// generation number and a stale response (one superseded by a later query,
// page or limit change) is discarded on arrival instead of being applied.
type Controller struct {
	fetcher      Fetcher
	timeout      time.Duration
	limitOptions []int

	mu         sync.Mutex
	gen        uint64 // latest issued fetch generation
	query      PageQuery
	rows       []UserEmail
	total      int
	totalPages int
	busy       bool

	mode     SelectionMode
	selected map[string]struct{}
	seen     map[string]UserEmail // rows seen on any page of the current query

	snapshot      []string // full matching email set from the last select-all
	snapshotQuery string
	hasSnapshot   bool
}

func NewController(fetcher Fetcher, conf core.ExportConfig) *Controller {
	limit := conf.DefaultPageSize
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Controller{
		fetcher:      fetcher,
		timeout:      conf.FetchTimeout,
		limitOptions: conf.PageSizeOptions,
		query:        PageQuery{Page: DefaultPage, Limit: limit},
		selected:     make(map[string]struct{}),
		seen:         make(map[string]UserEmail),
	}
}

// Load restores the query from navigation parameters and performs the initial
// fetch.
func (c *Controller) Load(ctx context.Context, q PageQuery) error {
	c.mu.Lock()
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if !validLimit(q.Limit, c.limitOptions) {
		q.Limit = DefaultLimit
	}
	c.query = q
	c.clearSelectionLocked()
	c.mu.Unlock()
	return c.refresh(ctx)
}

// SetSearch changes the search query. Resets to page 1, clears any selection
// and refetches: the filter change invalidates per-page row identities, so a
// stale selection could silently select wrong rows.
func (c *Controller) SetSearch(ctx context.Context, query string) error {
	c.mu.Lock()
	c.query.Search = core.CleanString(query)
	c.query.Page = DefaultPage
	c.clearSelectionLocked()
	c.mu.Unlock()
	return c.refresh(ctx)
}

// SetLimit changes the page size. Same reset rules as SetSearch.
func (c *Controller) SetLimit(ctx context.Context, limit int) error {
	c.mu.Lock()
	if !validLimit(limit, c.limitOptions) {
		c.mu.Unlock()
		return ErrBadLimit
	}
	c.query.Limit = limit
	c.query.Page = DefaultPage
	c.clearSelectionLocked()
	c.mu.Unlock()
	return c.refresh(ctx)
}

// GoToPage moves to page p, constrained to 1 <= p <= totalPages. Clears any
// selection.
func (c *Controller) GoToPage(ctx context.Context, p int) error {
	c.mu.Lock()
	if p < 1 || (c.totalPages > 0 && p > c.totalPages) {
		c.mu.Unlock()
		return ErrPageOutOfRange
	}
	c.query.Page = p
	c.clearSelectionLocked()
	c.mu.Unlock()
	return c.refresh(ctx)
}

// refresh fetches the current page. Only the latest-generation response is
// applied; superseded responses return without touching state.
func (c *Controller) refresh(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.busy = true
	q := c.query
	c.mu.Unlock()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	page, err := c.fetcher.ListUsers(ctx, q.Page, q.Limit, q.Search)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil // superseded; discard the stale result
	}
	c.busy = false
	if err != nil {
		return core.NewFetchError("fetching users", err)
	}

	c.rows = page.Users
	c.total = page.Total
	c.totalPages = page.TotalPages
	for _, row := range page.Users {
		c.seen[row.ID] = row
	}
	return nil
}

// ToggleRow flips membership of id in the explicit selection. Toggling a
// single row always downgrades from all-matching mode to explicit-set mode.
func (c *Controller) ToggleRow(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = SelectExplicit
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
}

// ToggleAllOnPage selects exactly the current page's rows, or clears the
// selection when the page is already fully selected. Rows on other pages are
// unaffected. Calling it twice returns to the original selection for the page.
func (c *Controller) ToggleAllOnPage() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = SelectExplicit
	if c.pageFullySelectedLocked() {
		c.selected = make(map[string]struct{})
		return
	}
	c.selected = make(map[string]struct{}, len(c.rows))
	for _, row := range c.rows {
		c.selected[row.ID] = struct{}{}
	}
}

func (c *Controller) pageFullySelectedLocked() bool {
	if len(c.rows) == 0 {
		return false
	}
	for _, row := range c.rows {
		if _, ok := c.selected[row.ID]; !ok {
			return false
		}
	}
	return true
}

// SelectAllMatching selects every row matching the current search across all
// pages, fetching the full email set out of band. Supersedable: if the query
// changes before the fetch completes, the stale result is discarded and the
// selection state is left alone.
func (c *Controller) SelectAllMatching(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.busy = true
	query := c.query.Search
	c.mu.Unlock()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	emails, err := c.fetcher.AllEmails(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	c.busy = false
	if err != nil {
		return core.NewFetchError("selecting all users", err)
	}

	c.mode = SelectAllMatching
	c.selected = make(map[string]struct{})
	c.snapshot = DedupEmails(emails)
	c.snapshotQuery = query
	c.hasSnapshot = true
	return nil
}

// ClearSelection resets to an empty explicit selection.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearSelectionLocked()
}

func (c *Controller) clearSelectionLocked() {
	c.mode = SelectExplicit
	c.selected = make(map[string]struct{})
	c.seen = make(map[string]UserEmail)
	c.hasSnapshot = false
	c.snapshot = nil
	c.snapshotQuery = ""
}

// ResolveSelectedEmails returns the selected emails, de-duplicated. In
// all-matching mode it reuses the snapshot from SelectAllMatching when it is
// still for the current query, refetching otherwise; in explicit mode it
// projects the selected ids against the rows seen so far.
func (c *Controller) ResolveSelectedEmails(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	if c.mode == SelectAllMatching {
		if c.hasSnapshot && c.snapshotQuery == c.query.Search {
			snap := append([]string(nil), c.snapshot...)
			c.mu.Unlock()
			return snap, nil
		}
		query := c.query.Search
		c.mu.Unlock()

		if c.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
		emails, err := c.fetcher.AllEmails(ctx, query)
		if err != nil {
			return nil, core.NewFetchError("resolving selected emails", err)
		}
		return DedupEmails(emails), nil
	}
	defer c.mu.Unlock()

	// current page rows first, in display order
	emails := make([]string, 0, len(c.selected))
	resolved := make(map[string]struct{}, len(c.selected))
	for _, row := range c.rows {
		if _, ok := c.selected[row.ID]; ok {
			emails = append(emails, row.Email)
			resolved[row.ID] = struct{}{}
		}
	}
	// then anything selected on previously-seen pages of this query
	var rest []string
	for id := range c.selected {
		if _, ok := resolved[id]; ok {
			continue
		}
		if row, ok := c.seen[id]; ok {
			rest = append(rest, row.Email)
		}
	}
	sort.Strings(rest)
	return DedupEmails(append(emails, rest...)), nil
}

// SelectedCount is the number shown next to "Selected:". In all-matching mode
// it is the full result-set total regardless of the local page size.
func (c *Controller) SelectedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == SelectAllMatching {
		return c.total
	}
	return len(c.selected)
}

func (c *Controller) IsSelected(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == SelectAllMatching {
		return true
	}
	_, ok := c.selected[id]
	return ok
}

// Rows returns a copy of the current page's rows.
func (c *Controller) Rows() []UserEmail {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]UserEmail(nil), c.rows...)
}

func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *Controller) Mode() SelectionMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) Query() PageQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// QueryParams serializes the current query for the navigation surface,
// omitting parameters at their defaults.
func (c *Controller) QueryParams() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Values()
}
