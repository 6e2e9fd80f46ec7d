package surface

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/vidyasagar/navframe/internal/nav"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	ErrMissingHost       = errors.New("missing host")
	ErrEmbedBlocked      = errors.New("embedding blocked by policy")
)

// LoadedMsg reports the end of a load started by Assign.
type LoadedMsg struct {
	Gen  uint64
	Addr string
	Page *Page
	Err  error
}

// Options configures a Frame.
type Options struct {
	BlockedHosts []string
	CacheSize    int
	Timeout      time.Duration
}

// Frame is the embedded surface: it loads an assigned address in the
// background and keeps the most recent result for display.
type Frame struct {
	fetcher *Fetcher
	cache   *lru.Cache[string, *Page]
	blocked []string
	logger  *zap.Logger

	width   int
	gen     uint64
	cancel  context.CancelFunc
	target  string
	loading bool
	page    *Page
	lastErr error
	pending tea.Cmd
}

var _ nav.Surface = (*Frame)(nil)

// NewFrame creates a frame with an LRU page cache.
func NewFrame(opts Options, logger *zap.Logger) (*Frame, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	size := opts.CacheSize
	if size <= 0 {
		size = 50
	}
	cache, err := lru.New[string, *Page](size)
	if err != nil {
		return nil, fmt.Errorf("creating page cache: %w", err)
	}

	blocked := make([]string, 0, len(opts.BlockedHosts))
	for _, h := range opts.BlockedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			blocked = append(blocked, h)
		}
	}

	return &Frame{
		fetcher: NewFetcher(opts.Timeout),
		cache:   cache,
		blocked: blocked,
		logger:  logger,
		width:   80,
	}, nil
}

// SetWidth sets the render width for subsequent loads.
func (f *Frame) SetWidth(w int) {
	if w > 0 {
		f.width = w
	}
}

// Assign points the frame at addr. The load itself runs as a tea.Cmd
// collected with TakeCmd; any previous load is abandoned. Assigning the
// address already targeted reloads it from the network.
func (f *Frame) Assign(addr string) nav.AssignResult {
	if err := f.check(addr); err != nil {
		return nav.AssignResult{Err: err}
	}

	reload := addr == f.target
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.gen++
	f.target = addr
	f.loading = true
	f.lastErr = nil
	gen := f.gen

	if !reload {
		if page, ok := f.cache.Get(addr); ok {
			f.pending = func() tea.Msg {
				return LoadedMsg{Gen: gen, Addr: addr, Page: page}
			}
			return nav.AssignResult{}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	fetcher, cache, width := f.fetcher, f.cache, f.width

	f.pending = func() tea.Msg {
		page, err := load(ctx, fetcher, addr, width)
		if err != nil {
			return LoadedMsg{Gen: gen, Addr: addr, Err: err}
		}
		cache.Add(addr, page)
		return LoadedMsg{Gen: gen, Addr: addr, Page: page}
	}
	return nav.AssignResult{}
}

// TakeCmd returns the load queued by the last Assign, once.
func (f *Frame) TakeCmd() tea.Cmd {
	cmd := f.pending
	f.pending = nil
	return cmd
}

// Accept applies a finished load. It returns false for loads that were
// superseded by a later Assign.
func (f *Frame) Accept(msg LoadedMsg) bool {
	if msg.Gen != f.gen {
		f.logger.Debug("dropping stale load", zap.String("addr", msg.Addr), zap.Uint64("gen", msg.Gen))
		return false
	}

	f.loading = false
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	if msg.Err != nil {
		f.lastErr = msg.Err
		return true
	}
	f.page = msg.Page
	return true
}

// Page returns the last successfully loaded page.
func (f *Frame) Page() *Page {
	return f.page
}

// Target returns the address most recently assigned.
func (f *Frame) Target() string {
	return f.target
}

// Loading reports whether a load is in flight.
func (f *Frame) Loading() bool {
	return f.loading
}

// Err returns the error of the last finished load, if it failed.
func (f *Frame) Err() error {
	return f.lastErr
}

// check applies the embedding policy.
func (f *Frame) check(addr string) error {
	u, err := url.Parse(addr)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", addr, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ErrMissingHost
	}
	for _, b := range f.blocked {
		if host == b || strings.HasSuffix(host, "."+b) {
			return fmt.Errorf("%w: %s", ErrEmbedBlocked, host)
		}
	}
	return nil
}

func load(ctx context.Context, fetcher *Fetcher, addr string, width int) (*Page, error) {
	result, err := fetcher.Fetch(ctx, addr)
	if err != nil {
		return nil, err
	}
	article, err := Extract(result)
	if err != nil {
		return nil, err
	}
	return Render(article, width), nil
}
