package nav

import (
	"go.uber.org/zap"
)

// Status messages shown to the user.
const (
	StatusLoading    = "Loading…"
	StatusReloading  = "Reloading…"
	StatusLoaded     = "Loaded."
	StatusInvalid    = "Please enter a valid URL…"
	StatusLoadFailed = "Could not load that URL."
	StatusCleared    = "History cleared."
)

// AssignResult is the outcome of pointing the embedded surface at an address.
type AssignResult struct {
	Err error
}

// OK reports whether the surface accepted the address.
func (r AssignResult) OK() bool {
	return r.Err == nil
}

// Surface is the embedded view the controller drives. Assign starts loading
// addr and returns immediately; completion is reported back through
// Controller.Loaded or Controller.LoadFailed.
type Surface interface {
	Assign(addr string) AssignResult
}

// Config holds the fixed controller settings.
type Config struct {
	Home     string
	Capacity int
}

// View is the display state derived from the controller.
type View struct {
	Input   string
	Status  string
	Home    string
	Cursor  int
	Buttons Buttons
	Items   []ListItem
}

// Controller implements the navigation operations over one embedded surface.
type Controller struct {
	history *History
	surface Surface
	home    string
	input   string
	status  string
	logger  *zap.Logger
}

// NewController creates a controller. Call Start to load the home address.
func NewController(cfg Config, surface Surface, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		history: NewHistory(cfg.Capacity),
		surface: surface,
		home:    cfg.Home,
		logger:  logger,
	}
}

// Start loads the home address as the first history entry.
func (c *Controller) Start() {
	c.Navigate(c.home, true)
}

// Submit navigates to whatever is in the address field.
func (c *Controller) Submit() {
	c.Navigate(c.input, true)
}

// Navigate normalizes raw and loads it. With push set the address is
// recorded in history.
func (c *Controller) Navigate(raw string, push bool) {
	addr, err := Normalize(raw)
	if err != nil {
		c.logger.Info("rejected address", zap.String("input", raw))
		c.status = StatusInvalid
		return
	}

	c.input = addr
	c.status = StatusLoading
	if !c.assign(addr) {
		return
	}
	if push {
		c.history.Push(addr)
	}
	c.logger.Debug("navigate",
		zap.String("addr", addr),
		zap.Bool("push", push),
		zap.Int("cursor", c.history.Cursor()),
		zap.Int("len", c.history.Len()),
	)
}

// GoBack loads the previous entry. It does nothing at the first entry.
func (c *Controller) GoBack() {
	if !c.history.CanGoBack() {
		return
	}
	addr, _ := c.history.Back()
	c.load(addr)
}

// GoForward loads the next entry. It does nothing at the last entry.
func (c *Controller) GoForward() {
	if !c.history.CanGoForward() {
		return
	}
	addr, _ := c.history.Forward()
	c.load(addr)
}

// GoHome navigates to the home address.
func (c *Controller) GoHome() {
	c.Navigate(c.home, true)
}

// Reload assigns the current entry again. With an empty history the address
// field is used instead.
func (c *Controller) Reload() {
	addr := c.history.Current()
	if addr == "" {
		var err error
		addr, err = Normalize(c.input)
		if err != nil {
			c.status = StatusInvalid
			return
		}
	}

	c.status = StatusReloading
	c.assign(addr)
}

// ClearHistory empties the history.
func (c *Controller) ClearHistory() {
	c.history.Clear()
	c.status = StatusCleared
	c.logger.Debug("history cleared")
}

// OpenListed navigates to the history entry at index, as a new visit.
func (c *Controller) OpenListed(index int) {
	addr, ok := c.history.At(index)
	if !ok {
		return
	}
	c.Navigate(addr, true)
}

// Loaded records that the surface finished loading.
func (c *Controller) Loaded() {
	c.status = StatusLoaded
}

// LoadFailed records that the surface could not load its target.
func (c *Controller) LoadFailed(err error) {
	c.logger.Warn("load failed", zap.Error(err))
	c.status = StatusLoadFailed
}

// SetInput replaces the address field text.
func (c *Controller) SetInput(s string) {
	c.input = s
}

// Input returns the address field text.
func (c *Controller) Input() string {
	return c.input
}

// Status returns the current status message.
func (c *Controller) Status() string {
	return c.status
}

// Home returns the home address.
func (c *Controller) Home() string {
	return c.home
}

// History exposes the underlying history for inspection.
func (c *Controller) History() *History {
	return c.history
}

// View projects the current state for display.
func (c *Controller) View() View {
	s := c.history.Snapshot()
	return View{
		Input:   c.input,
		Status:  c.status,
		Home:    c.home,
		Cursor:  s.Cursor,
		Buttons: s.Buttons(),
		Items:   s.Listing(),
	}
}

func (c *Controller) load(addr string) {
	c.input = addr
	c.status = StatusLoading
	c.assign(addr)
}

func (c *Controller) assign(addr string) bool {
	res := c.surface.Assign(addr)
	if !res.OK() {
		c.logger.Warn("surface rejected address", zap.String("addr", addr), zap.Error(res.Err))
		c.status = StatusLoadFailed
		return false
	}
	return true
}
