package nav

import (
	"net"
	"net/url"

	"golang.org/x/net/idna"
)

// State is a read-only copy of the navigation history.
type State struct {
	Entries []string
	Cursor  int
}

// Buttons holds which navigation controls are enabled.
type Buttons struct {
	Back    bool
	Forward bool
}

// ListItem is one row of the history listing.
type ListItem struct {
	Index   int    // position in State.Entries
	Address string
	Host    string // secondary label; empty when the address has no usable host
	Current bool
}

// Buttons derives control enablement from the cursor.
func (s State) Buttons() Buttons {
	last := len(s.Entries) - 1
	return Buttons{
		Back:    s.Cursor > 0,
		Forward: s.Cursor != NoEntry && s.Cursor < last,
	}
}

// Listing returns the entries newest first.
func (s State) Listing() []ListItem {
	items := make([]ListItem, 0, len(s.Entries))
	for i := len(s.Entries) - 1; i >= 0; i-- {
		addr := s.Entries[i]
		items = append(items, ListItem{
			Index:   i,
			Address: addr,
			Host:    HostLabel(addr),
			Current: i == s.Cursor,
		})
	}
	return items
}

// hostProfile accepts what browsers accept in a host name: underscores and
// hyphen runs are allowed, empty labels are not.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.StrictDomainName(false),
	idna.CheckHyphens(false),
	idna.VerifyDNSLength(true),
	idna.BidiRule(),
)

// HostLabel returns the display form of addr's host, or "" if addr has no
// well-formed host. IPv6 literals keep their brackets.
func HostLabel(addr string) string {
	u, err := url.Parse(addr)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if host == "" {
		return ""
	}
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return "[" + host + "]"
		}
		return host
	}
	label, err := hostProfile.ToUnicode(host)
	if err != nil {
		return ""
	}
	return label
}
