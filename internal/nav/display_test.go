package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtons(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  Buttons
	}{
		{"empty", State{Cursor: NoEntry}, Buttons{}},
		{"single", State{Entries: []string{"A"}, Cursor: 0}, Buttons{}},
		{"middle", State{Entries: []string{"A", "B", "C"}, Cursor: 1}, Buttons{Back: true, Forward: true}},
		{"head", State{Entries: []string{"A", "B", "C"}, Cursor: 2}, Buttons{Back: true}},
		{"tail", State{Entries: []string{"A", "B", "C"}, Cursor: 0}, Buttons{Forward: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Buttons())
		})
	}
}

func TestListingNewestFirst(t *testing.T) {
	s := State{
		Entries: []string{"https://a.example", "https://b.example/path", "not a url%"},
		Cursor:  1,
	}
	items := s.Listing()
	require.Len(t, items, 3)

	assert.Equal(t, ListItem{Index: 2, Address: "not a url%"}, items[0])
	assert.Equal(t, ListItem{Index: 1, Address: "https://b.example/path", Host: "b.example", Current: true}, items[1])
	assert.Equal(t, ListItem{Index: 0, Address: "https://a.example", Host: "a.example"}, items[2])
}

func TestListingEmpty(t *testing.T) {
	assert.Empty(t, State{Cursor: NoEntry}.Listing())
}

func TestHostLabel(t *testing.T) {
	assert.Equal(t, "example.com", HostLabel("https://example.com:8443/x"))
	assert.Equal(t, "bücher.example", HostLabel("https://xn--bcher-kva.example/"))
	assert.Equal(t, "", HostLabel("https://"))
	assert.Equal(t, "", HostLabel("mailto:someone"))
	assert.Equal(t, "", HostLabel("://bad"))
}

func TestHostLabelIPLiterals(t *testing.T) {
	assert.Equal(t, "[::1]", HostLabel("http://[::1]:8080/"))
	assert.Equal(t, "[2001:db8::1]", HostLabel("https://[2001:db8::1]/x"))
	assert.Equal(t, "127.0.0.1", HostLabel("http://127.0.0.1:3000"))
}

func TestHostLabelLabelRules(t *testing.T) {
	assert.Equal(t, "my_host.local", HostLabel("https://my_host.local"))
	assert.Equal(t, "r3---sn-abc.example", HostLabel("https://r3---sn-abc.example/"))
	assert.Equal(t, "example.com", HostLabel("https://Example.COM"))
	assert.Equal(t, "", HostLabel("https://a..b"))
	assert.Equal(t, "", HostLabel("https://.example"))
}
