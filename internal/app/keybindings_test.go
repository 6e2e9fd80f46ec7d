package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderGroupsUseHelp(t *testing.T) {
	keys := DefaultKeyMap()
	groups := keys.LeaderGroups()
	require.NotEmpty(t, groups)

	var listed []string
	for _, g := range groups {
		assert.NotEmpty(t, g.Name)
		for _, b := range g.Bindings {
			assert.NotEmpty(t, b.Key, g.Name)
			assert.NotEmpty(t, b.Desc, g.Name)
			listed = append(listed, b.Desc)
		}
	}
	assert.Contains(t, listed, keys.Back.Help().Desc)
	assert.Contains(t, listed, keys.Clear.Help().Desc)
	assert.Contains(t, listed, keys.HistoryFocus.Help().Desc)
}
