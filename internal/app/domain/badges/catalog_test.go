package badges

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"streamoverlay/internal/app/domain/message"
)

func TestMergeChannelOverridesGlobal(t *testing.T) {
	t.Parallel()

	global := map[string]map[string]string{
		"subscriber": {"0": "https://global/sub0", "3": "https://global/sub3"},
		"moderator":  {"1": "https://global/mod1"},
	}
	channel := map[string]map[string]string{
		"subscriber": {"0": "https://channel/sub0", "6": "https://channel/sub6"},
	}

	merged := Merge(global, channel)

	assert.Equal(t, "https://channel/sub0", merged["subscriber"]["0"], "channel version wins")
	assert.Equal(t, "https://global/sub3", merged["subscriber"]["3"], "global-only version kept")
	assert.Equal(t, "https://channel/sub6", merged["subscriber"]["6"], "channel-only version added")
	assert.Equal(t, "https://global/mod1", merged["moderator"]["1"], "untouched set kept")
}

func TestMergeIntoNil(t *testing.T) {
	t.Parallel()

	merged := Merge(nil, map[string]map[string]string{
		"vip": {"1": "https://cdn/vip1"},
	})
	assert.Equal(t, "https://cdn/vip1", merged["vip"]["1"])
}

func TestCatalogResolve(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	c.Replace(map[string]map[string]string{
		"subscriber": {"0": "https://cdn/sub0"},
		"broadcaster": {
			"1": "https://cdn/bc1",
		},
	})

	records := c.Resolve([]message.BadgePair{
		{Set: "broadcaster", Version: "1"},
		{Set: "subscriber", Version: "12"}, // unknown version
		{Set: "founder", Version: "0"},     // unknown set
	})

	assert.Len(t, records, 3)
	assert.Equal(t, "https://cdn/bc1", records[0].URL)
	assert.Empty(t, records[1].URL)
	assert.Empty(t, records[2].URL)
	assert.Equal(t, "founder", records[2].Set)
}

func TestCatalogResolveEmpty(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	assert.Nil(t, c.Resolve(nil))
}

func TestCatalogReplaceIsWholesale(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	c.Replace(map[string]map[string]string{"vip": {"1": "https://cdn/vip1"}})
	c.Replace(map[string]map[string]string{"moderator": {"1": "https://cdn/mod1"}})

	_, ok := c.Lookup("vip", "1")
	assert.False(t, ok, "old mapping must be gone after Replace")

	url, ok := c.Lookup("moderator", "1")
	assert.True(t, ok)
	assert.Equal(t, "https://cdn/mod1", url)
}
