package industries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookups(t *testing.T) {
	c := NewCatalog([]Industry{
		{ID: "tech", Name: "Technology", SubIndustries: []string{"Software Development"}},
		{ID: "tech", Name: "Duplicate"},
		{ID: " ", Name: "Blank"},
		{ID: "finance", Name: "Finance", SubIndustries: []string{"Banking"}},
	})

	require.Len(t, c.List(), 2)
	assert.Equal(t, "tech", c.List()[0].ID)
	assert.True(t, c.Has("finance"))
	assert.False(t, c.Has("mining"))
	assert.True(t, c.Allows("tech", "Software Development"))
	assert.False(t, c.Allows("tech", "Banking"))
	assert.False(t, c.Allows("mining", "Banking"))

	it, err := c.Get("tech")
	require.NoError(t, err)
	assert.Equal(t, "Technology", it.Name)

	_, err = c.Get("mining")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogReturnsCopies(t *testing.T) {
	c := NewCatalog([]Industry{{ID: "tech", SubIndustries: []string{"A"}}})

	list := c.List()
	list[0].SubIndustries[0] = "mutated"

	it, err := c.Get("tech")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, it.SubIndustries)
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.NotEmpty(t, c.List())
	assert.True(t, c.Allows("tech", "Software Development"))
	for _, it := range c.List() {
		assert.NotEmpty(t, it.SubIndustries, it.ID)
	}
}
