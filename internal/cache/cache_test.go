package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltedev/marketplace-product-extractor/internal/models"
)

func newTestCache(t *testing.T) (*RecordCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), 0, time.Minute)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestGetMissIsNilNil(t *testing.T) {
	c, _ := newTestCache(t)

	record, err := c.Get(context.Background(), "https://market.example/item/1")
	require.NoError(t, err, "a miss is not an error")
	assert.Nil(t, record)
}

func TestSetThenGetRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	record := models.NewProductRecord("https://market.example/item/42")
	name := "Desk Lamp"
	record.Name = &name
	record.Breadcrumbs = []string{"Home", "Lighting"}

	require.NoError(t, c.Set(ctx, record.URL, record))

	got, err := c.Get(ctx, record.URL)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record, got)

	assert.Equal(t, time.Minute, mr.TTL(key(record.URL)))
}

func TestGetCorruptedEntry(t *testing.T) {
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set(key("https://market.example/item/9"), "{not json"))

	_, err := c.Get(context.Background(), "https://market.example/item/9")
	assert.Error(t, err)
}
