package recognizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stmtx/statement-extractor/internal/domain/statement/locator"
)

func TestRecognizer_Recognize(t *testing.T) {
	r := New(locator.DefaultMarkers())

	t.Run("full transaction chunk", func(t *testing.T) {
		raw, ok := r.Recognize("買入開倉 ABC Corp (00001) HKD 100.50 2,000 201,000.00 -50.25")
		require.True(t, ok)
		assert.Equal(t, "買入開倉", raw.ActionKeyword)
		assert.Equal(t, "ABC Corp (00001)", raw.Label)
		assert.Equal(t, "HKD", raw.Currency)
		assert.Equal(t, "100.50", raw.First)
		assert.Equal(t, "2,000", raw.Second)
		assert.Equal(t, "201,000.00", raw.Amount)
		assert.Equal(t, "-50.25", raw.NetChange)
	})

	t.Run("sell keyword", func(t *testing.T) {
		raw, ok := r.Recognize("賣出平倉 XYZ Ltd (00002) HKD 500 9.876 4,938.00 +12.00")
		require.True(t, ok)
		assert.Equal(t, "賣出平倉", raw.ActionKeyword)
		assert.Equal(t, "XYZ Ltd (00002)", raw.Label)
	})

	t.Run("label never swallows the currency code", func(t *testing.T) {
		raw, ok := r.Recognize("買入開倉 HSBC HOLDINGS (00005) HKD 400 39.85 15,940.00 -22.10")
		require.True(t, ok)
		assert.Equal(t, "HSBC HOLDINGS (00005)", raw.Label)
		assert.Equal(t, "HKD", raw.Currency)
	})

	t.Run("missing currency leaves the field empty", func(t *testing.T) {
		raw, ok := r.Recognize("買入開倉 ABC Corp 100 1.50 150.00 0.00")
		require.True(t, ok)
		assert.Empty(t, raw.Currency)
		assert.Equal(t, "100", raw.First)
	})

	t.Run("label spanning a line break", func(t *testing.T) {
		raw, ok := r.Recognize("買入開倉 ABC Corp (00001)\nA 類股份 HKD 2,000 100.50 201,000.00 -50.25")
		require.True(t, ok)
		assert.Equal(t, "ABC Corp (00001)\nA 類股份", raw.Label)
	})

	t.Run("trailing columns beyond net change are ignored", func(t *testing.T) {
		raw, ok := r.Recognize("賣出平倉 ABC HKD 200 2.50 500.00 -1.00 2026-01-05")
		require.True(t, ok)
		assert.Equal(t, "-1.00", raw.NetChange)
	})

	t.Run("non-transaction chunks are discarded silently", func(t *testing.T) {
		for _, chunk := range []string{
			"",
			"利息 100.00",
			"買入開倉 ABC HKD",                // numerics missing
			"買入開倉 ABC HKD 100 1.50 150.00", // net change missing
			"小計 201,000.00",
		} {
			_, ok := r.Recognize(chunk)
			assert.False(t, ok, "chunk %q should not match", chunk)
		}
	})
}
