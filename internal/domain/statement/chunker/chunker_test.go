package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stmtx/statement-extractor/internal/domain/statement/locator"
)

func newTestChunker() *Chunker {
	return New(locator.DefaultMarkers().Keywords())
}

func TestChunker_Split(t *testing.T) {
	c := newTestChunker()

	t.Run("one chunk per keyword", func(t *testing.T) {
		content := "買入開倉 ABC Corp (00001) HKD 2,000 100.50 201,000.00 -50.25\n" +
			"賣出平倉 XYZ Ltd (00002) HKD 500 9.876 4,938.00 +12.00"
		chunks := c.Split(content)
		assert.Len(t, chunks, 2)
		assert.Contains(t, chunks[0], "買入開倉 ABC Corp")
		assert.Contains(t, chunks[1], "賣出平倉 XYZ Ltd")
	})

	t.Run("adjacent keywords are never merged", func(t *testing.T) {
		content := "賣出平倉 A HKD 100 1.50 150.00 0.00買入開倉 B HKD 200 2.50 500.00 0.00"
		chunks := c.Split(content)
		assert.Len(t, chunks, 2)
		assert.Contains(t, chunks[0], "賣出平倉 A")
		assert.NotContains(t, chunks[0], "買入開倉")
		assert.Contains(t, chunks[1], "買入開倉 B")
	})

	t.Run("text before the first keyword is discarded", func(t *testing.T) {
		chunks := c.Split("表頭噪音 其他欄位\n買入開倉 ABC HKD 100 1.50 150.00 0.00")
		assert.Len(t, chunks, 1)
		assert.Contains(t, chunks[0], "買入開倉 ABC")
		assert.NotContains(t, chunks[0], "表頭噪音")
	})

	t.Run("wrapped transaction collapses into one chunk", func(t *testing.T) {
		content := "買入開倉 ABC Corp\n(00001)   HKD\t2,000 100.50\n201,000.00 -50.25"
		chunks := c.Split(content)
		assert.Len(t, chunks, 1)
		assert.Equal(t, "買入開倉 ABC Corp\n(00001) HKD 2,000 100.50\n201,000.00 -50.25", chunks[0])
	})

	t.Run("no keywords yields nothing", func(t *testing.T) {
		assert.Empty(t, c.Split("利息及費用 100.00"))
		assert.Empty(t, c.Split(""))
	})
}

func TestChunker_SplitRows(t *testing.T) {
	c := newTestChunker()

	t.Run("cell line break survives as marker", func(t *testing.T) {
		rows := [][]string{
			{"買賣", "名稱", "貨幣", "數量 價格", "金額", "淨變動"},
			{"買入開倉", "ABC Corp (00001)\nA 類股份", "HKD", "2,000 100.50", "201,000.00", "-50.25"},
		}
		chunks := c.SplitRows(rows)
		assert.Len(t, chunks, 1)
		assert.Contains(t, chunks[0], "ABC Corp (00001)\nA 類股份")
	})

	t.Run("one row per transaction", func(t *testing.T) {
		rows := [][]string{
			{"買入開倉", "ABC", "HKD", "100 1.50", "150.00", "0.00"},
			{"賣出平倉", "XYZ", "HKD", "200 2.50", "500.00", "-1.00"},
		}
		chunks := c.SplitRows(rows)
		assert.Len(t, chunks, 2)
	})

	t.Run("empty rows", func(t *testing.T) {
		assert.Empty(t, c.SplitRows(nil))
	})
}

func TestCollapse(t *testing.T) {
	assert.Equal(t, "a b", Collapse("  a \t b  "))
	assert.Equal(t, "a\nb", Collapse("a \n\n b"))
	assert.Equal(t, "", Collapse(" \n \t "))
}
