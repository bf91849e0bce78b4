package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tdavies-dev/gutenshad/core"
)

func TestPDFRender_ProducesDocument(t *testing.T) {
	book := core.NewBook(core.BookInfo{ExternalID: 2701, Title: "Moby Dick", Author: "Herman Melville"},
		[]core.Chapter{
			{Title: "CHAPTER I.", Content: "CHAPTER I.\nCall me Ishmael.\n\nSome years ago."},
			{Title: "CHAPTER II.", Content: "CHAPTER II.\nI stuffed a shirt or two."},
		})

	r := NewPDFRenderer()
	data, err := r.Render(book)

	require.NoError(t, err)
	require.NotEmpty(t, data)
	require.Equal(t, "%PDF", string(data[:4]))
	require.Equal(t, ".pdf", r.Extension())
}

func TestPDFRender_EmptyBook(t *testing.T) {
	book := core.NewBook(core.BookInfo{ExternalID: 1, Title: "Empty", Author: "Nobody"}, nil)

	data, err := NewPDFRenderer().Render(book)

	require.NoError(t, err)
	require.NotEmpty(t, data) // cover page only
}
