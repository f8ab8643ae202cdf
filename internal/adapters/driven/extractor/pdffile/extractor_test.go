package pdffile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupports(t *testing.T) {
	e := New()

	assert.True(t, e.Supports("turkey.pdf"))
	assert.True(t, e.Supports("TURKEY.PDF"))
	assert.False(t, e.Supports("turkey.txt"))
	assert.False(t, e.Supports("turkey"))
}

func TestPageCount_MissingFile(t *testing.T) {
	e := New()

	_, err := e.PageCount(context.Background(), "/nonexistent.pdf")
	assert.Error(t, err)
}

func TestExtractPage_MissingFile(t *testing.T) {
	e := New()

	_, err := e.ExtractPage(context.Background(), "/nonexistent.pdf", 1)
	assert.Error(t, err)
}
