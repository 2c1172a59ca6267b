package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	got := SplitLines("FreshMart Grocers\n\n  03/09/2025  \nTOTAL 5.75\n")
	assert.Equal(t, []string{"FreshMart Grocers", "03/09/2025", "TOTAL 5.75"}, got)
}

func TestSplitLinesEmpty(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Nil(t, SplitLines(" \n \n"))
}

func TestNewTesseractRecognizerDefaultsLanguage(t *testing.T) {
	r := NewTesseractRecognizer("", nil)
	assert.Equal(t, "eng", r.language)
}
