package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPlainTextPassthrough(t *testing.T) {
	e := NewPDFExtractor()

	text, degraded := e.Extract([]byte("John Doe\nReact, Redux, Git"), "resume.txt")

	assert.Equal(t, "John Doe\nReact, Redux, Git", text)
	assert.False(t, degraded)
}

func TestExtractDegradesOnFakePDF(t *testing.T) {
	e := NewPDFExtractor()

	// Plain text bytes with a .pdf name: extraction must not fail the
	// submission, it degrades to the raw content.
	raw := []byte("this is not a real pdf, just text")
	text, degraded := e.Extract(raw, "resume.pdf")

	assert.Equal(t, string(raw), text)
	assert.True(t, degraded)
}

func TestExtractDegradesOnBinaryGarbage(t *testing.T) {
	e := NewPDFExtractor()

	data := []byte{0x25, 0x50, 0x44, 0x46, 0xff, 0xfe, 0x00, 0x01}
	text, degraded := e.Extract(data, "broken.pdf")

	assert.True(t, degraded)
	// Invalid UTF-8 sequences are replaced, never propagated.
	assert.True(t, len(text) > 0)
}

func TestExtractSanitizesInvalidUTF8InTxt(t *testing.T) {
	e := NewPDFExtractor()

	text, degraded := e.Extract([]byte{'h', 'i', 0xff}, "notes.txt")

	assert.False(t, degraded)
	assert.Equal(t, "hi�", text)
}
