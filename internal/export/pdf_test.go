package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duoreport/internal/models"
)

func TestRenderPDFProducesDocument(t *testing.T) {
	sections := map[string]string{}
	for _, key := range models.SectionKeys {
		sections[key] = ""
	}
	sections["abstract"] = "<p>We study <b>report</b> collaboration.</p>"
	sections["results"] = "Latency dropped by 40%.&nbsp;Throughput doubled."

	pdf, err := RenderPDF("abc12345", sections)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"), "output should be a PDF byte stream")
	assert.Greater(t, len(pdf), 1000)
}

func TestRenderPDFAllSectionsEmpty(t *testing.T) {
	sections := map[string]string{}
	for _, key := range models.SectionKeys {
		sections[key] = ""
	}

	pdf, err := RenderPDF("empty001", sections)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}
