package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/domain/indexModel"
	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	assert.Equal(t, "short text", preview("short\n\ntext", 80))
	assert.Equal(t, "abcd…", preview("abcdefghij", 5))
	assert.Equal(t, "ééé", preview("ééé", 3))
}

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	printMatches(&buf, nil)
	assert.Contains(t, buf.String(), "No passages")

	buf.Reset()
	printMatches(&buf, []commonModels.RetrievalMatch{{MaterialId: "m1", Ordinal: 2, Content: "Osmosis moves water.", Similarity: 0.5}})
	assert.Contains(t, buf.String(), "0.500")
	assert.Contains(t, buf.String(), "Osmosis moves water.")
}

func TestPrintMaterialsAndReport(t *testing.T) {
	var buf bytes.Buffer
	printMaterials(&buf, nil)
	assert.Contains(t, buf.String(), "No materials.")

	buf.Reset()
	m := commonModels.Material{Id: "m1", Title: "Week 1", FileType: "pdf", CreatedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)}
	printMaterials(&buf, []commonModels.Material{m})
	assert.Contains(t, buf.String(), "Week 1")
	assert.Contains(t, buf.String(), "2025-03-01 09:30")

	buf.Reset()
	printReport(&buf, m, indexModel.IndexReport{Status: indexModel.StatusSkipped, SkipReason: indexModel.SkipNoText})
	assert.Contains(t, buf.String(), "skipped")
	assert.Contains(t, buf.String(), "no_text")
}
