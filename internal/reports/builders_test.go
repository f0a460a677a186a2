package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
)

func sampleProcess() *domain.Process {
	return &domain.Process{
		ID:          "p-1",
		ProcessName: "Rechnungsfreigabe",
		Erfasser:    "Anna Beispiel",
		IstAnswers: domain.IstAnswers{
			ProcessSteps:   "Eingang, Prüfung, Freigabe",
			CurrentSystems: "SAP",
		},
		SollDescription: "Automatisierter Freigabeworkflow",
		IstCosts: domain.IstCosts{
			PersonnelHours: 10,
			HourlyRate:     50,
			SystemCosts:    100,
			OtherCosts:     20,
		},
		ROIData: domain.ROIData{
			EfficiencySavings: 1200,
			InvestmentCost:    600,
		},
	}
}

func TestBuildPrompt_Lastenheft(t *testing.T) {
	prompt, err := BuildPrompt(TypeLastenheft, sampleProcess())
	require.NoError(t, err)

	assert.Contains(t, prompt, "Lastenheft nach DIN 69901-5")
	assert.Contains(t, prompt, "Prozessname: Rechnungsfreigabe")
	assert.Contains(t, prompt, "Eingang, Prüfung, Freigabe")
	assert.Contains(t, prompt, "Automatisierter Freigabeworkflow")
}

func TestBuildPrompt_BlankFieldsGetFallback(t *testing.T) {
	p := &domain.Process{ProcessName: "Leerer Prozess"}

	prompt, err := BuildPrompt(TypeProzessdokumentation, p)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Engpässe: Keine Angaben")
	assert.Contains(t, prompt, "Verantwortliche Person: Keine Angaben")
	assert.NotContains(t, prompt, "Engpässe: \n")
}

func TestBuildPrompt_FinancialsAreFormatted(t *testing.T) {
	prompt, err := BuildPrompt(TypeLastenheft, sampleProcess())
	require.NoError(t, err)

	assert.Contains(t, prompt, "Monatliche Ist-Kosten: 620,00 €")
	assert.Contains(t, prompt, "Jährliche Ist-Kosten: 7.440,00 €")
	assert.Contains(t, prompt, "Amortisationsdauer: 6 Monate")
}

func TestBuildPrompt_UndefinedPayback(t *testing.T) {
	p := sampleProcess()
	p.ROIData = domain.ROIData{InvestmentCost: 5000}

	prompt, err := BuildPrompt(TypeLastenheft, p)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Amortisationsdauer: nicht ermittelbar")
}

func TestBuildPrompt_UnknownTypeRejected(t *testing.T) {
	_, err := BuildPrompt("powerpoint", sampleProcess())
	require.Error(t, err)
}

func TestBuildPrompt_AllTypesDiffer(t *testing.T) {
	p := sampleProcess()
	types := []string{TypeLastenheft, TypeProzessdokumentation, TypeBPMN, TypeAppSpec}

	seen := make(map[string]bool)
	for _, rt := range types {
		prompt, err := BuildPrompt(rt, p)
		require.NoError(t, err)
		assert.False(t, seen[prompt], "prompt for %s duplicates another type", rt)
		seen[prompt] = true
	}
}

func TestDocumentName(t *testing.T) {
	p := &domain.Process{ProcessName: "Rechnungsfreigabe DACH/EU"}
	ts := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	name := DocumentName(TypeLastenheft, p, ts)

	assert.Equal(t, "Lastenheft_Rechnungsfreigabe_DACH-EU_2025-03-14_09-30", name)
}
