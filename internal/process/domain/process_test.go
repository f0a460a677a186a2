package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCategory_ClearsDetailsOnChange(t *testing.T) {
	iface := DetailedInterface{
		Category: CategorySystemToSystem,
		Details: ImplementationDetails{
			SystemToSystem: &SystemToSystemDetails{Protocol: "REST", Endpoint: "https://api.example.com"},
		},
	}

	iface.SetCategory(CategoryHumanToSystem)

	assert.Equal(t, CategoryHumanToSystem, iface.Category)
	assert.True(t, iface.Details.IsEmpty())
}

func TestSetCategory_SameCategoryKeepsDetails(t *testing.T) {
	iface := DetailedInterface{
		Category: CategorySystemToSystem,
		Details: ImplementationDetails{
			SystemToSystem: &SystemToSystemDetails{Protocol: "SFTP"},
		},
	}

	iface.SetCategory(CategorySystemToSystem)

	require.NotNil(t, iface.Details.SystemToSystem)
	assert.Equal(t, "SFTP", iface.Details.SystemToSystem.Protocol)
}

func TestNormalize_DropsMismatchedVariants(t *testing.T) {
	iface := DetailedInterface{
		Category: CategoryHumanToHuman,
		Details: ImplementationDetails{
			SystemToSystem: &SystemToSystemDetails{Protocol: "REST"},
			HumanToHuman:   &HumanToHumanDetails{Channel: "E-Mail"},
		},
	}

	iface.Normalize()

	assert.Nil(t, iface.Details.SystemToSystem)
	require.NotNil(t, iface.Details.HumanToHuman)
	assert.Equal(t, "E-Mail", iface.Details.HumanToHuman.Channel)
}

func TestNormalize_UnknownCategoryClearsEverything(t *testing.T) {
	iface := DetailedInterface{
		Category: "Sonstiges",
		Details: ImplementationDetails{
			HumanToSystem: &HumanToSystemDetails{UIType: "Web"},
		},
	}

	iface.Normalize()

	assert.True(t, iface.Details.IsEmpty())
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(CategorySystemToSystem))
	assert.True(t, ValidCategory(CategoryHumanToSystem))
	assert.True(t, ValidCategory(CategoryHumanToHuman))
	assert.False(t, ValidCategory("system-to-system"))
	assert.False(t, ValidCategory(""))
}

func TestRemoveAt(t *testing.T) {
	list := []string{"a", "b", "c"}

	assert.Equal(t, []string{"a", "c"}, RemoveAt(list, 1))
	assert.Equal(t, []string{"b", "c"}, RemoveAt(list, 0))
	assert.Equal(t, []string{"a", "b"}, RemoveAt(list, 2))
	assert.Equal(t, list, RemoveAt(list, 3))
	assert.Equal(t, list, RemoveAt(list, -1))
}

func TestClone_IsIndependent(t *testing.T) {
	original := &Process{
		ID:          "p-1",
		ProcessName: "Rechnungsfreigabe",
		IstCosts:    IstCosts{PersonnelHours: 10, HourlyRate: 50},
		SollAnswers: SollAnswers{
			DetailedInterfaces: []DetailedInterface{{ID: "i-1", Name: "ERP-Export"}},
		},
	}

	draft := original.Clone()
	draft.ProcessName = "Geändert"
	draft.IstCosts.HourlyRate = 99
	draft.SollAnswers.DetailedInterfaces[0].Name = "Anders"

	assert.Equal(t, "Rechnungsfreigabe", original.ProcessName)
	assert.Equal(t, 50.0, original.IstCosts.HourlyRate.Float())
	assert.Equal(t, "ERP-Export", original.SollAnswers.DetailedInterfaces[0].Name)
}

func TestNormalizeLists_ReplacesNilSlices(t *testing.T) {
	p := &Process{}
	p.NormalizeLists()

	assert.NotNil(t, p.IstAnswers.Interfaces)
	assert.NotNil(t, p.IstAnswers.Attachments)
	assert.NotNil(t, p.SollAnswers.DetailedInterfaces)
	assert.NotNil(t, p.SollAnswers.Attachments)
	assert.NotNil(t, p.SpecificationFiles)
	assert.NotNil(t, p.Base44Specifications)
	assert.NotNil(t, p.BPMNFiles)
	assert.NotNil(t, p.PresentationVideos)
	assert.NotNil(t, p.PresentationImages)
	assert.NotNil(t, p.PresentationPowerpoints)
	assert.NotNil(t, p.LastenheftUploadedFiles)
}

func TestNormalizeLists_NormalizesDetailedInterfaces(t *testing.T) {
	p := &Process{
		SollAnswers: SollAnswers{
			DetailedInterfaces: []DetailedInterface{{
				Category: CategoryHumanToSystem,
				Details: ImplementationDetails{
					SystemToSystem: &SystemToSystemDetails{Protocol: "REST"},
					HumanToSystem:  &HumanToSystemDetails{UIType: "Web"},
				},
			}},
		},
	}

	p.NormalizeLists()

	assert.Nil(t, p.SollAnswers.DetailedInterfaces[0].Details.SystemToSystem)
	assert.NotNil(t, p.SollAnswers.DetailedInterfaces[0].Details.HumanToSystem)
}

func TestInferFileType(t *testing.T) {
	tests := map[string]string{
		"lastenheft.pdf":   "pdf",
		"konzept.docx":     "word",
		"kosten.xlsx":      "excel",
		"praesi.pptx":      "powerpoint",
		"diagramm.PNG":     "image",
		"ablauf.bpmn":      "bpmn",
		"video.mp4":        "video",
		"notizen.txt":      "text",
		"unbekannt.xyz":    "other",
		"ohne_erweiterung": "other",
	}
	for name, want := range tests {
		assert.Equal(t, want, InferFileType(name), name)
	}
}
