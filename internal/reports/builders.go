package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
	"github.com/prozessdok/prozessdok-backend/internal/process/finance"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/i18n"
)

// Report types
const (
	TypeLastenheft           = "lastenheft"
	TypeProzessdokumentation = "prozessdokumentation"
	TypeBPMN                 = "bpmn"
	TypeAppSpec              = "app_spec"
)

// fallback is inserted for every blank field so the prompt never
// contains empty sections.
const fallback = "Keine Angaben"

func orFallback(s string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// BuildPrompt serializes the record fields relevant for the given
// report type into a single generation prompt.
func BuildPrompt(reportType string, p *domain.Process) (string, error) {
	switch reportType {
	case TypeLastenheft:
		return buildLastenheftPrompt(p), nil
	case TypeProzessdokumentation:
		return buildProzessdokumentationPrompt(p), nil
	case TypeBPMN:
		return buildBPMNPrompt(p), nil
	case TypeAppSpec:
		return buildAppSpecPrompt(p), nil
	default:
		return "", errors.BadRequest("unknown report type: " + reportType)
	}
}

// DocumentName derives the stored document name from the process name
// and the generation time.
func DocumentName(reportType string, p *domain.Process, now time.Time) string {
	prefix := map[string]string{
		TypeLastenheft:           "Lastenheft",
		TypeProzessdokumentation: "Prozessdokumentation",
		TypeBPMN:                 "BPMN-Struktur",
		TypeAppSpec:              "App-Spezifikation",
	}[reportType]

	name := strings.TrimSpace(p.ProcessName)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "-")

	return fmt.Sprintf("%s_%s_%s", prefix, name, now.Format("2006-01-02_15-04"))
}

func writeHeader(b *strings.Builder, p *domain.Process) {
	fmt.Fprintf(b, "Prozessname: %s\n", orFallback(p.ProcessName))
	fmt.Fprintf(b, "Erfasser: %s\n", orFallback(p.Erfasser))
	if p.Erfassungsdatum != nil {
		fmt.Fprintf(b, "Erfassungsdatum: %s\n", p.Erfassungsdatum.Format("02.01.2006"))
	}
	b.WriteString("\n")
}

func writeIstAnalysis(b *strings.Builder, p *domain.Process) {
	ist := p.IstAnswers
	b.WriteString("## Ist-Analyse\n")
	fmt.Fprintf(b, "Prozessschritte: %s\n", orFallback(ist.ProcessSteps))
	fmt.Fprintf(b, "Verantwortliche Person: %s\n", orFallback(ist.ResponsiblePerson))
	fmt.Fprintf(b, "Beteiligte Abteilungen: %s\n", orFallback(ist.InvolvedDepartments))
	fmt.Fprintf(b, "Aktuelle Systeme: %s\n", orFallback(ist.CurrentSystems))
	fmt.Fprintf(b, "Verarbeitete Daten: %s\n", orFallback(ist.DataProcessed))
	fmt.Fprintf(b, "Engpässe: %s\n", orFallback(ist.Bottlenecks))
	fmt.Fprintf(b, "Manuelle Tätigkeiten: %s\n", orFallback(ist.ManualTasks))
	fmt.Fprintf(b, "Regulatorische Anforderungen: %s\n", orFallback(ist.RegulatoryRequirements))
	fmt.Fprintf(b, "Technische Herausforderungen: %s\n", orFallback(ist.TechnicalChallenges))
	fmt.Fprintf(b, "Kennzahlen (KPIs): %s\n", orFallback(ist.KPIs))

	if len(ist.Interfaces) > 0 {
		b.WriteString("Schnittstellen:\n")
		for _, iface := range ist.Interfaces {
			fmt.Fprintf(b, "- %s (%s): %s\n",
				orFallback(iface.SystemName), orFallback(iface.InterfaceType), orFallback(iface.Description))
		}
	}
	b.WriteString("\n")
}

func writeSollDefinition(b *strings.Builder, p *domain.Process) {
	b.WriteString("## Soll-Konzept\n")
	fmt.Fprintf(b, "Zielbeschreibung: %s\n", orFallback(p.SollDescription))
	fmt.Fprintf(b, "Ziele: %s\n", orFallback(p.SollAnswers.Goals))
	fmt.Fprintf(b, "Auswirkungen auf Abteilungen: %s\n", orFallback(p.SollAnswers.DepartmentImpact))
	fmt.Fprintf(b, "Neue Technologien: %s\n", orFallback(p.SollAnswers.NewTechnologies))

	if len(p.SollAnswers.DetailedInterfaces) > 0 {
		b.WriteString("Geplante Schnittstellen:\n")
		for _, iface := range p.SollAnswers.DetailedInterfaces {
			fmt.Fprintf(b, "- %s [%s, %s, Kritikalität: %s]: %s\n",
				orFallback(iface.Name), orFallback(iface.Category),
				orFallback(iface.Direction), orFallback(iface.Criticality),
				orFallback(iface.Purpose))
		}
	}
	b.WriteString("\n")
}

func writeFinancials(b *strings.Builder, p *domain.Process) {
	b.WriteString("## Kosten und Wirtschaftlichkeit\n")
	fmt.Fprintf(b, "Monatliche Ist-Kosten: %s\n", i18n.FormatEUR(finance.TotalMonthlyIstCost(p.IstCosts)))
	fmt.Fprintf(b, "Jährliche Ist-Kosten: %s\n", i18n.FormatEUR(finance.TotalAnnualIstCost(p.IstCosts)))
	fmt.Fprintf(b, "Geschätzter Umsetzungsaufwand: %s (%s)\n",
		i18n.FormatHours(finance.TotalEffortHours(p.EffortDetails)),
		i18n.FormatEUR(finance.TotalEffortCost(p.EffortDetails)))
	fmt.Fprintf(b, "Jährliche Einsparungen: %s\n", i18n.FormatEUR(finance.TotalAnnualSavings(p.ROIData)))

	if finance.PaybackDefined(p.ROIData) {
		fmt.Fprintf(b, "Amortisationsdauer: %s Monate\n", i18n.FormatNumber(finance.PaybackMonths(p.ROIData)))
	} else {
		b.WriteString("Amortisationsdauer: nicht ermittelbar\n")
	}
	b.WriteString("\n")
}

func buildLastenheftPrompt(p *domain.Process) string {
	var b strings.Builder

	b.WriteString("Erstelle ein vollständiges Lastenheft nach DIN 69901-5 für das folgende Digitalisierungsvorhaben. ")
	b.WriteString("Formatiere das Ergebnis als Markdown mit nummerierten Kapiteln.\n\n")
	writeHeader(&b, p)
	writeIstAnalysis(&b, p)
	writeSollDefinition(&b, p)
	writeFinancials(&b, p)

	if len(p.LastenheftUploadedFiles) > 0 {
		b.WriteString("Berücksichtige die folgenden bereitgestellten Dokumente:\n")
		for _, f := range p.LastenheftUploadedFiles {
			fmt.Fprintf(&b, "- %s (%s)\n", f.Name, f.URL)
		}
	}

	return b.String()
}

func buildProzessdokumentationPrompt(p *domain.Process) string {
	var b strings.Builder

	b.WriteString("Erstelle eine ausführliche Prozessdokumentation des Ist-Zustands für den folgenden Geschäftsprozess. ")
	b.WriteString("Beschreibe Ablauf, Beteiligte, Systeme und Schwachstellen als Fließtext mit Markdown-Überschriften.\n\n")
	writeHeader(&b, p)
	writeIstAnalysis(&b, p)
	writeFinancials(&b, p)

	return b.String()
}

func buildBPMNPrompt(p *domain.Process) string {
	var b strings.Builder

	b.WriteString("Analysiere den folgenden Geschäftsprozess und beschreibe seine BPMN-2.0-Struktur: ")
	b.WriteString("Pools, Lanes, Aktivitäten, Gateways und Ereignisse in Prozessreihenfolge. ")
	b.WriteString("Gib das Ergebnis als strukturierte Markdown-Liste aus.\n\n")
	writeHeader(&b, p)
	writeIstAnalysis(&b, p)
	writeSollDefinition(&b, p)

	return b.String()
}

func buildAppSpecPrompt(p *domain.Process) string {
	var b strings.Builder

	b.WriteString("Erstelle eine Umsetzungs-Spezifikation für einen No-Code-App-Builder, ")
	b.WriteString("die den folgenden Soll-Prozess als Anwendung beschreibt: Datenmodell, Ansichten, ")
	b.WriteString("Benutzerrollen und Automatisierungen. Formatiere als Markdown.\n\n")
	writeHeader(&b, p)
	writeSollDefinition(&b, p)

	ist := p.IstAnswers
	b.WriteString("## Kontext aus der Ist-Analyse\n")
	fmt.Fprintf(&b, "Verarbeitete Daten: %s\n", orFallback(ist.DataProcessed))
	fmt.Fprintf(&b, "Aktuelle Systeme: %s\n", orFallback(ist.CurrentSystems))
	fmt.Fprintf(&b, "Beteiligte Abteilungen: %s\n", orFallback(ist.InvolvedDepartments))

	return b.String()
}
