// Package domain defines the Process record and its nested answer
// groups, cost sub-objects and generated-document lists.
package domain

import (
	"encoding/json"
	"time"
)

// IstAnswers holds the fixed Ist-analysis question set plus the
// interface and attachment lists captured with it.
type IstAnswers struct {
	ProcessSteps           string       `json:"process_steps"`
	ResponsiblePerson      string       `json:"responsible_person"`
	InvolvedDepartments    string       `json:"involved_departments"`
	CurrentSystems         string       `json:"current_systems"`
	DataProcessed          string       `json:"data_processed"`
	Bottlenecks            string       `json:"bottlenecks"`
	ManualTasks            string       `json:"manual_tasks"`
	RegulatoryRequirements string       `json:"regulatory_requirements"`
	TechnicalChallenges    string       `json:"technical_challenges"`
	KPIs                   string       `json:"kpis"`
	Interfaces             []Interface  `json:"interfaces"`
	Attachments            []Attachment `json:"attachments"`
}

// SollAnswers holds the fixed Soll-definition question set plus the
// detailed interface and attachment lists.
type SollAnswers struct {
	Goals              string              `json:"goals"`
	DepartmentImpact   string              `json:"department_impact"`
	NewTechnologies    string              `json:"new_technologies"`
	DetailedInterfaces []DetailedInterface `json:"detailed_interfaces"`
	Attachments        []Attachment        `json:"attachments"`
}

// IstCosts captures the monthly running cost of the current process.
type IstCosts struct {
	PersonnelHours Amount `json:"personnel_hours"`
	HourlyRate     Amount `json:"hourly_rate"`
	SystemCosts    Amount `json:"system_costs"`
	OtherCosts     Amount `json:"other_costs"`
}

// EffortDetails captures the implementation effort estimate by phase.
type EffortDetails struct {
	ConceptionHours        Amount `json:"conception_hours"`
	DevelopmentHours       Amount `json:"development_hours"`
	TestingHours           Amount `json:"testing_hours"`
	DeploymentHours        Amount `json:"deployment_hours"`
	HourlyRateAtEstimation Amount `json:"hourly_rate_at_estimation"`
}

// ROIData captures the savings estimate. PaybackMonths is derived and
// recomputed whenever a savings or investment field changes.
type ROIData struct {
	EfficiencySavings     Amount `json:"efficiency_savings"`
	ErrorReductionSavings Amount `json:"error_reduction_savings"`
	PersonnelSavings      Amount `json:"personnel_savings"`
	AdditionalRevenue     Amount `json:"additional_revenue"`
	InvestmentCost        Amount `json:"investment_cost"`
	PaybackMonths         Amount `json:"payback_months"`
}

// Process is the central record: one documented business process with
// its Ist and Soll state, cost/effort/ROI estimates and generated
// documents.
type Process struct {
	ID              string     `json:"id"`
	ProcessName     string     `json:"process_name"`
	CustomerID      *string    `json:"customer_id,omitempty"`
	Status          string     `json:"status,omitempty"`
	Erfasser        string     `json:"erfasser,omitempty"`
	Erfassungsdatum *time.Time `json:"erfassungsdatum,omitempty"`

	IstAnswers      IstAnswers    `json:"ist_answers"`
	SollDescription string        `json:"soll_description"`
	SollAnswers     SollAnswers   `json:"soll_answers"`
	IstCosts        IstCosts      `json:"ist_costs"`
	EffortDetails   EffortDetails `json:"effort_details"`
	ROIData         ROIData       `json:"roi_data"`

	SpecificationFiles      []SpecificationFile `json:"specification_files"`
	Base44Specifications    []AppSpecification  `json:"base44_specifications"`
	BPMNFiles               []BPMNFile          `json:"bpmn_files"`
	PresentationVideos      []PresentationAsset `json:"presentation_videos"`
	PresentationImages      []PresentationAsset `json:"presentation_images"`
	PresentationPowerpoints []PresentationAsset `json:"presentation_powerpoints"`
	LastenheftUploadedFiles []UploadedFile      `json:"lastenheft_uploaded_files"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the process via a JSON round trip.
// Used by the edit controller to snapshot the persisted record into an
// independent draft.
func (p *Process) Clone() *Process {
	data, err := json.Marshal(p)
	if err != nil {
		// Process contains only marshalable fields; this cannot happen
		// with a well-formed record.
		copied := *p
		return &copied
	}
	var out Process
	if err := json.Unmarshal(data, &out); err != nil {
		copied := *p
		return &copied
	}
	return &out
}

// NormalizeLists replaces nil list fields with empty lists and drops
// details variants that do not match their interface category. Called
// before every persist so stored records always carry well-formed
// arrays.
func (p *Process) NormalizeLists() {
	if p.IstAnswers.Interfaces == nil {
		p.IstAnswers.Interfaces = []Interface{}
	}
	if p.IstAnswers.Attachments == nil {
		p.IstAnswers.Attachments = []Attachment{}
	}
	if p.SollAnswers.DetailedInterfaces == nil {
		p.SollAnswers.DetailedInterfaces = []DetailedInterface{}
	}
	for i := range p.SollAnswers.DetailedInterfaces {
		p.SollAnswers.DetailedInterfaces[i].Normalize()
	}
	if p.SollAnswers.Attachments == nil {
		p.SollAnswers.Attachments = []Attachment{}
	}
	if p.SpecificationFiles == nil {
		p.SpecificationFiles = []SpecificationFile{}
	}
	if p.Base44Specifications == nil {
		p.Base44Specifications = []AppSpecification{}
	}
	if p.BPMNFiles == nil {
		p.BPMNFiles = []BPMNFile{}
	}
	if p.PresentationVideos == nil {
		p.PresentationVideos = []PresentationAsset{}
	}
	if p.PresentationImages == nil {
		p.PresentationImages = []PresentationAsset{}
	}
	if p.PresentationPowerpoints == nil {
		p.PresentationPowerpoints = []PresentationAsset{}
	}
	if p.LastenheftUploadedFiles == nil {
		p.LastenheftUploadedFiles = []UploadedFile{}
	}
}
