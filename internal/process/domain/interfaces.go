package domain

// Interface categories for detailed Soll interfaces
const (
	CategorySystemToSystem = "System-to-System"
	CategoryHumanToSystem  = "Human-to-System"
	CategoryHumanToHuman   = "Human-to-Human"
)

// Interface directions
const (
	DirectionInbound       = "Inbound"
	DirectionOutbound      = "Outbound"
	DirectionBidirectional = "Bidirectional"
)

// Interface criticality levels
const (
	CriticalityLow      = "Low"
	CriticalityMedium   = "Medium"
	CriticalityHigh     = "High"
	CriticalityVeryHigh = "Very High"
)

// Interface is a documented data/communication link recorded during the
// Ist analysis (business sense, not a programming interface).
type Interface struct {
	SystemName    string `json:"system_name"`
	InterfaceType string `json:"interface_type"`
	Description   string `json:"description"`
}

// DetailedInterface is the richer interface record captured during the
// Soll definition.
type DetailedInterface struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Category        string                `json:"category"`
	Purpose         string                `json:"purpose"`
	Description     string                `json:"description"`
	Direction       string                `json:"direction"`
	Trigger         string                `json:"trigger"`
	Frequency       string                `json:"frequency"`
	Criticality     string                `json:"criticality"`
	ErrorHandling   string                `json:"error_handling"`
	DataDescription string                `json:"data_description"`
	SchemaReference string                `json:"schema_reference"`
	Details         ImplementationDetails `json:"implementation_details"`
}

// ImplementationDetails is the category-shaped sub-object. Exactly one
// variant may be populated; the variant must match the interface
// category. Keeping the variants as separate typed fields removes the
// stale-field hazard the free-form original had on category changes.
type ImplementationDetails struct {
	SystemToSystem *SystemToSystemDetails `json:"system_to_system,omitempty"`
	HumanToSystem  *HumanToSystemDetails  `json:"human_to_system,omitempty"`
	HumanToHuman   *HumanToHumanDetails   `json:"human_to_human,omitempty"`
}

// IsEmpty reports whether no variant is populated.
func (d ImplementationDetails) IsEmpty() bool {
	return d.SystemToSystem == nil && d.HumanToSystem == nil && d.HumanToHuman == nil
}

// SystemToSystemDetails describes a machine integration.
type SystemToSystemDetails struct {
	Protocol       string `json:"protocol"`
	DataFormat     string `json:"data_format"`
	Authentication string `json:"authentication"`
	Endpoint       string `json:"endpoint"`
}

// HumanToSystemDetails describes a user-facing interaction.
type HumanToSystemDetails struct {
	UIType           string `json:"ui_type"`
	InputMethod      string `json:"input_method"`
	TrainingRequired string `json:"training_required"`
}

// HumanToHumanDetails describes a manual handover between roles.
type HumanToHumanDetails struct {
	Channel          string `json:"channel"`
	MeetingFrequency string `json:"meeting_frequency"`
	Documentation    string `json:"documentation"`
}

// SetCategory changes the interface category. A category change clears
// the implementation details because their shape is category-specific.
func (d *DetailedInterface) SetCategory(category string) {
	if d.Category == category {
		return
	}
	d.Category = category
	d.Details = ImplementationDetails{}
}

// Normalize drops any details variant that does not match the category.
func (d *DetailedInterface) Normalize() {
	switch d.Category {
	case CategorySystemToSystem:
		d.Details.HumanToSystem = nil
		d.Details.HumanToHuman = nil
	case CategoryHumanToSystem:
		d.Details.SystemToSystem = nil
		d.Details.HumanToHuman = nil
	case CategoryHumanToHuman:
		d.Details.SystemToSystem = nil
		d.Details.HumanToSystem = nil
	default:
		d.Details = ImplementationDetails{}
	}
}

// ValidCategory reports whether the category is one of the known values.
func ValidCategory(category string) bool {
	switch category {
	case CategorySystemToSystem, CategoryHumanToSystem, CategoryHumanToHuman:
		return true
	}
	return false
}
