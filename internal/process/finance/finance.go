// Package finance holds the derived cost, effort and ROI calculations.
// All functions are pure and total: any combination of missing, zero or
// negative inputs yields a finite result. Validation of business-level
// plausibility happens in the handlers, not here.
package finance

import (
	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
)

// PersonnelMonthlyCost returns hours x rate.
func PersonnelMonthlyCost(c domain.IstCosts) float64 {
	return c.PersonnelHours.Float() * c.HourlyRate.Float()
}

// TotalMonthlyIstCost returns the full monthly running cost of the
// current process.
func TotalMonthlyIstCost(c domain.IstCosts) float64 {
	return PersonnelMonthlyCost(c) + c.SystemCosts.Float() + c.OtherCosts.Float()
}

// TotalAnnualIstCost returns the yearly running cost.
func TotalAnnualIstCost(c domain.IstCosts) float64 {
	return TotalMonthlyIstCost(c) * 12
}

// TotalEffortHours sums the four implementation phases.
func TotalEffortHours(e domain.EffortDetails) float64 {
	return e.ConceptionHours.Float() +
		e.DevelopmentHours.Float() +
		e.TestingHours.Float() +
		e.DeploymentHours.Float()
}

// TotalEffortCost returns effort hours priced at the estimation rate.
func TotalEffortCost(e domain.EffortDetails) float64 {
	return TotalEffortHours(e) * e.HourlyRateAtEstimation.Float()
}

// TotalAnnualSavings sums all yearly savings and revenue positions.
func TotalAnnualSavings(r domain.ROIData) float64 {
	return r.EfficiencySavings.Float() +
		r.ErrorReductionSavings.Float() +
		r.PersonnelSavings.Float() +
		r.AdditionalRevenue.Float()
}

// PaybackMonths returns investment / (annual savings / 12). With zero
// annual savings the payback is undefined; 0 is returned and callers
// display it as "nicht ermittelbar" instead of a number.
func PaybackMonths(r domain.ROIData) float64 {
	savings := TotalAnnualSavings(r)
	if savings == 0 {
		return 0
	}
	return r.InvestmentCost.Float() / (savings / 12)
}

// PaybackDefined reports whether PaybackMonths carries a meaningful
// value for the given ROI data.
func PaybackDefined(r domain.ROIData) bool {
	return TotalAnnualSavings(r) != 0
}

// RecalculatePayback stores the derived payback on the ROI sub-object.
// Call after any savings or investment field changes.
func RecalculatePayback(r *domain.ROIData) {
	r.PaybackMonths = domain.Amount(PaybackMonths(*r))
}
