package payroll

import "math"

// standardMonthlyMinutes is the nominal paid time a month of base salary
// covers (20 days of 8 hours).
const standardMonthlyMinutes = 20 * 480

const (
	// overtimeRate pays overtime minutes at 125% of the minute rate.
	overtimeRate = 1.25
	// lateNightRate is the extra 25% premium on late-night minutes; their
	// base pay is already covered by the salary or the overtime pay.
	lateNightRate = 0.25
)

// CalcInputs are the per-employee, per-month payroll inputs.
type CalcInputs struct {
	BaseSalary      int
	AllowanceAmount int
	DeductionAmount int

	TotalWorkMinutes int
	OvertimeMinutes  int
	LateNightMinutes int
}

// CalcResult is the computed pay breakdown, in the smallest currency unit.
type CalcResult struct {
	OvertimePay  int
	LateNightPay int
	GrossPay     int
	NetPay       int
}

// Calculate derives the month's pay from the attendance totals. The minute
// rate comes from the base salary over the nominal monthly minutes; each
// derived amount rounds half away from zero independently.
func Calculate(in CalcInputs) CalcResult {
	minuteRate := float64(in.BaseSalary) / standardMonthlyMinutes

	overtimePay := int(math.Round(minuteRate * overtimeRate * float64(in.OvertimeMinutes)))
	lateNightPay := int(math.Round(minuteRate * lateNightRate * float64(in.LateNightMinutes)))

	gross := in.BaseSalary + overtimePay + lateNightPay + in.AllowanceAmount
	net := gross - in.DeductionAmount

	return CalcResult{
		OvertimePay:  overtimePay,
		LateNightPay: lateNightPay,
		GrossPay:     gross,
		NetPay:       net,
	}
}
