package payroll

import "testing"

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		in   CalcInputs
		want CalcResult
	}{
		{
			name: "no extras",
			in:   CalcInputs{BaseSalary: 288000, TotalWorkMinutes: 9600},
			want: CalcResult{GrossPay: 288000, NetPay: 288000},
		},
		{
			// 288000 / 9600 = 30 per minute; 60 OT minutes at 125%.
			name: "overtime",
			in:   CalcInputs{BaseSalary: 288000, TotalWorkMinutes: 9660, OvertimeMinutes: 60},
			want: CalcResult{OvertimePay: 2250, GrossPay: 290250, NetPay: 290250},
		},
		{
			// Late-night minutes only carry the 25% premium.
			name: "late night premium",
			in:   CalcInputs{BaseSalary: 288000, TotalWorkMinutes: 9600, LateNightMinutes: 120},
			want: CalcResult{LateNightPay: 900, GrossPay: 288900, NetPay: 288900},
		},
		{
			name: "allowance and deduction",
			in: CalcInputs{
				BaseSalary:      288000,
				AllowanceAmount: 15000,
				DeductionAmount: 42000,
			},
			want: CalcResult{GrossPay: 303000, NetPay: 261000},
		},
		{
			// 250000 / 9600 = 26.0416...; amounts round half away from zero.
			name: "fractional minute rate",
			in:   CalcInputs{BaseSalary: 250000, OvertimeMinutes: 30, LateNightMinutes: 45},
			want: CalcResult{OvertimePay: 977, LateNightPay: 293, GrossPay: 251270, NetPay: 251270},
		},
		{
			name: "deduction can exceed gross",
			in:   CalcInputs{BaseSalary: 100000, DeductionAmount: 120000},
			want: CalcResult{GrossPay: 100000, NetPay: -20000},
		},
		{
			name: "zero salary",
			in:   CalcInputs{OvertimeMinutes: 300},
			want: CalcResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.in)
			if got != tt.want {
				t.Errorf("Calculate(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
