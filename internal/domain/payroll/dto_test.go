package payroll

import "testing"

func TestGeneratePayrollRequest_Validate(t *testing.T) {
	goodID := "b1c2d3e4-f5a6-4789-8abc-def012345678"
	badID := "not-a-uuid"

	tests := []struct {
		name    string
		req     GeneratePayrollRequest
		wantErr bool
	}{
		{name: "valid month", req: GeneratePayrollRequest{Month: "2026-04"}},
		{name: "valid month with employee", req: GeneratePayrollRequest{Month: "2026-04", EmployeeID: &goodID}},
		{name: "missing month", req: GeneratePayrollRequest{}, wantErr: true},
		{name: "month with day", req: GeneratePayrollRequest{Month: "2026-04-01"}, wantErr: true},
		{name: "month swapped", req: GeneratePayrollRequest{Month: "04-2026"}, wantErr: true},
		{name: "bad employee id", req: GeneratePayrollRequest{Month: "2026-04", EmployeeID: &badID}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPayrollFilter_Validate(t *testing.T) {
	good := "2026-04"
	bad := "April 2026"

	f := PayrollFilter{Month: &good}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if f.Page != 1 || f.Limit != 20 {
		t.Errorf("defaults = page %d limit %d, want 1/20", f.Page, f.Limit)
	}

	f = PayrollFilter{Month: &bad}
	if err := f.Validate(); err == nil {
		t.Error("Validate() = nil for malformed month, want error")
	}
}
