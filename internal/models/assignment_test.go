package models

import (
	"encoding/json"
	"testing"
)

func TestAssignmentCreate_Validate(t *testing.T) {
	tests := []struct {
		name       string
		assignment AssignmentCreate
		wantErr    string
	}{
		{
			name:       "valid assignment",
			assignment: AssignmentCreate{CarPlate: "ABC-123", EmployeeName: "Carlos", ServiceType: "full wash"},
		},
		{
			name:       "missing plate",
			assignment: AssignmentCreate{EmployeeName: "Carlos", ServiceType: "full wash"},
			wantErr:    "car_plate is required",
		},
		{
			name:       "missing employee name",
			assignment: AssignmentCreate{CarPlate: "ABC-123", ServiceType: "full wash"},
			wantErr:    "employee_name is required",
		},
		{
			name:       "missing service type",
			assignment: AssignmentCreate{CarPlate: "ABC-123", EmployeeName: "Carlos"},
			wantErr:    "service_type is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.assignment.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Validate() = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestAssignmentStatusValues(t *testing.T) {
	if StatusPending != "Pending" {
		t.Errorf("StatusPending = %q, want %q", StatusPending, "Pending")
	}
	if StatusCompleted != "Completed" {
		t.Errorf("StatusCompleted = %q, want %q", StatusCompleted, "Completed")
	}
	if PointsPerWash != 1 {
		t.Errorf("PointsPerWash = %d, want 1", PointsPerWash)
	}
}

func TestAssignmentMarshalUnmarshal(t *testing.T) {
	assignment := Assignment{
		CarPlate:     "ABC-123",
		EmployeeName: "Carlos",
		ServiceType:  "full wash",
		Status:       StatusPending,
	}
	data, err := json.Marshal(assignment)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var out Assignment
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if out.Status != StatusPending {
		t.Errorf("Status = %q, want %q", out.Status, StatusPending)
	}
}
