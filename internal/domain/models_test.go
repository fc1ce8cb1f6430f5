package domain

import "testing"

func TestRequestStatusValid(t *testing.T) {
	valid := []RequestStatus{StatusPending, StatusInProgress, StatusComplete}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	invalid := []RequestStatus{"", "done", "COMPLETE", "in progress"}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestRequestStatusHuman(t *testing.T) {
	if got := StatusInProgress.Human(); got != "in progress" {
		t.Fatalf("Human() = %q, want %q", got, "in progress")
	}
	if got := StatusPending.Human(); got != "pending" {
		t.Fatalf("Human() = %q, want %q", got, "pending")
	}
}

func TestRequestPriorityValid(t *testing.T) {
	valid := []RequestPriority{PriorityUrgent, PriorityMedium, PriorityLow, PriorityEnhancement}
	for _, p := range valid {
		if !p.Valid() {
			t.Errorf("expected %q to be valid", p)
		}
	}
	invalid := []RequestPriority{"", "high", "critical"}
	for _, p := range invalid {
		if p.Valid() {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestDeclinedTechnicianIDs(t *testing.T) {
	r := &MaintenanceRequest{
		Declines: []RequestDecline{
			{TechnicianID: "t1"},
			{TechnicianID: "t2"},
		},
	}
	got := r.DeclinedTechnicianIDs()
	if len(got) != 2 || got[0] != "t1" || got[1] != "t2" {
		t.Fatalf("DeclinedTechnicianIDs() = %v", got)
	}
	if !r.HasDeclined("t1") || !r.HasDeclined("t2") {
		t.Fatalf("HasDeclined should report recorded technicians")
	}
	if r.HasDeclined("t3") {
		t.Fatalf("HasDeclined reported an unrecorded technician")
	}

	empty := &MaintenanceRequest{}
	if ids := empty.DeclinedTechnicianIDs(); ids == nil || len(ids) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", ids)
	}
}
