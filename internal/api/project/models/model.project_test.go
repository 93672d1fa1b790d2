package models

import "testing"

func TestAllProjectStatuses_ChuaDuCacTrangThai(t *testing.T) {
	want := []string{
		ProjectStatusUntouched,
		ProjectStatusStarted,
		ProjectStatusActive,
		ProjectStatusTesting,
		ProjectStatusOnHold,
		ProjectStatusCompleted,
		ProjectStatusCancelled,
		ProjectStatusPlanning,
		ProjectStatusMaintenance,
	}
	if len(AllProjectStatuses) != len(want) {
		t.Fatalf("AllProjectStatuses có %d trạng thái, muốn %d", len(AllProjectStatuses), len(want))
	}
	index := map[string]bool{}
	for _, s := range AllProjectStatuses {
		index[s] = true
	}
	for _, s := range want {
		if !index[s] {
			t.Errorf("AllProjectStatuses thiếu %q", s)
		}
	}
}
