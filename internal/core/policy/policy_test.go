package policy

import (
	"testing"

	"quartermaster/internal/core/domain"
)

func uintPtr(v uint) *uint { return &v }

func TestCanAccessBase(t *testing.T) {
	tests := []struct {
		name   string
		actor  Actor
		target uint
		want   bool
	}{
		{"admin any base", Actor{Role: domain.RoleAdmin}, 3, true},
		{"commander own base", Actor{Role: domain.RoleBaseCommander, BaseID: uintPtr(3)}, 3, true},
		{"commander other base", Actor{Role: domain.RoleBaseCommander, BaseID: uintPtr(3)}, 4, false},
		{"officer own base", Actor{Role: domain.RoleLogisticsOfficer, BaseID: uintPtr(2)}, 2, true},
		{"officer other base", Actor{Role: domain.RoleLogisticsOfficer, BaseID: uintPtr(2)}, 5, false},
		{"officer without home base", Actor{Role: domain.RoleLogisticsOfficer}, 2, false},
		{"unknown role", Actor{Role: domain.Role("intruder"), BaseID: uintPtr(2)}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessBase(tt.actor, tt.target); got != tt.want {
				t.Errorf("CanAccessBase() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasRole(t *testing.T) {
	commander := Actor{Role: domain.RoleBaseCommander}
	if !HasRole(commander, domain.RoleAdmin, domain.RoleBaseCommander) {
		t.Error("commander should pass an admin-or-commander gate")
	}
	if HasRole(commander, domain.RoleAdmin) {
		t.Error("commander should not pass an admin-only gate")
	}
}

func TestCanAdvanceTransfer(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"admin", Actor{Role: domain.RoleAdmin}, true},
		{"source commander", Actor{Role: domain.RoleBaseCommander, BaseID: uintPtr(1)}, true},
		{"destination commander", Actor{Role: domain.RoleBaseCommander, BaseID: uintPtr(2)}, true},
		{"unrelated commander", Actor{Role: domain.RoleBaseCommander, BaseID: uintPtr(9)}, false},
		{"logistics officer", Actor{Role: domain.RoleLogisticsOfficer, BaseID: uintPtr(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAdvanceTransfer(tt.actor, 1, 2); got != tt.want {
				t.Errorf("CanAdvanceTransfer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanCancelTransfer(t *testing.T) {
	if !CanCancelTransfer(Actor{UserID: 5, Role: domain.RoleLogisticsOfficer}, 5) {
		t.Error("requester should be able to cancel")
	}
	if !CanCancelTransfer(Actor{UserID: 1, Role: domain.RoleAdmin}, 5) {
		t.Error("admin should be able to cancel")
	}
	if CanCancelTransfer(Actor{UserID: 2, Role: domain.RoleBaseCommander}, 5) {
		t.Error("unrelated commander should not be able to cancel")
	}
}
