package models

import "testing"

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role       string
		capability Capability
		want       bool
	}{
		{RoleAuthor, CapSubmit, true},
		{RoleAuthor, CapReview, false},
		{RoleAuthor, CapDecide, false},
		{RoleReviewer, CapReview, true},
		{RoleReviewer, CapSubmit, false},
		{RoleReviewer, CapAssignReviewers, false},
		{RoleEditor, CapAssignReviewers, true},
		{RoleEditor, CapDecide, true},
		{RoleEditor, CapManageIssues, true},
		{RoleEditor, CapManageUsers, false},
		{RoleEditor, CapSubmit, false},
		{RoleAdmin, CapManageUsers, true},
		{RoleAdmin, CapWithdrawAny, true},
		{RoleAdmin, CapDecide, true},
	}

	for _, tc := range cases {
		user := &User{Role: tc.role}
		if got := user.Can(tc.capability); got != tc.want {
			t.Errorf("%s.Can(%s) = %v, want %v", tc.role, tc.capability, got, tc.want)
		}
	}
}

func TestUnknownRoleHasNoCapabilities(t *testing.T) {
	user := &User{Role: "superuser"}
	for _, capability := range []Capability{CapSubmit, CapReview, CapDecide, CapManageUsers} {
		if user.Can(capability) {
			t.Errorf("unknown role granted %s", capability)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAuthor, RoleReviewer, RoleEditor, RoleAdmin} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false", role)
		}
	}
	for _, role := range []string{"", "superuser", "Author"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true", role)
		}
	}
}
