package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/logistica-api/internal/domain/authz"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

func ptr(s string) *string { return &s }

func TestScoped_BaseVaciaNoAdmin(t *testing.T) {
	assert.False(t, authz.Scoped(authz.CanIssueAssets, "").Evaluate(officer).Allowed)
	assert.True(t, authz.Scoped(authz.CanIssueAssets, "").Evaluate(admin).Allowed)
}

func TestSelf(t *testing.T) {
	assert.True(t, authz.Self(ptr("u-p")).Evaluate(soldier).Allowed)
	assert.False(t, authz.Self(ptr("otro")).Evaluate(soldier).Allowed)
	assert.False(t, authz.Self(nil).Evaluate(soldier).Allowed)
}

func TestRoleIn(t *testing.T) {
	r := authz.RoleIn(entity.RoleAdmin, entity.RoleBaseCommander)
	assert.True(t, r.Evaluate(commander).Allowed)
	assert.False(t, r.Evaluate(officer).Allowed)
}

// ── regla de devolución: oficial de la base o el propio titular ──────────────

func returnRule(personnelBase string, personnelUser *string) authz.Rule {
	return authz.AnyOf(
		authz.Scoped(authz.CanReceiveReturns, personnelBase),
		authz.AllOf(authz.HasCapability(authz.CanRequestAssets), authz.Self(personnelUser)),
	)
}

func TestReturnRule(t *testing.T) {
	cases := []struct {
		name string
		id   authz.Identity
		base string
		user *string
		want bool
	}{
		{"oficial misma base", officer, "alpha", nil, true},
		{"oficial otra base", officer, "bravo", nil, false},
		{"admin", admin, "bravo", nil, true},
		{"titular", soldier, "alpha", ptr("u-p"), true},
		{"personal ajeno", soldier, "alpha", ptr("u-x"), false},
		{"comandante", commander, "alpha", ptr("u-bc"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := returnRule(tc.base, tc.user).Evaluate(tc.id)
			assert.Equal(t, tc.want, d.Allowed, d.Reason)
		})
	}
}

func TestAnyOf_UneMotivos(t *testing.T) {
	d := authz.AnyOf(authz.HasCapability(authz.CanManageUsers), authz.InBase("bravo")).Evaluate(officer)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, ";")
}
