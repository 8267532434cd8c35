package domain_test

import (
	"testing"

	"github.com/mentorlink/mentorlink/pkg/domain"
)

func TestTeamComplete(t *testing.T) {

	for name, testcase := range map[string]struct {
		roles    []domain.MentorRole
		complete bool
	}{
		"When every advisory role is covered, it should be complete": {
			roles:    []domain.MentorRole{domain.AS, domain.ACS, domain.ARD},
			complete: true,
		},
		"When roles are duplicated but all covered, it should be complete": {
			roles:    []domain.MentorRole{domain.ARD, domain.AS, domain.AS, domain.ACS},
			complete: true,
		},
		"When a role is missing, it should not be complete": {
			roles:    []domain.MentorRole{domain.AS, domain.ACS},
			complete: false,
		},
		"When no role is covered, it should not be complete": {
			roles:    []domain.MentorRole{},
			complete: false,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if actual := domain.TeamComplete(testcase.roles); actual != testcase.complete {
				t.Errorf("TeamComplete(%v) = %v, want %v", testcase.roles, actual, testcase.complete)
			}
		})
	}
}

func TestAsMentorRole(t *testing.T) {

	t.Run("When the expression is a known role, it should be accepted", func(t *testing.T) {
		for _, expr := range []string{"AS", "ACS", "ARD"} {
			role, err := domain.AsMentorRole(expr)
			if err != nil {
				t.Errorf("unexpected error for %s: %s", expr, err)
			}
			if role.String() != expr {
				t.Errorf("round trip broken: %s != %s", role, expr)
			}
		}
	})

	t.Run("When the expression is unknown, it should be rejected", func(t *testing.T) {
		for _, expr := range []string{"", "as", "CTO"} {
			if _, err := domain.AsMentorRole(expr); err == nil {
				t.Errorf("%q should be rejected", expr)
			}
		}
	})
}

func TestMentorRoleLabel(t *testing.T) {

	t.Run("When labelling roles, each should spell out", func(t *testing.T) {
		expected := map[domain.MentorRole]string{
			domain.AS:  "Admissions Strategist",
			domain.ACS: "Academic Content Specialist",
			domain.ARD: "Activity & Research Development",
		}
		for role, label := range expected {
			if actual := role.Label(); actual != label {
				t.Errorf("%s.Label() = %s, want %s", role, actual, label)
			}
		}
	})
}
