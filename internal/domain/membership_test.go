package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMembershipFilter_Classify(t *testing.T) {
	filter := NewMembershipFilter(NewLoginSet("alice"), NewLoginSet("bot1"))

	testCases := []struct {
		login    string
		expected Eligibility
	}{
		{login: "alice", expected: OrgMember},
		{login: "bot1", expected: Ignored},
		{login: "bob", expected: Eligible},
		{login: "carol", expected: Eligible},
	}

	for _, tc := range testCases {
		t.Run(tc.login, func(t *testing.T) {
			assert.Equal(t, tc.expected, filter.Classify(tc.login))
			assert.Equal(t, tc.expected == Eligible, filter.IsEligible(tc.login))
		})
	}
}

func TestMembershipFilter_MemberAlsoIgnored(t *testing.T) {
	filter := NewMembershipFilter(NewLoginSet("alice"), NewLoginSet("alice"))
	assert.Equal(t, OrgMember, filter.Classify("alice"))
	assert.False(t, filter.IsEligible("alice"))
}

func TestMembershipFilter_NilSets(t *testing.T) {
	filter := NewMembershipFilter(nil, nil)
	assert.True(t, filter.IsEligible("anyone"))
	assert.Equal(t, 0, filter.Members())
}

func TestEligibility_String(t *testing.T) {
	assert.Equal(t, "eligible", Eligible.String())
	assert.Equal(t, "org-member", OrgMember.String())
	assert.Equal(t, "ignored", Ignored.String())
}
