package domain

// Eligibility is the result of classifying a login against the membership filter.
type Eligibility int

const (
	Eligible Eligibility = iota
	OrgMember
	Ignored
)

func (e Eligibility) String() string {
	switch e {
	case OrgMember:
		return "org-member"
	case Ignored:
		return "ignored"
	default:
		return "eligible"
	}
}

// LoginSet is a set of GitHub logins.
type LoginSet map[string]struct{}

// NewLoginSet builds a LoginSet from the given logins.
func NewLoginSet(logins ...string) LoginSet {
	s := make(LoginSet, len(logins))
	for _, l := range logins {
		s.Add(l)
	}
	return s
}

func (s LoginSet) Add(login string) {
	s[login] = struct{}{}
}

func (s LoginSet) Contains(login string) bool {
	_, ok := s[login]
	return ok
}

func (s LoginSet) Len() int {
	return len(s)
}

// MembershipFilter separates organization members and ignored accounts from
// the community contributors the report is about.
type MembershipFilter struct {
	members LoginSet
	ignored LoginSet
}

// NewMembershipFilter creates a filter. Nil sets are treated as empty.
func NewMembershipFilter(members, ignored LoginSet) *MembershipFilter {
	if members == nil {
		members = LoginSet{}
	}
	if ignored == nil {
		ignored = LoginSet{}
	}
	return &MembershipFilter{members: members, ignored: ignored}
}

// Classify returns OrgMember, Ignored or Eligible for the login.
func (f *MembershipFilter) Classify(login string) Eligibility {
	switch {
	case f.members.Contains(login):
		return OrgMember
	case f.ignored.Contains(login):
		return Ignored
	default:
		return Eligible
	}
}

// IsEligible reports whether the login is neither a member nor ignored.
func (f *MembershipFilter) IsEligible(login string) bool {
	return f.Classify(login) == Eligible
}

// Members returns the number of organization members known to the filter.
func (f *MembershipFilter) Members() int {
	return f.members.Len()
}
