// Package report renders a spotlight run as the announcement posted to the
// community channel and as the run summary shown on the workflow page.
package report

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/naka-gawa/community-spotlight/internal/domain"
)

const (
	// headerDateLayout renders dates like "May 25".
	headerDateLayout = "January 02"
	// searchDateLayout is the date format of GitHub search qualifiers.
	searchDateLayout = time.DateOnly

	noPullRequestsLine = "No pull requests found"
)

// Formatter renders reports for one organization.
type Formatter struct {
	// org is the organization login used in URLs.
	org string
	// orgName is the display name used in the announcement.
	orgName string
}

// NewFormatter creates a Formatter. An empty display name falls back to the login.
func NewFormatter(org, orgName string) *Formatter {
	if orgName == "" {
		orgName = org
	}
	return &Formatter{org: org, orgName: orgName}
}

// Announcement renders the Markdown message for the community channel.
func (f *Formatter) Announcement(r domain.SpotlightReport) string {
	var b strings.Builder
	b.WriteString("**Monthly Community Spotlight 👥🎉**\n\n")
	fmt.Fprintf(&b,
		"Here are the top community contributors on GitHub to all **%s** projects from **%s** to **%s** (organization members not included):\n\n",
		f.orgName, r.Window.Start.Format(headerDateLayout), r.Window.End.Format(headerDateLayout))

	for _, c := range r.Contributors {
		login := c.Actor.Login
		fmt.Fprintf(&b, "- [%s](https://github.com/%s) (%d commits)\n", login, login, c.Count)
		if len(c.PullRequests) == 0 {
			fmt.Fprintf(&b, "    - %s\n", noPullRequestsLine)
			continue
		}
		for _, group := range c.PullRequests {
			links := make([]string, 0, len(group.PullRequests))
			for _, pr := range group.PullRequests {
				links = append(links, fmt.Sprintf("[PR#%d](%s)", pr.Number, pr.URL))
			}
			fmt.Fprintf(&b, "    - [%s](%s) (%s)\n", group.Repo.Name, f.searchURL(group.Repo, c.Actor, r.Window), strings.Join(links, ", "))
		}
	}

	b.WriteString("\n\nThank you all for the amazing work over the last month! ❤️")
	return b.String()
}

// Summary renders the plain run summary for the workflow page.
func (f *Formatter) Summary(r domain.SpotlightReport) string {
	var b strings.Builder
	b.WriteString("**Community Spotlight Summary** 🟢\n")
	fmt.Fprintf(&b, "Date Range: %s to %s\n", r.Window.Start.Format(searchDateLayout), r.Window.End.Format(searchDateLayout))
	fmt.Fprintf(&b, "Repositories Scanned: %d\n", len(r.Repositories))
	fmt.Fprintf(&b, "Organization Members Excluded: %d\n", r.MembersExcluded)
	fmt.Fprintf(&b, "Eligible Contributors: %d (%d commits, mean %.2f, median %.2f)\n",
		r.Stats.Contributors, r.Stats.TotalCommits, r.Stats.Mean, r.Stats.Median)
	b.WriteString("Top Non-Organization Contributors:\n")

	for _, c := range r.Contributors {
		fmt.Fprintf(&b, "- %s: %d commits\n", c.Actor.Login, c.Count)
		for _, group := range c.PullRequests {
			fmt.Fprintf(&b, "  - %s: %d PRs\n", group.Repo.Name, len(group.PullRequests))
		}
	}

	b.WriteString("\nMessage prepared for Matrix channel.\n")
	return b.String()
}

// searchURL links to the repository's pull requests opened by the author during the window.
func (f *Formatter) searchURL(repo domain.RepositoryRef, author domain.Actor, w domain.ReportingWindow) string {
	return fmt.Sprintf("https://github.com/%s/%s/pulls?q=is%%3Apr+author%%3A%s+created%%3A%s..%s",
		f.org, repo.Name, url.QueryEscape(author.Login),
		w.Start.Format(searchDateLayout), w.End.Format(searchDateLayout))
}
