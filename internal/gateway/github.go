// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/community-spotlight/internal/domain"
)

// DefaultPerPage is the largest page size the GitHub REST API accepts.
const DefaultPerPage = 100

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
// Listings never fail: a failed request ends the sequence early.
type Fetcher interface {
	ListMembers(ctx context.Context, org string) iter.Seq[domain.Actor]
	ListRepositories(ctx context.Context, org string) iter.Seq[domain.RepositoryRef]
	ListCommits(ctx context.Context, org string, repo domain.RepositoryRef, window domain.ReportingWindow) iter.Seq[domain.CommitRecord]
	ListPullRequests(ctx context.Context, org string, repo domain.RepositoryRef) iter.Seq[domain.PullRequestRef]
}

// Options configures a GitHubGateway.
type Options struct {
	Token string
	// APIBaseURL points the REST client at a GitHub Enterprise Server. Empty means github.com.
	APIBaseURL string
	// GraphQLURL overrides the GraphQL endpoint. Empty means github.com.
	GraphQLURL string
	PerPage    int
	// WaitRateLimit sleeps through secondary rate limits instead of ending the fetch.
	WaitRateLimit bool
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	perPage       int
	logger        *logrus.Logger
}

// viewerQuery resolves the account the token belongs to.
type viewerQuery struct {
	Viewer struct {
		Login githubv4.String
	}
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options, logger *logrus.Logger) (*GitHubGateway, error) {
	var base http.RoundTripper = http.DefaultTransport
	if opts.WaitRateLimit {
		rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
		}
		base = rateLimitWaiter
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   base,
			Source: ts,
		},
	}

	restClient := github.NewClient(httpClient)
	if opts.APIBaseURL != "" {
		var err error
		restClient, err = restClient.WithEnterpriseURLs(opts.APIBaseURL, opts.APIBaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", opts.APIBaseURL, err)
		}
	}
	graphqlClient := githubv4.NewClient(httpClient)
	if opts.GraphQLURL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(opts.GraphQLURL, httpClient)
	}

	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		perPage:       perPage,
		logger:        logger,
	}, nil
}

// Viewer returns the login of the account the token authenticates as.
func (g *GitHubGateway) Viewer(ctx context.Context) (string, error) {
	var q viewerQuery
	if err := g.graphqlClient.Query(ctx, &q, nil); err != nil {
		return "", fmt.Errorf("failed to execute GraphQL viewer query: %w", err)
	}
	return string(q.Viewer.Login), nil
}

// ListMembers lists every member of the organization.
func (g *GitHubGateway) ListMembers(ctx context.Context, org string) iter.Seq[domain.Actor] {
	users := pager[*github.User]{
		resource: "members " + org,
		perPage:  g.perPage,
		logger:   g.logger,
		fetch: func(ctx context.Context, lo github.ListOptions) ([]*github.User, *github.Response, error) {
			return g.restClient.Organizations.ListMembers(ctx, org, &github.ListMembersOptions{ListOptions: lo})
		},
	}
	return func(yield func(domain.Actor) bool) {
		for u := range users.all(ctx) {
			if u.GetLogin() == "" {
				continue
			}
			if !yield(domain.Actor{Login: u.GetLogin()}) {
				return
			}
		}
	}
}

// ListRepositories lists every repository owned by the organization.
func (g *GitHubGateway) ListRepositories(ctx context.Context, org string) iter.Seq[domain.RepositoryRef] {
	repos := pager[*github.Repository]{
		resource: "repos " + org,
		perPage:  g.perPage,
		logger:   g.logger,
		fetch: func(ctx context.Context, lo github.ListOptions) ([]*github.Repository, *github.Response, error) {
			return g.restClient.Repositories.ListByOrg(ctx, org, &github.RepositoryListByOrgOptions{ListOptions: lo})
		},
	}
	return func(yield func(domain.RepositoryRef) bool) {
		for r := range repos.all(ctx) {
			if r.GetName() == "" {
				continue
			}
			if !yield(domain.RepositoryRef{Name: r.GetName()}) {
				return
			}
		}
	}
}

// ListCommits lists the commits of a repository made inside the window.
// The window is applied by GitHub through the since/until parameters.
func (g *GitHubGateway) ListCommits(ctx context.Context, org string, repo domain.RepositoryRef, window domain.ReportingWindow) iter.Seq[domain.CommitRecord] {
	commits := pager[*github.RepositoryCommit]{
		resource: "commits " + org + "/" + repo.Name,
		perPage:  g.perPage,
		logger:   g.logger,
		fetch: func(ctx context.Context, lo github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
			return g.restClient.Repositories.ListCommits(ctx, org, repo.Name, &github.CommitsListOptions{
				Since:       window.Start,
				Until:       window.End,
				ListOptions: lo,
			})
		},
	}
	return func(yield func(domain.CommitRecord) bool) {
		for c := range commits.all(ctx) {
			if c == nil {
				continue
			}
			record := domain.CommitRecord{SHA: c.GetSHA(), Repo: repo}
			if login := c.GetAuthor().GetLogin(); login != "" {
				record.Author = &domain.Actor{Login: login}
			}
			if !yield(record) {
				return
			}
		}
	}
}

// ListPullRequests lists every pull request of a repository in any state.
// GitHub offers no author or date filter here, so callers filter locally.
func (g *GitHubGateway) ListPullRequests(ctx context.Context, org string, repo domain.RepositoryRef) iter.Seq[domain.PullRequestRef] {
	pulls := pager[*github.PullRequest]{
		resource: "pulls " + org + "/" + repo.Name,
		perPage:  g.perPage,
		logger:   g.logger,
		fetch: func(ctx context.Context, lo github.ListOptions) ([]*github.PullRequest, *github.Response, error) {
			return g.restClient.PullRequests.List(ctx, org, repo.Name, &github.PullRequestListOptions{
				State:       "all",
				ListOptions: lo,
			})
		},
	}
	return func(yield func(domain.PullRequestRef) bool) {
		for pr := range pulls.all(ctx) {
			if pr.GetHTMLURL() == "" || pr.GetUser().GetLogin() == "" {
				continue
			}
			ref := domain.PullRequestRef{
				Repo:      repo,
				Number:    pr.GetNumber(),
				URL:       pr.GetHTMLURL(),
				CreatedAt: pr.GetCreatedAt().Time,
				Author:    domain.Actor{Login: pr.GetUser().GetLogin()},
			}
			if !yield(ref) {
				return
			}
		}
	}
}
