package jobs

import (
	"context"
	"os"

	"github.com/google/go-github/v66/github"
	"github.com/xanzy/go-gitlab"
	"golang.org/x/oauth2"

	"github.com/chmouel/gogitui/internal/gitrepo"
	"github.com/chmouel/gogitui/internal/notify"
)

// HostTag is a release/tag name discovered on the hosting provider
// behind origin, enriching the locally-known tag set with anything
// pushed there but not yet fetched.
type HostTag struct {
	Name string
	SHA  string
}

// hostDetector is the subset of *gitrepo.Handle the job needs.
type hostDetector interface {
	DetectHost(ctx context.Context, remote string) (gitrepo.RemoteHost, string, error)
}

// FetchHostTags detects whether the remote points at GitHub or GitLab
// and lists that host's tags through the matching API client.
// Authentication tokens come from GITHUB_TOKEN/GITLAB_TOKEN so the
// anonymous, low-rate-limit case still works for public repos.
func FetchHostTags(ctx context.Context, h hostDetector, remote string) ([]HostTag, error) {
	host, slug, err := h.DetectHost(ctx, remote)
	if err != nil {
		return nil, err
	}
	switch host {
	case gitrepo.RemoteHostGitHub:
		return fetchGitHubTags(ctx, slug)
	case gitrepo.RemoteHostGitLab:
		return fetchGitLabTags(ctx, slug)
	default:
		return nil, nil
	}
}

func fetchGitHubTags(ctx context.Context, ownerRepo string) ([]HostTag, error) {
	owner, repo, ok := splitSlug(ownerRepo)
	if !ok {
		return nil, nil
	}
	client := github.NewClient(nil)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = github.NewClient(oauth2.NewClient(ctx, ts))
	}
	tags, _, err := client.Repositories.ListTags(ctx, owner, repo, &github.ListOptions{PerPage: 50})
	if err != nil {
		return nil, err
	}
	out := make([]HostTag, 0, len(tags))
	for _, t := range tags {
		ht := HostTag{Name: t.GetName()}
		if c := t.GetCommit(); c != nil {
			ht.SHA = c.GetSHA()
		}
		out = append(out, ht)
	}
	return out, nil
}

func fetchGitLabTags(ctx context.Context, ownerRepo string) ([]HostTag, error) {
	var opts []gitlab.ClientOptionFunc
	client, err := gitlab.NewClient(os.Getenv("GITLAB_TOKEN"), opts...)
	if err != nil {
		return nil, err
	}
	tags, _, err := client.Tags.ListTags(ownerRepo, &gitlab.ListTagsOptions{}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]HostTag, 0, len(tags))
	for _, t := range tags {
		ht := HostTag{Name: t.Name}
		if t.Commit != nil {
			ht.SHA = t.Commit.ID
		}
		out = append(out, ht)
	}
	return out, nil
}

func splitSlug(slug string) (owner, repo string, ok bool) {
	for i := len(slug) - 1; i >= 0; i-- {
		if slug[i] == '/' {
			return slug[:i], slug[i+1:], true
		}
	}
	return "", "", false
}

// NewHostTagsJob wires FetchHostTags into the SingleJob pattern keyed by
// remote name, reporting completion on sender as a GitNotification so
// the UI can re-read the enriched tag set.
func NewHostTagsJob(h hostDetector, sender notify.Sender) *SingleJob[string, []HostTag] {
	run := func(remote string) ([]HostTag, error) {
		return FetchHostTags(context.Background(), h, remote)
	}
	onDone := func(_ string, _ []HostTag, err error) {
		sender.Send(notify.GitNotification{Kind: notify.GitRemoteTags, Err: err})
	}
	return NewSingleJob(run, onDone)
}
