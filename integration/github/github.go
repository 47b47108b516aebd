// Package github talks to the github API to find roboshop releases.
package github

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/k0sproject/version"
)

// Repo is the github repository the releases are looked up from
const Repo = "nacternals/roboshop"

// Release describes a github release
type Release struct {
	URL        string `json:"html_url"`
	TagName    string `json:"tag_name"`
	PreRelease bool   `json:"prerelease"`
}

func (r *Release) String() string {
	return r.TagName
}

// IsNewer returns true when the release version is newer than the given version
func (r *Release) IsNewer(b string) bool {
	this, err := version.NewVersion(r.TagName)
	if err != nil {
		return false
	}
	other, err := version.NewVersion(b)
	if err != nil {
		return false
	}

	return this.GreaterThan(other)
}

// LatestRelease returns the semantically sorted latest release of the
// roboshop repository, optionally including prereleases
func LatestRelease(preok bool) (Release, error) {
	var releases []Release
	if err := unmarshalURLBody(fmt.Sprintf("https://api.github.com/repos/%s/releases?per_page=20&page=1", Repo), &releases); err != nil {
		return Release{}, err
	}

	var versions version.Collection
	for _, r := range releases {
		if r.PreRelease && !preok {
			continue
		}
		if v, err := version.NewVersion(r.TagName); err == nil {
			versions = append(versions, v)
		}
	}

	if len(versions) == 0 {
		return Release{}, fmt.Errorf("no releases found")
	}

	sort.Sort(versions)
	latest := versions[len(versions)-1].String()

	for _, r := range releases {
		if r.TagName == latest || r.TagName == "v"+latest {
			return r, nil
		}
	}

	return Release{}, fmt.Errorf("no release found for version %s", latest)
}

func unmarshalURLBody(url string, o interface{}) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}

	if resp.Body == nil {
		return fmt.Errorf("response body is nil")
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned http %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, o)
}
