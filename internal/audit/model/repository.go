package model

// Issue is a repository issue (pull requests excluded).
type Issue struct {
	Number    int      `json:"id"`
	Title     string   `json:"title"`
	State     string   `json:"state"`
	Assignee  *string  `json:"assignee"`
	Labels    []string `json:"labels"`
	CreatedAt string   `json:"created_at"`
}

// Branch is a repository branch and its head commit.
type Branch struct {
	Name      string `json:"name"`
	Protected bool   `json:"protected"`
	CommitSHA string `json:"commit"`
}

// Repository holds repository metadata.
type Repository struct {
	Name          string `json:"name"`
	Owner         string `json:"owner"`
	Description   string `json:"description"`
	Stars         int    `json:"stars"`
	Forks         int    `json:"forks"`
	DefaultBranch string `json:"default_branch"`
	License       string `json:"license"`
}
