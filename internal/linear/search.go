package linear

import "context"

func (c *Client) SearchIssues(ctx context.Context, term string, limit int) ([]IssueSummary, error) {
	query := `query($term: String!, $first: Int) {
  searchIssues(term: $term, first: $first) {
    nodes {` + issueNodeFields + `
    }
  }
}`
	vars := map[string]any{"term": term}
	if limit > 0 {
		vars["first"] = limit
	}
	var resp struct {
		SearchIssues struct {
			Nodes []issueNode `json:"nodes"`
		} `json:"searchIssues"`
	}
	if err := c.do(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	issues := make([]IssueSummary, 0, len(resp.SearchIssues.Nodes))
	for _, node := range resp.SearchIssues.Nodes {
		issues = append(issues, node.summary())
	}
	return issues, nil
}

func (c *Client) SearchProjects(ctx context.Context, term string, limit int) ([]Project, error) {
	query := `query($term: String!, $first: Int) {
  searchProjects(term: $term, first: $first) {
    nodes {` + projectNodeFields + `}
  }
}`
	vars := map[string]any{"term": term}
	if limit > 0 {
		vars["first"] = limit
	}
	var resp struct {
		SearchProjects struct {
			Nodes []projectNode `json:"nodes"`
		} `json:"searchProjects"`
	}
	if err := c.do(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	projects := make([]Project, 0, len(resp.SearchProjects.Nodes))
	for _, node := range resp.SearchProjects.Nodes {
		projects = append(projects, node.project())
	}
	return projects, nil
}
