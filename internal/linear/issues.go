package linear

import (
	"context"
	"errors"
)

type issueNode struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Priority   int    `json:"priority"`
	UpdatedAt  string `json:"updatedAt"`
	State      struct {
		Name string `json:"name"`
	} `json:"state"`
	Assignee *struct {
		Name string `json:"name"`
	} `json:"assignee"`
	Team struct {
		Key string `json:"key"`
	} `json:"team"`
	Cycle *struct {
		Name string `json:"name"`
	} `json:"cycle"`
}

func (n issueNode) summary() IssueSummary {
	s := IssueSummary{
		ID:         n.ID,
		Identifier: n.Identifier,
		Title:      n.Title,
		URL:        n.URL,
		State:      n.State.Name,
		TeamKey:    n.Team.Key,
		Priority:   n.Priority,
		UpdatedAt:  n.UpdatedAt,
	}
	if n.Assignee != nil {
		s.Assignee = n.Assignee.Name
	}
	if n.Cycle != nil {
		s.Cycle = n.Cycle.Name
	}
	return s
}

const issueNodeFields = `
      id
      identifier
      title
      url
      priority
      updatedAt
      state { name }
      assignee { name }
      team { key }
      cycle { name }`

func (c *Client) Issues(ctx context.Context, filter IssueFilter, limit int, after string) (IssuePage, error) {
	query := `query($filter: IssueFilter, $first: Int, $after: String) {
  issues(filter: $filter, first: $first, after: $after) {
    nodes {` + issueNodeFields + `
    }
    pageInfo { hasNextPage endCursor }
  }
}`
	vars := map[string]any{}
	if limit > 0 {
		vars["first"] = limit
	}
	if after != "" {
		vars["after"] = after
	}
	if f := buildIssueFilter(filter); f != nil {
		vars["filter"] = f
	}

	var resp struct {
		Issues struct {
			Nodes    []issueNode `json:"nodes"`
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
		} `json:"issues"`
	}
	if err := c.do(ctx, query, vars, &resp); err != nil {
		return IssuePage{}, err
	}

	page := IssuePage{
		Nodes:    make([]IssueSummary, 0, len(resp.Issues.Nodes)),
		PageInfo: PageInfo{HasNextPage: resp.Issues.PageInfo.HasNextPage, EndCursor: resp.Issues.PageInfo.EndCursor},
	}
	for _, node := range resp.Issues.Nodes {
		page.Nodes = append(page.Nodes, node.summary())
	}
	return page, nil
}

func (c *Client) Issue(ctx context.Context, value string) (IssueDetail, error) {
	query := `query($id: String!) {
  issue(id: $id) {
    id
    identifier
    title
    url
    description
    priority
    branchName
    createdAt
    updatedAt
    team { id key }
    state { name type }
    assignee { name }
    cycle { name }
    project { name }
    labels { nodes { name } }
  }
}`
	var resp struct {
		Issue *struct {
			ID          string `json:"id"`
			Identifier  string `json:"identifier"`
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
			Priority    int    `json:"priority"`
			BranchName  string `json:"branchName"`
			CreatedAt   string `json:"createdAt"`
			UpdatedAt   string `json:"updatedAt"`
			Team        struct {
				ID  string `json:"id"`
				Key string `json:"key"`
			} `json:"team"`
			State struct {
				Name string `json:"name"`
				Type string `json:"type"`
			} `json:"state"`
			Assignee *struct {
				Name string `json:"name"`
			} `json:"assignee"`
			Cycle *struct {
				Name string `json:"name"`
			} `json:"cycle"`
			Project *struct {
				Name string `json:"name"`
			} `json:"project"`
			Labels struct {
				Nodes []struct {
					Name string `json:"name"`
				} `json:"nodes"`
			} `json:"labels"`
		} `json:"issue"`
	}
	if err := c.do(ctx, query, map[string]any{"id": value}, &resp); err != nil {
		return IssueDetail{}, err
	}
	if resp.Issue == nil {
		return IssueDetail{}, ErrNotFound
	}

	node := resp.Issue
	detail := IssueDetail{
		ID:          node.ID,
		Identifier:  node.Identifier,
		Title:       node.Title,
		URL:         node.URL,
		Description: node.Description,
		Priority:    node.Priority,
		BranchName:  node.BranchName,
		State:       node.State.Name,
		StateType:   node.State.Type,
		TeamID:      node.Team.ID,
		TeamKey:     node.Team.Key,
		CreatedAt:   node.CreatedAt,
		UpdatedAt:   node.UpdatedAt,
		Labels:      make([]string, 0, len(node.Labels.Nodes)),
	}
	if node.Assignee != nil {
		detail.Assignee = node.Assignee.Name
	}
	if node.Cycle != nil {
		detail.Cycle = node.Cycle.Name
	}
	if node.Project != nil {
		detail.Project = node.Project.Name
	}
	for _, label := range node.Labels.Nodes {
		detail.Labels = append(detail.Labels, label.Name)
	}
	return detail, nil
}

func (c *Client) ResolveIssueID(ctx context.Context, value string) (string, error) {
	query := `query($id: String!) {
  issue(id: $id) { id }
}`
	var resp struct {
		Issue *struct {
			ID string `json:"id"`
		} `json:"issue"`
	}
	if err := c.do(ctx, query, map[string]any{"id": value}, &resp); err != nil {
		return "", err
	}
	if resp.Issue == nil {
		return "", ErrNotFound
	}
	return resp.Issue.ID, nil
}

func (c *Client) IssueCreate(ctx context.Context, input map[string]any) (IssueSummary, error) {
	query := `mutation($input: IssueCreateInput!) {
  issueCreate(input: $input) {
    issue { id identifier title url }
  }
}`
	var resp struct {
		IssueCreate struct {
			Issue *IssueSummary `json:"issue"`
		} `json:"issueCreate"`
	}
	if err := c.do(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return IssueSummary{}, err
	}
	if resp.IssueCreate.Issue == nil {
		return IssueSummary{}, ErrNotFound
	}
	return *resp.IssueCreate.Issue, nil
}

func (c *Client) IssueUpdate(ctx context.Context, input map[string]any) (IssueSummary, error) {
	id, _ := input["id"].(string)
	if id == "" {
		return IssueSummary{}, errors.New("issue id is required")
	}
	trimmed := make(map[string]any, len(input))
	for key, value := range input {
		if key == "id" {
			continue
		}
		trimmed[key] = value
	}
	query := `mutation($id: String!, $input: IssueUpdateInput!) {
  issueUpdate(id: $id, input: $input) {
    issue { id identifier title url }
  }
}`
	var resp struct {
		IssueUpdate struct {
			Issue *IssueSummary `json:"issue"`
		} `json:"issueUpdate"`
	}
	if err := c.do(ctx, query, map[string]any{"id": id, "input": trimmed}, &resp); err != nil {
		return IssueSummary{}, err
	}
	if resp.IssueUpdate.Issue == nil {
		return IssueSummary{}, ErrNotFound
	}
	return *resp.IssueUpdate.Issue, nil
}

func (c *Client) IssueHistory(ctx context.Context, issueID string, limit int) ([]HistoryEntry, error) {
	query := `query($id: String!, $first: Int) {
  issue(id: $id) {
    history(first: $first) {
      nodes {
        id
        createdAt
        actor { name }
        fromState { name }
        toState { name }
      }
    }
  }
}`
	var resp struct {
		Issue *struct {
			History struct {
				Nodes []struct {
					ID        string `json:"id"`
					CreatedAt string `json:"createdAt"`
					Actor     *struct {
						Name string `json:"name"`
					} `json:"actor"`
					FromState *struct {
						Name string `json:"name"`
					} `json:"fromState"`
					ToState *struct {
						Name string `json:"name"`
					} `json:"toState"`
				} `json:"nodes"`
			} `json:"history"`
		} `json:"issue"`
	}
	vars := map[string]any{"id": issueID}
	if limit > 0 {
		vars["first"] = limit
	}
	if err := c.do(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, ErrNotFound
	}

	entries := make([]HistoryEntry, 0, len(resp.Issue.History.Nodes))
	for _, node := range resp.Issue.History.Nodes {
		entry := HistoryEntry{ID: node.ID, CreatedAt: node.CreatedAt}
		if node.Actor != nil {
			entry.Actor = node.Actor.Name
		}
		if node.FromState != nil {
			entry.FromState = node.FromState.Name
		}
		if node.ToState != nil {
			entry.ToState = node.ToState.Name
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func buildIssueFilter(filter IssueFilter) map[string]any {
	out := map[string]any{}
	if filter.TeamID != "" {
		out["team"] = map[string]any{"id": map[string]any{"eq": filter.TeamID}}
	}
	if filter.AssigneeID != "" {
		out["assignee"] = map[string]any{"id": map[string]any{"eq": filter.AssigneeID}}
	}
	if filter.StateID != "" {
		out["state"] = map[string]any{"id": map[string]any{"eq": filter.StateID}}
	}
	if filter.StateType != "" {
		out["state"] = map[string]any{"type": map[string]any{"eq": filter.StateType}}
	}
	if len(filter.LabelIDs) > 0 {
		out["labels"] = map[string]any{"id": map[string]any{"in": filter.LabelIDs}}
	}
	if filter.ProjectID != "" {
		out["project"] = map[string]any{"id": map[string]any{"eq": filter.ProjectID}}
	}
	if filter.CycleID != "" {
		out["cycle"] = map[string]any{"id": map[string]any{"eq": filter.CycleID}}
	}
	if filter.Search != "" {
		out["title"] = map[string]any{"containsIgnoreCase": filter.Search}
	}
	if filter.Priority != nil {
		out["priority"] = map[string]any{"eq": *filter.Priority}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
