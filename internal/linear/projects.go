package linear

import (
	"context"
	"fmt"
)

type projectNode struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	State       string  `json:"state"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	TargetDate  string  `json:"targetDate"`
	Progress    float64 `json:"progress"`
}

func (n projectNode) project() Project {
	return Project{
		ID:          n.ID,
		Name:        n.Name,
		State:       n.State,
		Description: n.Description,
		URL:         n.URL,
		TargetDate:  n.TargetDate,
		Progress:    int(n.Progress * 100),
	}
}

const projectNodeFields = ` id name state description url targetDate progress `

func (c *Client) Projects(ctx context.Context, includeArchived bool, limit int, after string) (ProjectPage, error) {
	query := `query($first: Int, $after: String, $includeArchived: Boolean) {
  projects(first: $first, after: $after, includeArchived: $includeArchived) {
    nodes {` + projectNodeFields + `}
    pageInfo { hasNextPage endCursor }
  }
}`
	vars := map[string]any{"includeArchived": includeArchived}
	if limit > 0 {
		vars["first"] = limit
	}
	if after != "" {
		vars["after"] = after
	}
	var resp struct {
		Projects struct {
			Nodes    []projectNode `json:"nodes"`
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
		} `json:"projects"`
	}
	if err := c.do(ctx, query, vars, &resp); err != nil {
		return ProjectPage{}, err
	}
	page := ProjectPage{
		Nodes:    make([]Project, 0, len(resp.Projects.Nodes)),
		PageInfo: PageInfo{HasNextPage: resp.Projects.PageInfo.HasNextPage, EndCursor: resp.Projects.PageInfo.EndCursor},
	}
	for _, node := range resp.Projects.Nodes {
		page.Nodes = append(page.Nodes, node.project())
	}
	return page, nil
}

func (c *Client) Project(ctx context.Context, value string) (Project, error) {
	if !isUUID(value) {
		id, err := c.ResolveProjectID(ctx, value)
		if err != nil {
			return Project{}, err
		}
		value = id
	}
	query := `query($id: String!) {
  project(id: $id) {` + projectNodeFields + `}
}`
	var resp struct {
		Project *projectNode `json:"project"`
	}
	if err := c.do(ctx, query, map[string]any{"id": value}, &resp); err != nil {
		return Project{}, err
	}
	if resp.Project == nil {
		return Project{}, ErrNotFound
	}
	return resp.Project.project(), nil
}

func (c *Client) ResolveProjectID(ctx context.Context, value string) (string, error) {
	if isUUID(value) {
		return value, nil
	}
	query := `query($name: String!) {
  projects(filter: { name: { eqIgnoreCase: $name } }) {
    nodes { id }
  }
}`
	var resp struct {
		Projects struct {
			Nodes []struct {
				ID string `json:"id"`
			} `json:"nodes"`
		} `json:"projects"`
	}
	if err := c.do(ctx, query, map[string]any{"name": value}, &resp); err != nil {
		return "", err
	}
	if len(resp.Projects.Nodes) == 0 {
		return "", ErrNotFound
	}
	return resp.Projects.Nodes[0].ID, nil
}

func (c *Client) ProjectCreate(ctx context.Context, input map[string]any) (Project, error) {
	query := `mutation($input: ProjectCreateInput!) {
  projectCreate(input: $input) {
    project {` + projectNodeFields + `}
  }
}`
	var resp struct {
		ProjectCreate struct {
			Project *projectNode `json:"project"`
		} `json:"projectCreate"`
	}
	if err := c.do(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return Project{}, err
	}
	if resp.ProjectCreate.Project == nil {
		return Project{}, ErrNotFound
	}
	return resp.ProjectCreate.Project.project(), nil
}

func (c *Client) ProjectUpdate(ctx context.Context, id string, input map[string]any) (Project, error) {
	query := `mutation($id: String!, $input: ProjectUpdateInput!) {
  projectUpdate(id: $id, input: $input) {
    project {` + projectNodeFields + `}
  }
}`
	var resp struct {
		ProjectUpdate struct {
			Project *projectNode `json:"project"`
		} `json:"projectUpdate"`
	}
	if err := c.do(ctx, query, map[string]any{"id": id, "input": input}, &resp); err != nil {
		return Project{}, err
	}
	if resp.ProjectUpdate.Project == nil {
		return Project{}, ErrNotFound
	}
	return resp.ProjectUpdate.Project.project(), nil
}

func (c *Client) ProjectDelete(ctx context.Context, id string) error {
	query := `mutation($id: String!) {
  projectDelete(id: $id) {
    success
  }
}`
	var resp struct {
		ProjectDelete *struct {
			Success bool `json:"success"`
		} `json:"projectDelete"`
	}
	if err := c.do(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return err
	}
	if resp.ProjectDelete == nil {
		return ErrNotFound
	}
	if !resp.ProjectDelete.Success {
		return fmt.Errorf("project delete failed")
	}
	return nil
}
