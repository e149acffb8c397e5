package linear

import "context"

func (c *Client) Initiatives(ctx context.Context, limit int) ([]Initiative, error) {
	query := `query($first: Int) {
  initiatives(first: $first) {
    nodes { id name description status targetDate }
  }
}`
	vars := map[string]any{}
	if limit > 0 {
		vars["first"] = limit
	}
	var resp struct {
		Initiatives struct {
			Nodes []initiativeNode `json:"nodes"`
		} `json:"initiatives"`
	}
	if err := c.do(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	initiatives := make([]Initiative, 0, len(resp.Initiatives.Nodes))
	for _, node := range resp.Initiatives.Nodes {
		initiatives = append(initiatives, node.initiative())
	}
	return initiatives, nil
}

func (c *Client) Initiative(ctx context.Context, id string) (Initiative, error) {
	query := `query($id: String!) {
  initiative(id: $id) { id name description status targetDate }
}`
	var resp struct {
		Initiative *initiativeNode `json:"initiative"`
	}
	if err := c.do(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return Initiative{}, err
	}
	if resp.Initiative == nil {
		return Initiative{}, ErrNotFound
	}
	return resp.Initiative.initiative(), nil
}

type initiativeNode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	TargetDate  string `json:"targetDate"`
}

func (n initiativeNode) initiative() Initiative {
	return Initiative{
		ID:          n.ID,
		Name:        n.Name,
		Description: n.Description,
		Status:      n.Status,
		TargetDate:  n.TargetDate,
	}
}

func (c *Client) Roadmaps(ctx context.Context, limit int) ([]Roadmap, error) {
	query := `query($first: Int) {
  roadmaps(first: $first) {
    nodes { id name description projects { nodes { name } } }
  }
}`
	vars := map[string]any{}
	if limit > 0 {
		vars["first"] = limit
	}
	var resp struct {
		Roadmaps struct {
			Nodes []roadmapNode `json:"nodes"`
		} `json:"roadmaps"`
	}
	if err := c.do(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	roadmaps := make([]Roadmap, 0, len(resp.Roadmaps.Nodes))
	for _, node := range resp.Roadmaps.Nodes {
		roadmaps = append(roadmaps, node.roadmap())
	}
	return roadmaps, nil
}

func (c *Client) Roadmap(ctx context.Context, id string) (Roadmap, error) {
	query := `query($id: String!) {
  roadmap(id: $id) { id name description projects { nodes { name } } }
}`
	var resp struct {
		Roadmap *roadmapNode `json:"roadmap"`
	}
	if err := c.do(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return Roadmap{}, err
	}
	if resp.Roadmap == nil {
		return Roadmap{}, ErrNotFound
	}
	return resp.Roadmap.roadmap(), nil
}

type roadmapNode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Projects    struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"projects"`
}

func (n roadmapNode) roadmap() Roadmap {
	out := Roadmap{ID: n.ID, Name: n.Name, Description: n.Description}
	for _, project := range n.Projects.Nodes {
		out.Projects = append(out.Projects, project.Name)
	}
	return out
}
