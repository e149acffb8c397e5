package linear

import (
	"context"
	"errors"
)

var errCycleRef = errors.New("cycle must be an id or 'current'")

type cycleNode struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Number   int    `json:"number"`
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
	IsActive bool   `json:"isActive"`
}

func (n cycleNode) cycle() Cycle {
	return Cycle{
		ID:       n.ID,
		Name:     n.Name,
		Number:   n.Number,
		StartsAt: n.StartsAt,
		EndsAt:   n.EndsAt,
		IsActive: n.IsActive,
	}
}

func (c *Client) Cycles(ctx context.Context, teamID string, current bool, limit int, after string) (CyclePage, error) {
	query := `query($filter: CycleFilter, $first: Int, $after: String) {
  cycles(filter: $filter, first: $first, after: $after) {
    nodes { id name number startsAt endsAt isActive }
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

	filter := map[string]any{
		"team": map[string]any{"id": map[string]any{"eq": teamID}},
	}
	if current {
		filter["isActive"] = map[string]any{"eq": true}
	}
	vars["filter"] = filter

	var resp struct {
		Cycles struct {
			Nodes    []cycleNode `json:"nodes"`
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
		} `json:"cycles"`
	}
	if err := c.do(ctx, query, vars, &resp); err != nil {
		return CyclePage{}, err
	}

	page := CyclePage{
		Nodes:    make([]Cycle, 0, len(resp.Cycles.Nodes)),
		PageInfo: PageInfo{HasNextPage: resp.Cycles.PageInfo.HasNextPage, EndCursor: resp.Cycles.PageInfo.EndCursor},
	}
	for _, node := range resp.Cycles.Nodes {
		page.Nodes = append(page.Nodes, node.cycle())
	}
	return page, nil
}

func (c *Client) Cycle(ctx context.Context, id string) (Cycle, error) {
	query := `query($id: ID!) {
  cycle(id: $id) { id name number startsAt endsAt isActive }
}`
	var resp struct {
		Cycle *cycleNode `json:"cycle"`
	}
	if err := c.do(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return Cycle{}, err
	}
	if resp.Cycle == nil {
		return Cycle{}, ErrNotFound
	}
	return resp.Cycle.cycle(), nil
}

func (c *Client) ResolveCycleID(ctx context.Context, teamID, value string) (string, error) {
	if value == "current" {
		page, err := c.Cycles(ctx, teamID, true, 1, "")
		if err != nil {
			return "", err
		}
		if len(page.Nodes) == 0 {
			return "", ErrNotFound
		}
		return page.Nodes[0].ID, nil
	}
	if isUUID(value) {
		return value, nil
	}
	return "", errCycleRef
}
