package linear

import (
	"context"
	"fmt"
)

func (c *Client) Labels(ctx context.Context, teamID string, limit int) ([]Label, error) {
	query := `query($filter: IssueLabelFilter, $first: Int) {
  issueLabels(filter: $filter, first: $first) {
    nodes { id name color }
  }
}`
	vars := map[string]any{}
	if limit > 0 {
		vars["first"] = limit
	}
	if teamID != "" {
		vars["filter"] = map[string]any{
			"team": map[string]any{"id": map[string]any{"eq": teamID}},
		}
	}
	var resp struct {
		IssueLabels struct {
			Nodes []Label `json:"nodes"`
		} `json:"issueLabels"`
	}
	if err := c.do(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	return resp.IssueLabels.Nodes, nil
}

func (c *Client) ResolveLabelIDs(ctx context.Context, labels []string) ([]string, error) {
	if len(labels) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(labels))
	for _, label := range labels {
		if label == "" {
			continue
		}
		if isUUID(label) {
			ids = append(ids, label)
			continue
		}
		query := `query($name: String!) {
  issueLabels(filter: { name: { eqIgnoreCase: $name } }) {
    nodes { id }
  }
}`
		var resp struct {
			IssueLabels struct {
				Nodes []struct {
					ID string `json:"id"`
				} `json:"nodes"`
			} `json:"issueLabels"`
		}
		if err := c.do(ctx, query, map[string]any{"name": label}, &resp); err != nil {
			return nil, err
		}
		if len(resp.IssueLabels.Nodes) == 0 {
			return nil, fmt.Errorf("label %q: %w", label, ErrNotFound)
		}
		ids = append(ids, resp.IssueLabels.Nodes[0].ID)
	}
	return ids, nil
}

func (c *Client) LabelCreate(ctx context.Context, input map[string]any) (Label, error) {
	query := `mutation($input: IssueLabelCreateInput!) {
  issueLabelCreate(input: $input) {
    issueLabel { id name color }
  }
}`
	var resp struct {
		IssueLabelCreate struct {
			IssueLabel *Label `json:"issueLabel"`
		} `json:"issueLabelCreate"`
	}
	if err := c.do(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return Label{}, err
	}
	if resp.IssueLabelCreate.IssueLabel == nil {
		return Label{}, ErrNotFound
	}
	return *resp.IssueLabelCreate.IssueLabel, nil
}

func (c *Client) LabelDelete(ctx context.Context, id string) error {
	query := `mutation($id: String!) {
  issueLabelDelete(id: $id) {
    success
  }
}`
	var resp struct {
		IssueLabelDelete *struct {
			Success bool `json:"success"`
		} `json:"issueLabelDelete"`
	}
	if err := c.do(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return err
	}
	if resp.IssueLabelDelete == nil {
		return ErrNotFound
	}
	if !resp.IssueLabelDelete.Success {
		return fmt.Errorf("label delete failed")
	}
	return nil
}
