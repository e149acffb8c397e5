package linear

import (
	"context"
	"fmt"
)

type relationNode struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Issue struct {
		ID string `json:"id"`
	} `json:"issue"`
	RelatedIssue struct {
		ID string `json:"id"`
	} `json:"relatedIssue"`
}

func (n relationNode) relation() IssueRelation {
	return IssueRelation{
		ID:             n.ID,
		IssueID:        n.Issue.ID,
		RelatedIssueID: n.RelatedIssue.ID,
		Type:           n.Type,
	}
}

func (c *Client) IssueRelations(ctx context.Context, issueID string, limit int) (IssueRelationSet, error) {
	query := `query($id: String!, $first: Int) {
  issue(id: $id) {
    relations(first: $first) { nodes { id type issue { id } relatedIssue { id } } }
    inverseRelations(first: $first) { nodes { id type issue { id } relatedIssue { id } } }
  }
}`
	var resp struct {
		Issue *struct {
			Relations *struct {
				Nodes []relationNode `json:"nodes"`
			} `json:"relations"`
			InverseRelations *struct {
				Nodes []relationNode `json:"nodes"`
			} `json:"inverseRelations"`
		} `json:"issue"`
	}

	vars := map[string]any{"id": issueID}
	if limit > 0 {
		vars["first"] = limit
	}
	if err := c.do(ctx, query, vars, &resp); err != nil {
		return IssueRelationSet{}, err
	}
	if resp.Issue == nil {
		return IssueRelationSet{}, ErrNotFound
	}

	result := IssueRelationSet{
		Relations:        []IssueRelation{},
		InverseRelations: []IssueRelation{},
	}
	if resp.Issue.Relations != nil {
		for _, node := range resp.Issue.Relations.Nodes {
			result.Relations = append(result.Relations, node.relation())
		}
	}
	if resp.Issue.InverseRelations != nil {
		for _, node := range resp.Issue.InverseRelations.Nodes {
			result.InverseRelations = append(result.InverseRelations, node.relation())
		}
	}
	return result, nil
}

func (c *Client) IssueRelationCreate(ctx context.Context, issueID, relatedIssueID, relationType string) (IssueRelation, error) {
	query := `mutation($input: IssueRelationCreateInput!) {
  issueRelationCreate(input: $input) {
    issueRelation { id type issue { id } relatedIssue { id } }
  }
}`
	var resp struct {
		IssueRelationCreate struct {
			IssueRelation *relationNode `json:"issueRelation"`
		} `json:"issueRelationCreate"`
	}
	input := map[string]any{
		"issueId":        issueID,
		"relatedIssueId": relatedIssueID,
		"type":           relationType,
	}
	if err := c.do(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return IssueRelation{}, err
	}
	if resp.IssueRelationCreate.IssueRelation == nil {
		return IssueRelation{}, ErrNotFound
	}
	return resp.IssueRelationCreate.IssueRelation.relation(), nil
}

func (c *Client) IssueRelationDelete(ctx context.Context, relationID string) error {
	query := `mutation($id: String!) {
  issueRelationDelete(id: $id) {
    success
  }
}`
	var resp struct {
		IssueRelationDelete *struct {
			Success bool `json:"success"`
		} `json:"issueRelationDelete"`
	}
	if err := c.do(ctx, query, map[string]any{"id": relationID}, &resp); err != nil {
		return err
	}
	if resp.IssueRelationDelete == nil {
		return ErrNotFound
	}
	if !resp.IssueRelationDelete.Success {
		return fmt.Errorf("relation delete failed")
	}
	return nil
}
