package linear

import (
	"context"
	"fmt"
)

func (c *Client) Favorites(ctx context.Context, limit int) ([]Favorite, error) {
	query := `query($first: Int) {
  favorites(first: $first) {
    nodes {
      id
      type
      issue { identifier title }
      project { name }
    }
  }
}`
	vars := map[string]any{}
	if limit > 0 {
		vars["first"] = limit
	}
	var resp struct {
		Favorites struct {
			Nodes []struct {
				ID    string `json:"id"`
				Type  string `json:"type"`
				Issue *struct {
					Identifier string `json:"identifier"`
					Title      string `json:"title"`
				} `json:"issue"`
				Project *struct {
					Name string `json:"name"`
				} `json:"project"`
			} `json:"nodes"`
		} `json:"favorites"`
	}
	if err := c.do(ctx, query, vars, &resp); err != nil {
		return nil, err
	}

	favorites := make([]Favorite, 0, len(resp.Favorites.Nodes))
	for _, node := range resp.Favorites.Nodes {
		fav := Favorite{ID: node.ID, Type: node.Type}
		if node.Issue != nil {
			fav.Identifier = node.Issue.Identifier
			fav.Title = node.Issue.Title
		} else if node.Project != nil {
			fav.Title = node.Project.Name
		}
		favorites = append(favorites, fav)
	}
	return favorites, nil
}

func (c *Client) FavoriteCreate(ctx context.Context, issueID string) (Favorite, error) {
	query := `mutation($input: FavoriteCreateInput!) {
  favoriteCreate(input: $input) {
    favorite { id type issue { identifier title } }
  }
}`
	var resp struct {
		FavoriteCreate struct {
			Favorite *struct {
				ID    string `json:"id"`
				Type  string `json:"type"`
				Issue *struct {
					Identifier string `json:"identifier"`
					Title      string `json:"title"`
				} `json:"issue"`
			} `json:"favorite"`
		} `json:"favoriteCreate"`
	}
	input := map[string]any{"issueId": issueID}
	if err := c.do(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return Favorite{}, err
	}
	if resp.FavoriteCreate.Favorite == nil {
		return Favorite{}, ErrNotFound
	}
	fav := Favorite{ID: resp.FavoriteCreate.Favorite.ID, Type: resp.FavoriteCreate.Favorite.Type}
	if issue := resp.FavoriteCreate.Favorite.Issue; issue != nil {
		fav.Identifier = issue.Identifier
		fav.Title = issue.Title
	}
	return fav, nil
}

func (c *Client) FavoriteDelete(ctx context.Context, id string) error {
	query := `mutation($id: String!) {
  favoriteDelete(id: $id) {
    success
  }
}`
	var resp struct {
		FavoriteDelete *struct {
			Success bool `json:"success"`
		} `json:"favoriteDelete"`
	}
	if err := c.do(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return err
	}
	if resp.FavoriteDelete == nil {
		return ErrNotFound
	}
	if !resp.FavoriteDelete.Success {
		return fmt.Errorf("favorite delete failed")
	}
	return nil
}
