package linear

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) Me(ctx context.Context) (User, error) {
	query := `query {
  viewer {
    id
    name
    email
  }
}`
	var resp struct {
		Viewer *User `json:"viewer"`
	}
	if err := c.do(ctx, query, nil, &resp); err != nil {
		return User{}, err
	}
	if resp.Viewer == nil {
		return User{}, ErrNotFound
	}
	return *resp.Viewer, nil
}

func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	query := `query {
  teams {
    nodes { id key name }
  }
}`
	var resp struct {
		Teams struct {
			Nodes []Team `json:"nodes"`
		} `json:"teams"`
	}
	if err := c.do(ctx, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Teams.Nodes, nil
}

func (c *Client) Team(ctx context.Context, keyOrID string) (Team, error) {
	if isUUID(keyOrID) {
		return c.teamByID(ctx, keyOrID)
	}
	return c.teamByKey(ctx, keyOrID)
}

func (c *Client) ResolveTeamID(ctx context.Context, keyOrID string) (string, error) {
	team, err := c.Team(ctx, keyOrID)
	if err != nil {
		return "", err
	}
	return team.ID, nil
}

func (c *Client) teamByID(ctx context.Context, id string) (Team, error) {
	query := `query($id: ID!) {
  team(id: $id) { id key name }
}`
	var resp struct {
		Team *Team `json:"team"`
	}
	if err := c.do(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return Team{}, err
	}
	if resp.Team == nil {
		return Team{}, ErrNotFound
	}
	return *resp.Team, nil
}

func (c *Client) teamByKey(ctx context.Context, key string) (Team, error) {
	query := `query($key: String!) {
  teams(filter: { key: { eq: $key } }) {
    nodes { id key name }
  }
}`
	var resp struct {
		Teams struct {
			Nodes []Team `json:"nodes"`
		} `json:"teams"`
	}
	if err := c.do(ctx, query, map[string]any{"key": key}, &resp); err != nil {
		return Team{}, err
	}
	if len(resp.Teams.Nodes) == 0 {
		return Team{}, ErrNotFound
	}
	return resp.Teams.Nodes[0], nil
}

func (c *Client) WorkflowStates(ctx context.Context, teamID string) ([]WorkflowState, error) {
	query := `query($id: String!) {
  team(id: $id) {
    states {
      nodes { id name type }
    }
  }
}`
	var resp struct {
		Team *struct {
			States struct {
				Nodes []WorkflowState `json:"nodes"`
			} `json:"states"`
		} `json:"team"`
	}
	if err := c.do(ctx, query, map[string]any{"id": teamID}, &resp); err != nil {
		return nil, err
	}
	if resp.Team == nil {
		return nil, ErrNotFound
	}
	return resp.Team.States.Nodes, nil
}

func (c *Client) ResolveUserID(ctx context.Context, value string) (string, error) {
	if strings.EqualFold(value, "me") {
		user, err := c.Me(ctx)
		if err != nil {
			return "", err
		}
		return user.ID, nil
	}
	if isUUID(value) {
		return value, nil
	}
	if strings.Contains(value, "@") {
		query := `query($email: String!) {
  users(filter: { email: { eq: $email } }) {
    nodes { id }
  }
}`
		var resp struct {
			Users struct {
				Nodes []struct {
					ID string `json:"id"`
				} `json:"nodes"`
			} `json:"users"`
		}
		if err := c.do(ctx, query, map[string]any{"email": value}, &resp); err != nil {
			return "", err
		}
		if len(resp.Users.Nodes) == 0 {
			return "", ErrNotFound
		}
		return resp.Users.Nodes[0].ID, nil
	}
	return "", fmt.Errorf("user must be 'me', an id, or an email")
}

func (c *Client) ResolveStateID(ctx context.Context, teamID, value string) (string, error) {
	if isUUID(value) {
		return value, nil
	}
	states, err := c.WorkflowStates(ctx, teamID)
	if err != nil {
		return "", err
	}
	for _, state := range states {
		if strings.EqualFold(state.Name, value) {
			return state.ID, nil
		}
	}
	return "", ErrNotFound
}

// isUUID reports whether value looks like a Linear UUID rather than a
// human-facing key or name.
func isUUID(value string) bool {
	return len(value) == 36 && strings.Count(value, "-") == 4
}
