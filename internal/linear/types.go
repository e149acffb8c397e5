package linear

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Team struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

type WorkflowState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type IssueSummary struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	State      string `json:"state"`
	Assignee   string `json:"assignee"`
	TeamKey    string `json:"team_key"`
	Cycle      string `json:"cycle"`
	Priority   int    `json:"priority"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

type IssueDetail struct {
	ID          string    `json:"id"`
	Identifier  string    `json:"identifier"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	State       string    `json:"state"`
	StateType   string    `json:"state_type,omitempty"`
	Assignee    string    `json:"assignee"`
	TeamID      string    `json:"team_id"`
	TeamKey     string    `json:"team_key"`
	Cycle       string    `json:"cycle"`
	Project     string    `json:"project"`
	BranchName  string    `json:"branch_name,omitempty"`
	Labels      []string  `json:"labels"`
	Comments    []Comment `json:"comments,omitempty"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

type Comment struct {
	ID        string `json:"id"`
	Body      string `json:"body,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

type IssueRelation struct {
	ID             string `json:"id"`
	IssueID        string `json:"issue_id"`
	RelatedIssueID string `json:"related_issue_id"`
	Type           string `json:"type"`
}

type IssueRelationSet struct {
	Relations        []IssueRelation `json:"relations"`
	InverseRelations []IssueRelation `json:"inverse_relations"`
}

// HistoryEntry is one change record from an issue's audit trail.
type HistoryEntry struct {
	ID        string `json:"id"`
	Actor     string `json:"actor,omitempty"`
	FromState string `json:"from_state,omitempty"`
	ToState   string `json:"to_state,omitempty"`
	CreatedAt string `json:"created_at"`
}

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	State       string `json:"state,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	TargetDate  string `json:"target_date,omitempty"`
	Progress    int    `json:"progress"`
}

type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type Cycle struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Number   int    `json:"number"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
	IsActive bool   `json:"is_active"`
}

type Favorite struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Identifier string `json:"identifier,omitempty"`
	Title      string `json:"title"`
}

type Initiative struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	TargetDate  string `json:"target_date,omitempty"`
}

type Roadmap struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Projects    []string `json:"projects,omitempty"`
}

type IssueFilter struct {
	TeamID     string
	AssigneeID string
	StateID    string
	StateType  string
	LabelIDs   []string
	ProjectID  string
	CycleID    string
	Search     string
	Priority   *int
}

type IssuePage struct {
	Nodes    []IssueSummary `json:"nodes"`
	PageInfo PageInfo       `json:"page_info"`
}

type ProjectPage struct {
	Nodes    []Project `json:"nodes"`
	PageInfo PageInfo  `json:"page_info"`
}

type CyclePage struct {
	Nodes    []Cycle  `json:"nodes"`
	PageInfo PageInfo `json:"page_info"`
}

type PageInfo struct {
	HasNextPage bool   `json:"has_next_page"`
	EndCursor   string `json:"end_cursor"`
}
