package cli

import "github.com/alecthomas/kong"

// CLI is the full command tree. Aliases form a fixed one-to-one table;
// kong resolves canonical names and aliases identically and rejects
// anything else, so there is no fuzzy matching.
type CLI struct {
	GlobalOptions `embed:""`

	Version kong.VersionFlag `help:"Print version and exit"`

	Issues      IssuesCmd      `cmd:"" aliases:"i" help:"Manage issues"`
	Projects    ProjectsCmd    `cmd:"" aliases:"p" help:"Manage projects"`
	Git         GitCmd         `cmd:"" aliases:"g" help:"Git branch operations for issues"`
	Search      SearchCmd      `cmd:"" aliases:"s" help:"Search issues and projects"`
	Comments    CommentsCmd    `cmd:"" aliases:"cm" help:"Manage issue comments"`
	Uploads     UploadsCmd     `cmd:"" aliases:"up" help:"Fetch Linear-hosted uploads"`
	Bulk        BulkCmd        `cmd:"" aliases:"b" help:"Update multiple issues at once"`
	Labels      LabelsCmd      `cmd:"" aliases:"l" help:"Manage labels"`
	Teams       TeamsCmd       `cmd:"" aliases:"t" help:"List and view teams"`
	Cycles      CyclesCmd      `cmd:"" aliases:"c" help:"View sprint cycles"`
	Relations   RelationsCmd   `cmd:"" aliases:"rel" help:"Manage issue relations"`
	Export      ExportCmd      `cmd:"" aliases:"ex" help:"Export issues to CSV or Markdown"`
	Favorites   FavoritesCmd   `cmd:"" aliases:"fav" help:"Manage favorites"`
	History     HistoryCmd     `cmd:"" aliases:"hist" help:"View issue history"`
	Initiatives InitiativesCmd `cmd:"" aliases:"init" help:"View initiatives"`
	Metrics     MetricsCmd     `cmd:"" aliases:"met" help:"Team delivery metrics"`
	Roadmaps    RoadmapsCmd    `cmd:"" aliases:"rm" help:"View roadmaps"`
	Triage      TriageCmd      `cmd:"" aliases:"tr" help:"Work the triage queue"`
	Watch       WatchCmd       `cmd:"" aliases:"w" help:"Watch an issue for changes"`
	Sync        SyncCmd        `cmd:"" aliases:"sy" help:"Compare local folders with projects"`
	Interactive InteractiveCmd `cmd:"" aliases:"ui" help:"Read commands from a prompt"`
	Config      ConfigCmd      `cmd:"" help:"Configure CLI settings"`
	Auth        AuthCmd        `cmd:"" help:"Manage authentication"`
	Doctor      DoctorCmd      `cmd:"" help:"Diagnose configuration problems"`
	Cache       CacheCmd       `cmd:"" help:"Manage local cached data"`
}
