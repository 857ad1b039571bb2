package roster

import "context"

// Repository stores the reusable team list. SaveTeams overwrites the full list;
// the name-keyed merge happens before it is called.
type Repository interface {
	LoadTeams(ctx context.Context) ([]Team, error)
	SaveTeams(ctx context.Context, teams []Team) error
}
