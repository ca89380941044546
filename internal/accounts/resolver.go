package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/florin-dev/florin/internal/id"
	"github.com/florin-dev/florin/internal/model"
)

// ErrNameTaken is returned (possibly wrapped) by Store.CreateMany when
// another writer created an account with the same (userID, name) first.
// The resolver treats it as a lost race, not a failure.
var ErrNameTaken = errors.New("account name already exists")

// Store is the persistence surface the resolver needs. Both calls are
// assumed transactional at the granularity of one invocation, and the
// store enforces uniqueness on (UserID, Name).
type Store interface {
	FindByNames(ctx context.Context, userID string, names []string) ([]model.Account, error)
	CreateMany(ctx context.Context, accts []model.Account) ([]model.Account, error)
}

// Resolver maps bank-reported account names to Account rows, creating
// missing accounts in one batch.
type Resolver struct {
	store Store
}

// NewResolver creates a Resolver backed by store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve partitions names into existing and missing accounts for the
// user, bulk-creates the missing ones, and returns the union keyed by
// name. Duplicate names in the input resolve to the same Account;
// exactly one create is issued per distinct missing name.
//
// A uniqueness conflict during creation means a concurrent import won
// the race for at least one name. That is a normal outcome: the
// resolver re-fetches the winner's rows and retries the create for any
// names still missing.
func (r *Resolver) Resolve(ctx context.Context, userID string, names []string) (map[string]model.Account, error) {
	distinct := dedupe(names)
	if len(distinct) == 0 {
		return map[string]model.Account{}, nil
	}

	existing, err := r.store.FindByNames(ctx, userID, distinct)
	if err != nil {
		return nil, fmt.Errorf("finding accounts: %w", err)
	}

	resolved := make(map[string]model.Account, len(distinct))
	for _, a := range existing {
		resolved[a.Name] = a
	}

	var missing []model.Account
	now := time.Now()
	for _, name := range distinct {
		if _, ok := resolved[name]; ok {
			continue
		}
		missing = append(missing, model.Account{
			ID:        id.New(),
			UserID:    userID,
			Name:      name,
			Type:      model.AccountTypeChecking,
			Balance:   "0",
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if len(missing) == 0 {
		return resolved, nil
	}

	// A uniqueness conflict means a concurrent import won the race for
	// at least one name and the batch wrote nothing. Re-fetching picks
	// up the winners; names still missing after that lost nothing to
	// the race and get one more create.
	toCreate := missing
	for attempt := 0; attempt < 2 && len(toCreate) > 0; attempt++ {
		created, err := r.store.CreateMany(ctx, toCreate)
		if err == nil {
			for _, a := range created {
				resolved[a.Name] = a
			}
			break
		}
		if !errors.Is(err, ErrNameTaken) {
			return nil, fmt.Errorf("creating %d accounts: %w", len(toCreate), err)
		}
		if err := r.refetch(ctx, userID, distinct, resolved); err != nil {
			return nil, err
		}
		var remaining []model.Account
		for _, a := range toCreate {
			if _, ok := resolved[a.Name]; !ok {
				remaining = append(remaining, a)
			}
		}
		toCreate = remaining
	}

	for _, name := range distinct {
		if _, ok := resolved[name]; !ok {
			return nil, fmt.Errorf("account %q unresolved after create", name)
		}
	}
	return resolved, nil
}

func (r *Resolver) refetch(ctx context.Context, userID string, names []string, resolved map[string]model.Account) error {
	accts, err := r.store.FindByNames(ctx, userID, names)
	if err != nil {
		return fmt.Errorf("re-fetching accounts after conflict: %w", err)
	}
	for _, a := range accts {
		resolved[a.Name] = a
	}
	return nil
}

// dedupe returns names with duplicates and empties removed, first
// occurrence order preserved.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
