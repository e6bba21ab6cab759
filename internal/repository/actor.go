package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lodgeworks/roomkeeper/internal/domain"
)

// actorColumns is the shared list of columns for profile queries.
var actorColumns = []string{
	"id", "full_name", "role", "push_token", "created_at", "updated_at",
}

// ActorRepository handles database operations for staff profiles.
type ActorRepository struct {
	pool *pgxpool.Pool
}

// NewActorRepository creates a new ActorRepository.
func NewActorRepository(pool *pgxpool.Pool) *ActorRepository {
	return &ActorRepository{pool: pool}
}

// scanActor scans a single row into an Actor struct.
func scanActor(row pgx.Row) (*domain.Actor, error) {
	var actor domain.Actor
	err := row.Scan(
		&actor.ID,
		&actor.FullName,
		&actor.Role,
		&actor.PushToken,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActorNotFound
		}
		return nil, fmt.Errorf("scan actor: %w", err)
	}
	return &actor, nil
}

// GetByID retrieves a profile by ID.
func (r *ActorRepository) GetByID(ctx context.Context, actorID string) (*domain.Actor, error) {
	query, args, err := psql.
		Select(actorColumns...).
		From("profiles").
		Where(sq.Eq{"id": actorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for actor: %w", err)
	}

	return scanActor(r.pool.QueryRow(ctx, query, args...))
}

// List retrieves all profiles, newest first.
func (r *ActorRepository) List(ctx context.Context) ([]*domain.Actor, error) {
	query, args, err := psql.
		Select(actorColumns...).
		From("profiles").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for actors: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query actors: %w", err)
	}
	defer rows.Close()

	var actors []*domain.Actor
	for rows.Next() {
		actor, err := scanActor(rows)
		if err != nil {
			return nil, err
		}
		actors = append(actors, actor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actor rows: %w", err)
	}
	return actors, nil
}

// UpdateRole changes a profile's role.
// Returns ErrActorNotFound if no profile matched the id.
func (r *ActorRepository) UpdateRole(ctx context.Context, actorID string, role domain.Role) (*domain.Actor, error) {
	query, args, err := psql.
		Update("profiles").
		Set("role", role).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": actorID}).
		Suffix("RETURNING " + joinColumns(actorColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build UpdateRole query for actor %s: %w", actorID, err)
	}

	return scanActor(r.pool.QueryRow(ctx, query, args...))
}

// UpdatePushToken stores or clears the push token for a profile.
func (r *ActorRepository) UpdatePushToken(ctx context.Context, actorID string, token *string) error {
	query, args, err := psql.
		Update("profiles").
		Set("push_token", token).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": actorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build UpdatePushToken query for actor %s: %w", actorID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update push token: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrActorNotFound
	}

	return nil
}

// PushTokensByRoles returns the push tokens of all profiles holding one of the
// given roles. Profiles without a registered token are skipped.
func (r *ActorRepository) PushTokensByRoles(ctx context.Context, roles []domain.Role) ([]string, error) {
	query, args, err := psql.
		Select("push_token").
		From("profiles").
		Where(sq.Eq{"role": roles}).
		Where(sq.NotEq{"push_token": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build PushTokensByRoles query: %w", err)
	}

	return r.queryTokens(ctx, query, args)
}

// PushTokensByIDs returns the push tokens of the given profiles.
// Profiles without a registered token are skipped.
func (r *ActorRepository) PushTokensByIDs(ctx context.Context, actorIDs []string) ([]string, error) {
	query, args, err := psql.
		Select("push_token").
		From("profiles").
		Where(sq.Eq{"id": actorIDs}).
		Where(sq.NotEq{"push_token": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build PushTokensByIDs query: %w", err)
	}

	return r.queryTokens(ctx, query, args)
}

func (r *ActorRepository) queryTokens(ctx context.Context, query string, args []interface{}) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query push tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan push token: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token rows: %w", err)
	}
	return tokens, nil
}
