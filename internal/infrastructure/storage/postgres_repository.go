package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"swipepilot/internal/domain"
	"swipepilot/internal/ports"
)

const recordsTable = "swipe_records"

var recordColumns = []string{
	"id", "dating_account_id", "target_name", "target_age", "target_bio",
	"target_photos", "target_distance", "swipe_direction", "is_match",
	"ai_score", "decision_reason", "swiped_at",
}

// PostgresRepository persists swipe outcomes into Postgres. Records are
// append-only; outcomes are never updated once written.
type PostgresRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ ports.OutcomeRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveOutcome appends one outcome owned by the given account.
func (r *PostgresRepository) SaveOutcome(ctx context.Context, accountID int64, outcome domain.SwipeOutcome) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.insertBuilder(accountID, outcome).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert swipe record: %w", err)
	}
	return nil
}

// SaveOutcomes appends a batch atomically: either every outcome of the
// run lands or none does.
func (r *PostgresRepository) SaveOutcomes(ctx context.Context, accountID int64, outcomes []domain.SwipeOutcome) error {
	if r.db == nil || len(outcomes) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}

	for i, outcome := range outcomes {
		query, args, err := r.insertBuilder(accountID, outcome).ToSql()
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("build insert %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert swipe record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func (r *PostgresRepository) insertBuilder(accountID int64, outcome domain.SwipeOutcome) sq.InsertBuilder {
	var score any
	var reason any
	if outcome.Score != nil {
		score = outcome.Score.Score
		reason = outcome.Score.Reason
	}

	return r.sb.Insert(recordsTable).
		Columns(recordColumns[1:]...).
		Values(
			accountID,
			outcome.Profile.Name,
			outcome.Profile.Age,
			outcome.Profile.Bio,
			pq.Array(outcome.Profile.Photos),
			outcome.Profile.DistanceKm,
			string(outcome.Action),
			outcome.Matched,
			score,
			reason,
			outcome.ExecutedAt,
		)
}

// ListByAccount returns an account's records ordered by swipe time.
func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.StoredRecord, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := r.sb.Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"dating_account_id": accountID}).
		OrderBy("swiped_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query swipe records: %w", err)
	}
	defer rows.Close()

	var records []domain.StoredRecord
	for rows.Next() {
		var (
			rec    domain.StoredRecord
			photos pq.StringArray
			action string
			score  sql.NullFloat64
			reason sql.NullString
		)

		err := rows.Scan(
			&rec.ID,
			&rec.AccountID,
			&rec.Profile.Name,
			&rec.Profile.Age,
			&rec.Profile.Bio,
			&photos,
			&rec.Profile.DistanceKm,
			&action,
			&rec.Matched,
			&score,
			&reason,
			&rec.SwipedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan swipe record: %w", err)
		}

		rec.Profile.Photos = []string(photos)
		rec.Profile.CapturedAt = rec.SwipedAt
		rec.Action = domain.Action(action)
		if score.Valid {
			v := score.Float64
			rec.Score = &v
		}
		rec.Reason = reason.String
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate swipe records: %w", err)
	}
	return records, nil
}
