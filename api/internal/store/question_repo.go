package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// QuestionRepo is a write-mostly diagnostics log of generated questions. It is
// never read on the request path; its only consumers are the /stats command and
// whoever queries the table by hand when fallback tiers start climbing.
type QuestionRepo struct{ DB *sql.DB }

func NewQuestionRepo(db *sql.DB) *QuestionRepo { return &QuestionRepo{DB: db} }

// QuestionRecord is one generated question plus the normalization diagnostics
// that produced it.
type QuestionRecord struct {
	Category string
	Engine   string
	Model    string
	Mode     string
	Tier     string
	RawText  string
	OptionA  string
	OptionB  string
}

// EnsureSchema creates the log table when it does not exist yet.
func (r *QuestionRepo) EnsureSchema(ctx context.Context) error {
	const q = `
create table if not exists generated_questions (
  id         bigserial primary key,
  created_at timestamptz not null default now(),
  category   text not null,
  engine     text not null,
  model      text not null,
  mode       text not null,
  tier       text not null,
  raw_text   text not null,
  option_a   text not null,
  option_b   text not null
)`
	_, err := r.DB.ExecContext(ctx, q)
	return err
}

func (r *QuestionRepo) Insert(ctx context.Context, rec QuestionRecord) error {
	const q = `
insert into generated_questions(category, engine, model, mode, tier, raw_text, option_a, option_b)
values ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.DB.ExecContext(ctx, q,
		rec.Category, rec.Engine, rec.Model, rec.Mode, rec.Tier,
		rec.RawText, rec.OptionA, rec.OptionB,
	)
	return err
}

// TierCounts reports how often each normalization tier fired since the cutoff.
// A rising share of fallback tiers means the model stopped honoring the
// requested format.
func (r *QuestionRepo) TierCounts(ctx context.Context, since time.Duration) (map[string]int, error) {
	const q = `
select tier, count(*)
from generated_questions
where created_at >= $1
group by tier`
	rows, err := r.DB.QueryContext(ctx, q, time.Now().Add(-since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var tier string
		var n int
		if err := rows.Scan(&tier, &n); err != nil {
			return nil, err
		}
		out[tier] = n
	}
	return out, rows.Err()
}

// PurgeOlderThan deletes old log rows so the table does not grow unbounded.
func (r *QuestionRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be > 0")
	}
	cutoff := time.Now().Add(-olderThan)
	const q = `delete from generated_questions where created_at < $1`
	res, err := r.DB.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
