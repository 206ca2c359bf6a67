package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/V4T54L/cloudburst/internal/domain"
)

// pageSize caps every person query, matching the on-premise contract.
const pageSize = 30

const personColumns = `businessentityid, persontype, COALESCE(title, ''), firstname,
	COALESCE(middlename, ''), lastname, COALESCE(suffix, ''), modifieddate`

// PersonRepository implements domain.PersonRepository on the AdventureWorks
// person.person table.
type PersonRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPersonRepository creates a new PostgreSQL person repository.
func NewPersonRepository(db *sql.DB, logger *slog.Logger) *PersonRepository {
	return &PersonRepository{db: db, logger: logger.With("component", "postgres_person_repository")}
}

// SearchByFirstName matches people whose first name contains match, ignoring case.
// strpos is used instead of LIKE so that '%' and '_' in match are literal.
func (r *PersonRepository) SearchByFirstName(ctx context.Context, match string) ([]domain.Person, error) {
	query := `SELECT ` + personColumns + `
		FROM person.person
		WHERE strpos(lower(firstname), lower($1)) > 0
		ORDER BY businessentityid
		LIMIT $2`

	people, err := r.query(ctx, query, match, pageSize)
	if err != nil {
		return nil, fmt.Errorf("search by first name: %w", err)
	}
	return people, nil
}

// GetAll returns the first page of people.
func (r *PersonRepository) GetAll(ctx context.Context) ([]domain.Person, error) {
	query := `SELECT ` + personColumns + `
		FROM person.person
		ORDER BY businessentityid
		LIMIT $1`

	people, err := r.query(ctx, query, pageSize)
	if err != nil {
		return nil, fmt.Errorf("get all: %w", err)
	}
	return people, nil
}

func (r *PersonRepository) query(ctx context.Context, query string, args ...any) ([]domain.Person, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	people := make([]domain.Person, 0, pageSize)
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(
			&p.ID,
			&p.PersonType,
			&p.Title,
			&p.FirstName,
			&p.MiddleName,
			&p.LastName,
			&p.Suffix,
			&p.ModifiedDate,
		); err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("person query returned rows", "count", len(people))
	return people, nil
}
