package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asbhive/directory/api/internal/entity"
)

// CompaniesRepository describes persistence operations for companies.
type CompaniesRepository interface {
	FetchAll(ctx context.Context) ([]entity.Company, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	FindByEmail(ctx context.Context, email string) (*entity.Company, error)
	Insert(ctx context.Context, company *entity.Company) error
	Update(ctx context.Context, id uuid.UUID, update entity.CompanyUpdate) (*entity.Company, error)
	UpdateNews(ctx context.Context, id uuid.UUID, digest entity.NewsDigest) error
	BulkInsert(ctx context.Context, companies []entity.Company) (BulkResult, error)
}

// ErrCompanyNotFound indicates there is no company row for the given lookup.
var ErrCompanyNotFound = errors.New("company not found")

// BulkResult summarises the number of rows inserted or updated.
type BulkResult struct {
	Inserted int
	Updated  int
	Total    int
}

// PGXCompaniesRepository implements CompaniesRepository using pgx.
type PGXCompaniesRepository struct {
	pool pgxPool
}

// NewPGXCompaniesRepository wires a pgx backed repository. A nil pool yields a
// repository whose every call fails with ErrStoreUnavailable.
func NewPGXCompaniesRepository(pool *pgxpool.Pool) *PGXCompaniesRepository {
	return &PGXCompaniesRepository{pool: poolOrNil(pool)}
}

const companyColumns = `
            id,
            company_name,
            email,
            sector,
            description,
            website_url,
            contact_info,
            social_enterprise_status,
            related_news_updates,
            news_last_updated,
            news_articles_count,
            program_participation,
            created_at`

// FetchAll returns every company, most recently created first.
func (r *PGXCompaniesRepository) FetchAll(ctx context.Context) ([]entity.Company, error) {
	if r.pool == nil {
		return nil, ErrStoreUnavailable
	}

	rows, err := r.pool.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC`)
	if err != nil {
		return nil, storeError("fetch companies", err)
	}
	defer rows.Close()

	return scanCompanies(rows)
}

// FindByID retrieves a single company.
func (r *PGXCompaniesRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	return r.findOne(ctx, "find company by id", `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// FindByEmail retrieves the company linked to an account email.
func (r *PGXCompaniesRepository) FindByEmail(ctx context.Context, email string) (*entity.Company, error) {
	return r.findOne(ctx, "find company by email", `SELECT `+companyColumns+` FROM companies WHERE LOWER(email) = LOWER($1)`, strings.TrimSpace(email))
}

func (r *PGXCompaniesRepository) findOne(ctx context.Context, op, query string, arg any) (*entity.Company, error) {
	if r.pool == nil {
		return nil, ErrStoreUnavailable
	}

	company, err := scanCompany(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, storeError(op, err)
	}
	return company, nil
}

// Insert stores a new company and fills in the generated id and creation time.
func (r *PGXCompaniesRepository) Insert(ctx context.Context, company *entity.Company) error {
	if company == nil {
		return fmt.Errorf("company payload is nil")
	}
	if r.pool == nil {
		return ErrStoreUnavailable
	}

	query := `
        INSERT INTO companies (
            company_name,
            email,
            sector,
            description,
            website_url,
            contact_info,
            social_enterprise_status,
            program_participation
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at
    `

	err := r.pool.QueryRow(ctx, query,
		company.Name,
		stringOrNil(company.Email),
		company.Sector,
		company.Description,
		stringOrNil(company.WebsiteURL),
		stringOrNil(company.ContactInfo),
		company.Status,
		stringOrNil(company.ProgramParticipation),
	).Scan(&company.ID, &company.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "companies_email_key") {
			return fmt.Errorf("%w: %v", ErrEmailDuplicate, err)
		}
		return storeError("insert company", err)
	}

	return nil
}

// Update patches the provided fields of a company and returns the stored record.
func (r *PGXCompaniesRepository) Update(ctx context.Context, id uuid.UUID, update entity.CompanyUpdate) (*entity.Company, error) {
	if update.Empty() {
		return r.FindByID(ctx, id)
	}
	if r.pool == nil {
		return nil, ErrStoreUnavailable
	}

	setClauses := make([]string, 0)
	args := make([]any, 0)
	idx := 1

	set := func(column string, value *string) {
		if value == nil {
			return
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, *value)
		idx++
	}
	set("company_name", update.Name)
	set("email", update.Email)
	set("sector", update.Sector)
	set("description", update.Description)
	set("website_url", update.WebsiteURL)
	set("contact_info", update.ContactInfo)
	set("social_enterprise_status", update.Status)
	set("program_participation", update.ProgramParticipation)

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE companies SET %s WHERE id = $%d RETURNING %s`, strings.Join(setClauses, ", "), idx, companyColumns)

	company, err := scanCompany(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		if isUniqueViolation(err, "companies_email_key") {
			return nil, fmt.Errorf("%w: %v", ErrEmailDuplicate, err)
		}
		return nil, storeError("update company", err)
	}
	return company, nil
}

// UpdateNews overwrites the news fields produced by the refresh batch.
func (r *PGXCompaniesRepository) UpdateNews(ctx context.Context, id uuid.UUID, digest entity.NewsDigest) error {
	if r.pool == nil {
		return ErrStoreUnavailable
	}

	cmd, err := r.pool.Exec(ctx, `
        UPDATE companies
        SET related_news_updates = $1, news_last_updated = $2, news_articles_count = $3
        WHERE id = $4
    `, digest.Summary, digest.UpdatedAt, digest.ArticleCount, id)
	if err != nil {
		return storeError("update company news", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

const bulkInsertSQL = `
        INSERT INTO companies (company_name, email, sector, description, website_url, contact_info, social_enterprise_status, program_participation)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        ON CONFLICT (email) DO UPDATE SET
            company_name = EXCLUDED.company_name,
            sector = EXCLUDED.sector,
            description = EXCLUDED.description,
            website_url = EXCLUDED.website_url,
            contact_info = EXCLUDED.contact_info,
            social_enterprise_status = EXCLUDED.social_enterprise_status,
            program_participation = EXCLUDED.program_participation
        RETURNING xmax = 0;
    `

// BulkInsert persists a batch of companies keyed by email, idempotently.
func (r *PGXCompaniesRepository) BulkInsert(ctx context.Context, companies []entity.Company) (BulkResult, error) {
	var result BulkResult
	if len(companies) == 0 {
		return result, nil
	}
	if r.pool == nil {
		return result, ErrStoreUnavailable
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return result, storeError("start bulk insert tx", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range companies {
		var inserted bool
		err := tx.QueryRow(ctx, bulkInsertSQL,
			c.Name,
			stringOrNil(c.Email),
			c.Sector,
			c.Description,
			stringOrNil(c.WebsiteURL),
			stringOrNil(c.ContactInfo),
			c.Status,
			stringOrNil(c.ProgramParticipation),
		).Scan(&inserted)
		if err != nil {
			return result, storeError(fmt.Sprintf("bulk insert company %q", c.Name), err)
		}

		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
		result.Total++
	}

	if err := tx.Commit(ctx); err != nil {
		return result, storeError("commit bulk insert tx", err)
	}

	return result, nil
}

// companyRow holds the nullable scan targets for one companies row.
type companyRow struct {
	company       entity.Company
	email         sql.NullString
	sector        sql.NullString
	description   sql.NullString
	website       sql.NullString
	contact       sql.NullString
	status        sql.NullString
	news          sql.NullString
	newsUpdatedAt sql.NullTime
	newsCount     sql.NullInt64
	programs      sql.NullString
}

func (r *companyRow) dest() []any {
	return []any{
		&r.company.ID,
		&r.company.Name,
		&r.email,
		&r.sector,
		&r.description,
		&r.website,
		&r.contact,
		&r.status,
		&r.news,
		&r.newsUpdatedAt,
		&r.newsCount,
		&r.programs,
		&r.company.CreatedAt,
	}
}

func (r *companyRow) entity() entity.Company {
	c := r.company
	c.Email = nullStringToPtr(r.email)
	c.Sector = r.sector.String
	c.Description = r.description.String
	c.WebsiteURL = nullStringToPtr(r.website)
	c.ContactInfo = nullStringToPtr(r.contact)
	c.Status = r.status.String
	c.NewsSummary = r.news.String
	if r.newsUpdatedAt.Valid {
		ts := r.newsUpdatedAt.Time
		c.NewsUpdatedAt = &ts
	}
	c.NewsArticleCount = int(r.newsCount.Int64)
	c.ProgramParticipation = nullStringToPtr(r.programs)
	return c
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var r companyRow
	if err := row.Scan(r.dest()...); err != nil {
		return nil, err
	}
	c := r.entity()
	return &c, nil
}

func scanCompanies(rows pgx.Rows) ([]entity.Company, error) {
	companies := make([]entity.Company, 0)
	for rows.Next() {
		var r companyRow
		if err := rows.Scan(r.dest()...); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, r.entity())
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate companies", err)
	}
	return companies, nil
}

func nullStringToPtr(value sql.NullString) *string {
	if value.Valid && value.String != "" {
		val := value.String
		return &val
	}
	return nil
}

func stringOrNil(value *string) any {
	if value == nil {
		return nil
	}
	if strings.TrimSpace(*value) == "" {
		return nil
	}
	return *value
}

