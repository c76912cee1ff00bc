package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/asbhive/directory/api/internal/auth"
	"github.com/asbhive/directory/api/internal/dto"
	"github.com/asbhive/directory/api/internal/entity"
	"github.com/asbhive/directory/api/internal/repository"
)

// CompaniesService exposes read/write operations for the company directory.
type CompaniesService struct {
	repo      repository.CompaniesRepository
	validator *ProfileValidator
	log       zerolog.Logger
}

// CSVValidationError indicates that the provided CSV payload is invalid.
type CSVValidationError struct {
	Message string
}

// Error implements the error interface.
func (e CSVValidationError) Error() string {
	return e.Message
}

// UploadSummary reports how many rows were inserted or updated during import.
type UploadSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}

// NewCompaniesService creates a new instance of CompaniesService.
func NewCompaniesService(repo repository.CompaniesRepository, validator *ProfileValidator, log zerolog.Logger) *CompaniesService {
	if validator == nil {
		validator = NewProfileValidator(defaultPhoneRegion)
	}
	return &CompaniesService{repo: repo, validator: validator, log: log}
}

// ListCompanies returns every record. When the store cannot be reached the seed set is
// returned instead and fromSeed is true.
func (s *CompaniesService) ListCompanies(ctx context.Context) ([]entity.Company, bool, error) {
	companies, err := s.repo.FetchAll(ctx)
	if err == nil {
		return companies, false, nil
	}
	if errors.Is(err, repository.ErrStoreUnavailable) {
		s.log.Warn().Err(err).Msg("record store unavailable, serving seed companies")
		return repository.SampleCompanies(), true, nil
	}
	return nil, false, err
}

// GetCompany returns a single record, falling back to the seed set when the store is down.
func (s *CompaniesService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.repo.FindByID(ctx, id)
	if err == nil {
		return company, nil
	}
	if !errors.Is(err, repository.ErrStoreUnavailable) {
		return nil, err
	}
	s.log.Warn().Err(err).Str("company_id", id.String()).Msg("record store unavailable, looking up seed company")
	for _, seed := range repository.SampleCompanies() {
		if seed.ID == id {
			found := seed
			return &found, nil
		}
	}
	return nil, repository.ErrCompanyNotFound
}

// CompaniesByIDs resolves the given ids against the full listing, keeping the request order.
// Unknown ids are skipped.
func (s *CompaniesService) CompaniesByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Company, bool, error) {
	all, fromSeed, err := s.ListCompanies(ctx)
	if err != nil {
		return nil, false, err
	}
	byID := make(map[uuid.UUID]entity.Company, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}
	selected := make([]entity.Company, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if c, ok := byID[id]; ok {
			selected = append(selected, c)
		}
	}
	return selected, fromSeed, nil
}

// UpdateProfile applies a validated edit to the company owned by the session's email.
func (s *CompaniesService) UpdateProfile(ctx context.Context, session *auth.Session, req dto.ProfileUpdateRequest) (*entity.Company, error) {
	if session == nil {
		return nil, ErrSessionInactive
	}
	company, err := s.repo.FindByEmail(ctx, session.Email)
	if err != nil {
		return nil, err
	}

	update, err := s.validator.CleanProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	if update.Empty() {
		return company, nil
	}
	return s.repo.Update(ctx, company.ID, update)
}

// ImportCompaniesCSV ingests company records from a CSV reader. Rows are upserted by email.
func (s *CompaniesService) ImportCompaniesCSV(ctx context.Context, r io.Reader) (UploadSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return UploadSummary{}, CSVValidationError{Message: "csv file is empty"}
		}
		return UploadSummary{}, fmt.Errorf("read csv header: %w", err)
	}

	indexMap, valErr := buildHeaderIndex(header)
	if valErr != nil {
		return UploadSummary{}, valErr
	}

	var (
		records []entity.Company
		rowNum  = 1
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return UploadSummary{}, fmt.Errorf("read csv row: %w", err)
		}

		rowNum++

		name := column(row, indexMap, "company_name")
		emailRaw := column(row, indexMap, "email")
		if name == "" || emailRaw == "" {
			continue
		}

		email, emailErr := NormalizeEmail(emailRaw)
		if emailErr != nil {
			return UploadSummary{}, CSVValidationError{Message: fmt.Sprintf("invalid email value on row %d", rowNum)}
		}

		company := entity.Company{
			Name:                 name,
			Email:                &email,
			Sector:               column(row, indexMap, "sector"),
			Description:          column(row, indexMap, "description"),
			ContactInfo:          normalizeString(s.validator.NormalizeContactInfo(column(row, indexMap, "contact_info"))),
			Status:               column(row, indexMap, "social_enterprise_status"),
			ProgramParticipation: normalizeString(column(row, indexMap, "program_participation")),
		}
		if website := column(row, indexMap, "website_url"); website != "" {
			cleaned, webErr := s.validator.CleanWebsite(website)
			if webErr != nil {
				return UploadSummary{}, CSVValidationError{Message: fmt.Sprintf("invalid website_url value on row %d", rowNum)}
			}
			company.WebsiteURL = normalizeString(cleaned)
		}
		records = append(records, company)
	}

	if len(records) == 0 {
		return UploadSummary{}, CSVValidationError{Message: "csv file contains no usable rows"}
	}

	result, err := s.repo.BulkInsert(ctx, records)
	if err != nil {
		return UploadSummary{}, err
	}

	s.log.Info().Int("inserted", result.Inserted).Int("updated", result.Updated).Msg("companies imported")

	return UploadSummary{
		Inserted: result.Inserted,
		Updated:  result.Updated,
		Total:    result.Total,
	}, nil
}

var requiredCSVHeaders = []string{"company_name", "email", "sector", "description"}

func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	missing := make([]string, 0)
	for _, required := range requiredCSVHeaders {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, CSVValidationError{Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}
	return index, nil
}

// column reads an optional column; absent columns and short rows read as empty.
func column(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func normalizeString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
