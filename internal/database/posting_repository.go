package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	apperrors "github.com/justsurfingit/job-catalog/internal/errors"
	"github.com/justsurfingit/job-catalog/internal/models"
	"github.com/justsurfingit/job-catalog/internal/services"
	"gorm.io/gorm"
)

// Searchable fields accepted by FetchByFieldMatch.
const (
	FieldTitle            = "title"
	FieldEmployerName     = "employer.name"
	FieldEmployerDistrict = "employer.district"
	FieldMonthlySalary    = "monthlySalary"
)

const pgInvalidRegex = "2201B"

var regexColumns = map[string]string{
	FieldTitle:            "title",
	FieldEmployerName:     "employer_name",
	FieldEmployerDistrict: "employer_district",
}

var _ services.PostingStore = (*PostingRepository)(nil)

type PostingRepository struct {
	DB *gorm.DB
}

func NewPostingRepository(db *gorm.DB) *PostingRepository {
	return &PostingRepository{DB: db}
}

func (r *PostingRepository) FetchAll(ctx context.Context) ([]models.Posting, error) {
	var postings []models.Posting
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&postings).Error; err != nil {
		return nil, fmt.Errorf("find postings: %w", err)
	}
	return postings, nil
}

func (r *PostingRepository) FetchByID(ctx context.Context, id int64) (*models.Posting, error) {
	var p models.Posting
	err := r.DB.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("posting %d not found", id), nil)
		}
		return nil, fmt.Errorf("find posting %d: %w", id, err)
	}
	return &p, nil
}

// Insert stores p and returns the id assigned by the identity sequence.
func (r *PostingRepository) Insert(ctx context.Context, p models.Posting) (int64, error) {
	p.ID = 0
	if err := r.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return 0, fmt.Errorf("insert posting: %w", err)
	}
	return p.ID, nil
}

// Replace overwrites every column of posting id except its id and creation time.
func (r *PostingRepository) Replace(ctx context.Context, id int64, p models.Posting) error {
	res := replaceQuery(r.DB.WithContext(ctx), id, p)
	if res.Error != nil {
		return fmt.Errorf("replace posting %d: %w", id, res.Error)
	}
	// Postgres counts matched rows, so rewriting identical values still reports 1.
	if res.RowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("posting %d not found", id), nil)
	}
	return nil
}

func replaceQuery(db *gorm.DB, id int64, p models.Posting) *gorm.DB {
	p.ID = id
	return db.Model(&models.Posting{ID: id}).
		Select("*").
		Omit("id", "created_at").
		Updates(&p)
}

func (r *PostingRepository) Delete(ctx context.Context, id int64) error {
	res := r.DB.WithContext(ctx).Delete(&models.Posting{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete posting %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("posting %d not found", id), nil)
	}
	return nil
}

// FetchByFieldMatch runs a case-insensitive regex match on text fields and a
// minimum comparison on monthlySalary.
func (r *PostingRepository) FetchByFieldMatch(ctx context.Context, field, pattern string) ([]models.Posting, error) {
	cond, arg, err := matchCondition(field, pattern)
	if err != nil {
		return nil, err
	}

	var postings []models.Posting
	if err := r.DB.WithContext(ctx).Where(cond, arg).Order("id ASC").Find(&postings).Error; err != nil {
		return nil, searchError(field, pattern, err)
	}
	return postings, nil
}

func matchCondition(field, pattern string) (string, any, error) {
	if column, ok := regexColumns[field]; ok {
		return column + " ~* ?", pattern, nil
	}
	if field != FieldMonthlySalary {
		return "", nil, apperrors.InvalidInput(fmt.Sprintf("unsupported search field %q", field), nil)
	}
	floor, err := strconv.Atoi(strings.TrimSpace(pattern))
	if err != nil {
		return "", nil, apperrors.InvalidInput(fmt.Sprintf("monthlySalary must be an integer, got %q", pattern), err)
	}
	return "monthly_salary >= ?", floor, nil
}

// searchError turns a rejected regex into invalid input and wraps everything else.
func searchError(field, pattern string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidRegex {
		return apperrors.InvalidInput(fmt.Sprintf("invalid pattern %q", pattern), err)
	}
	return fmt.Errorf("search postings by %s: %w", field, err)
}

// SearchableField reports whether field is accepted by FetchByFieldMatch.
func SearchableField(field string) bool {
	_, ok := regexColumns[field]
	return ok || field == FieldMonthlySalary
}
