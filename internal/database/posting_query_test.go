package database

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	apperrors "github.com/justsurfingit/job-catalog/internal/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newDryRunDB builds statements without a server; nothing is executed.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=postgres dbname=jobcatalog sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestReplaceQuery_WritesEveryColumnButIdentity(t *testing.T) {
	db := newDryRunDB(t)

	res := replaceQuery(db, 7, samplePosting("Lead", "Acme", "Miraflores", 0))
	if res.Error != nil {
		t.Fatalf("build: %v", res.Error)
	}
	sql := res.Statement.SQL.String()

	if !strings.HasPrefix(sql, `UPDATE "postings" SET`) {
		t.Fatalf("unexpected statement: %s", sql)
	}
	for _, column := range []string{
		"title", "employer_name", "employer_address", "employer_district",
		"requirements_education", "requirements_skills",
		"experience_years", "monthly_salary", "expiration_date", "updated_at",
	} {
		if !strings.Contains(sql, fmt.Sprintf(`"%s"=`, column)) {
			t.Errorf("column %s not written: %s", column, sql)
		}
	}
	if strings.Contains(sql, `"created_at"=`) || strings.Contains(sql, `"id"=`) {
		t.Errorf("identity columns must not be written: %s", sql)
	}
	if !strings.Contains(sql, `"id" = $`) {
		t.Errorf("update is not scoped to the posting id: %s", sql)
	}

	// Zero values are written too, so a replace can clear a salary.
	found := false
	for _, v := range res.Statement.Vars {
		if n, ok := v.(int); ok && n == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("zero salary not bound: %v", res.Statement.Vars)
	}
}

func TestMatchCondition(t *testing.T) {
	cases := []struct {
		field, pattern string
		cond           string
		arg            any
	}{
		{FieldTitle, "dev", "title ~* ?", "dev"},
		{FieldEmployerName, "^acme", "employer_name ~* ?", "^acme"},
		{FieldEmployerDistrict, "isidro", "employer_district ~* ?", "isidro"},
		{FieldMonthlySalary, " 2500 ", "monthly_salary >= ?", 2500},
	}
	for _, tc := range cases {
		cond, arg, err := matchCondition(tc.field, tc.pattern)
		if err != nil {
			t.Fatalf("%s: %v", tc.field, err)
		}
		if cond != tc.cond || arg != tc.arg {
			t.Errorf("%s: got (%q, %v), want (%q, %v)", tc.field, cond, arg, tc.cond, tc.arg)
		}
	}
}

func TestSearchError(t *testing.T) {
	badRegex := fmt.Errorf("query: %w", &pgconn.PgError{Code: "2201B", Message: "invalid regular expression"})
	if err := searchError(FieldTitle, "(", badRegex); !apperrors.IsInvalidInput(err) {
		t.Fatalf("invalid regex should be invalid input, got %v", err)
	}

	other := &pgconn.PgError{Code: "57P01", Message: "terminating connection"}
	err := searchError(FieldTitle, "dev", other)
	if apperrors.Classified(err) {
		t.Fatalf("server failures must stay unclassified, got %v", err)
	}
	if !errors.Is(err, other) {
		t.Fatalf("cause lost: %v", err)
	}
}
