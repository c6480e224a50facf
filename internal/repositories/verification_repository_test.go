package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cymate/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

func TestReplaceCodeInvalidatesPreviousCode(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresVerificationRepository(db)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "email_verifications" WHERE email = \$1 AND purpose = \$2 AND is_used = false FOR UPDATE`).
		WithArgs("amr@cymate.io", models.PurposeRegistration).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "code", "purpose", "is_used", "created_at", "expires_at"}).
			AddRow(1, "amr@cymate.io", "111111", models.PurposeRegistration, false, now.Add(-time.Minute), now.Add(14*time.Minute)))
	mock.ExpectExec(`DELETE FROM "email_verifications" WHERE email = \$1 AND purpose = \$2 AND is_used = false`).
		WithArgs("amr@cymate.io", models.PurposeRegistration).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "email_verifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	verification := &models.EmailVerification{
		Email:     "amr@cymate.io",
		Code:      "222222",
		Purpose:   models.PurposeRegistration,
		CreatedAt: now,
		ExpiresAt: now.Add(15 * time.Minute),
	}
	require.NoError(t, repo.ReplaceCode(verification))
	assert.Equal(t, uint(2), verification.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceCodeFirstIssueSkipsDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresVerificationRepository(db)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "email_verifications" WHERE email = \$1 AND purpose = \$2 AND is_used = false FOR UPDATE`).
		WithArgs("amr@cymate.io", models.PurposePasswordReset).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "email_verifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	verification := &models.EmailVerification{
		Email:     "amr@cymate.io",
		Code:      "333333",
		Purpose:   models.PurposePasswordReset,
		CreatedAt: now,
		ExpiresAt: now.Add(15 * time.Minute),
	}
	require.NoError(t, repo.ReplaceCode(verification))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUnusedCodeMissingIsRecordNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresVerificationRepository(db)

	mock.ExpectQuery(`SELECT .* FROM "email_verifications" WHERE email = \$1 AND code = \$2 AND purpose = \$3 AND is_used = false ORDER BY created_at DESC`).
		WithArgs("amr@cymate.io", "987654", models.PurposeRegistration, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetUnusedCode("amr@cymate.io", "987654", models.PurposeRegistration)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveCodeFiltersExpiredAndUsed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresVerificationRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM "email_verifications" WHERE email = \$1 AND purpose = \$2 AND is_used = false AND expires_at > \$3 ORDER BY created_at DESC`).
		WithArgs("amr@cymate.io", models.PurposeRegistration, sqlmock.AnyArg(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "code", "purpose", "is_used", "created_at", "expires_at"}).
			AddRow(4, "amr@cymate.io", "444444", models.PurposeRegistration, false, now, now.Add(10*time.Minute)))

	verification, err := repo.GetActiveCode("amr@cymate.io", models.PurposeRegistration, now)
	require.NoError(t, err)
	assert.Equal(t, uint(4), verification.ID)
	assert.True(t, verification.IsValid(now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByEmailAndPurposeReportsCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresVerificationRepository(db)

	mock.ExpectExec(`DELETE FROM "email_verifications" WHERE email = \$1 AND purpose = \$2`).
		WithArgs("amr@cymate.io", models.PurposePasswordReset).
		WillReturnResult(sqlmock.NewResult(0, 2))

	count, err := repo.DeleteByEmailAndPurpose("amr@cymate.io", models.PurposePasswordReset)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredBefore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresVerificationRepository(db)

	mock.ExpectExec(`DELETE FROM "email_verifications" WHERE expires_at < \$1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 5))

	count, err := repo.DeleteExpiredBefore(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUsedBefore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresVerificationRepository(db)

	mock.ExpectExec(`DELETE FROM "email_verifications" WHERE is_used = true AND created_at < \$1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	count, err := repo.DeleteUsedBefore(time.Now().Add(-7 * 24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
