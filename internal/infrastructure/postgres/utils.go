package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hidroflex/hidroflex-api/internal/domain"
)

// isUniqueViolation verifica se um erro é violação de constraint única (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// translateTransient converte falhas de serialização, deadlock e cancelamento
// por timeout em ErrTransient, preservando o erro original na cadeia.
// 40001 serialization_failure, 40P01 deadlock_detected, 57014 query_canceled.
func translateTransient(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "57014":
			return errors.Join(domain.ErrTransient, err)
		}
	}
	return err
}
