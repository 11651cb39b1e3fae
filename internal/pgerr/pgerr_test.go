package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassify(t *testing.T) {
	unique := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	fk := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514"}
	plain := errors.New("boom")

	if !IsUniqueViolation(unique) || IsUniqueViolation(fk) || IsUniqueViolation(plain) {
		t.Fatal("IsUniqueViolation misclassified")
	}
	if !IsForeignKeyViolation(fk) || IsForeignKeyViolation(unique) {
		t.Fatal("IsForeignKeyViolation misclassified")
	}
	if !IsCheckViolation(check) {
		t.Fatal("IsCheckViolation misclassified")
	}
	if got := Constraint(unique); got != "users_email_key" {
		t.Fatalf("Constraint = %q", got)
	}
	if got := Constraint(plain); got != "" {
		t.Fatalf("Constraint(plain) = %q", got)
	}
}
