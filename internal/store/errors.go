// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrObjectNotFound is returned when a lookup or soft delete targets an
	// object that is not present in the local store.
	ErrObjectNotFound = errors.New("object was not found")

	// ErrEmptyTypeID is returned when a repository is asked to operate on a
	// record or marker without a type id.
	ErrEmptyTypeID = errors.New("type id is empty")

	// ErrEmptyObjectID is returned when a record or marker carries no id.
	ErrEmptyObjectID = errors.New("object id is empty")

	// ErrTypeMismatch is returned when a record is written through the
	// accessor of another type.
	ErrTypeMismatch = errors.New("record type does not match the store type")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrPreparingStatement is returned when a SQL statement cannot be
	// prepared.
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning or iterating a multi-row
	// result set fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
