package crm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safar/go-crm-backend/internal/database"
	"github.com/safar/go-crm-backend/internal/models"
	"github.com/safar/go-crm-backend/internal/store"
	"github.com/safar/go-crm-backend/internal/validation"
)

func (e *Engine) CreateCustomer(ctx context.Context, in CustomerInput) CustomerResult {
	name, email, phone := normalizeCustomer(in)

	phoneStr := ""
	if phone != nil {
		phoneStr = *phone
	}
	if err := validation.ValidatePhone(phoneStr); err != nil {
		return CustomerResult{Success: false, Message: err.Error()}
	}

	exists, err := store.EmailExists(ctx, e.db, email)
	if err != nil {
		return CustomerResult{Success: false, Message: fmt.Sprintf("Failed to create customer: %v", err)}
	}
	if exists {
		return CustomerResult{Success: false, Message: "Email already exists."}
	}

	customer, err := store.CreateCustomer(ctx, e.db, name, email, phone)
	if err != nil {
		// The probe and the insert are not atomic; a concurrent insert of
		// the same email surfaces here as a unique violation.
		if errors.Is(err, database.ErrDuplicateEmail) {
			return CustomerResult{Success: false, Message: "Email already exists."}
		}
		return CustomerResult{Success: false, Message: fmt.Sprintf("Failed to create customer: %v", err)}
	}

	return CustomerResult{Customer: customer, Success: true, Message: "Customer created successfully."}
}

// BulkCreateCustomers applies each entry independently inside one shared
// transaction. Every row runs under its own savepoint: a failed row rolls
// back to its savepoint and is reported by index, while earlier and later
// rows are unaffected. Rows see customers created by earlier rows of the
// same call because the uniqueness probe runs on the open transaction. A
// failure of the transaction itself aborts the whole batch: nothing is
// committed and a single database error is reported.
func (e *Engine) BulkCreateCustomers(ctx context.Context, entries []CustomerInput) BulkCustomersResult {
	var created []models.Customer
	var rowErrors []string

	err := database.WithTransaction(ctx, e.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		for idx, entry := range entries {
			name, email, phone := normalizeCustomer(entry)

			spErr := database.WithSavepoint(ctx, tx, fmt.Sprintf("bulk_row_%d", idx), func() error {
				phoneStr := ""
				if phone != nil {
					phoneStr = *phone
				}
				if err := validation.ValidatePhone(phoneStr); err != nil {
					return err
				}

				exists, err := store.EmailExists(ctx, tx, email)
				if err != nil {
					return err
				}
				if exists {
					return fmt.Errorf("Email already exists: %s", email)
				}

				customer, err := store.CreateCustomer(ctx, tx, name, email, phone)
				if err != nil {
					return err
				}

				created = append(created, *customer)
				return nil
			})
			if spErr != nil {
				var fatal *database.TxFailure
				if errors.As(spErr, &fatal) {
					return spErr
				}
				rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %v", idx, spErr))
			}
		}
		return nil
	})
	if err != nil {
		return BulkCustomersResult{
			Customers: []models.Customer{},
			Errors:    []string{fmt.Sprintf("Database error: %v", err)},
		}
	}

	if created == nil {
		created = []models.Customer{}
	}
	if rowErrors == nil {
		rowErrors = []string{}
	}

	return BulkCustomersResult{Customers: created, Errors: rowErrors}
}

func (e *Engine) DeleteCustomer(ctx context.Context, id int64) DeleteResult {
	err := store.DeleteCustomerCascade(ctx, e.db, id)
	if err != nil {
		if errors.Is(err, database.ErrCustomerNotFound) {
			return DeleteResult{Success: false, Message: "Invalid customer ID."}
		}
		return DeleteResult{Success: false, Message: fmt.Sprintf("Failed to delete customer: %v", err)}
	}

	return DeleteResult{Success: true, Message: "Customer deleted successfully."}
}
