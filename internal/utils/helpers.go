package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/partsflow/procurement-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SendErrorResponse writes an error as JSON.
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// SendJSONResponse writes a payload as JSON with the given status code.
func SendJSONResponse(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println(err)
	}
}

// ParseLimitOffset validates limit and offset query parameters.
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > 50 {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [0:50]")
		}
	} else {
		limit = 20
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// NewSequenceNo builds a human-readable sequence number such as
// D-20250829-1a2b3c4d, shown to users alongside the entity id.
func NewSequenceNo(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), suffix)
}

// SupplierCode returns the anonymized label for the n-th quote on a demand:
// "Supplier A", "Supplier B", ..., wrapping to "Supplier A1" past 26.
func SupplierCode(n int) string {
	letter := rune('A' + n%26)
	if n >= 26 {
		return fmt.Sprintf("Supplier %c%d", letter, n/26)
	}
	return fmt.Sprintf("Supplier %c", letter)
}

// CheckShopExists reports whether a shop with the given id exists.
func CheckShopExists(ctx context.Context, dbPool *pgxpool.Pool, shopID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM shop WHERE id = $1)`
	err := dbPool.QueryRow(ctx, query, shopID).Scan(&exists)
	return exists, err
}

// CheckSupplierApproved reports whether the supplier exists and has passed audit.
func CheckSupplierApproved(ctx context.Context, dbPool *pgxpool.Pool, supplierID string) (bool, error) {
	var approved bool
	query := `SELECT EXISTS(SELECT 1 FROM supplier WHERE id = $1 AND status = 'approved')`
	err := dbPool.QueryRow(ctx, query, supplierID).Scan(&approved)
	return approved, err
}

// CheckUserExists reports whether a user with the given username exists.
func CheckUserExists(ctx context.Context, dbPool *pgxpool.Pool, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	err := dbPool.QueryRow(ctx, query, username).Scan(&exists)
	return exists, err
}

// CheckDemandExists reports whether a demand with the given id exists.
func CheckDemandExists(ctx context.Context, dbPool *pgxpool.Pool, demandID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM demand WHERE id = $1)`
	err := dbPool.QueryRow(ctx, query, demandID).Scan(&exists)
	return exists, err
}
