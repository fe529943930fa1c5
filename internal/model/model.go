// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// Account is a row of the accounts table. Accounts are owned by an external
// account-management subsystem; this service only reads them.
type Account struct {
	AccountID int64
	Username  string
	Email     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountView is the public representation of an account.
// The field list is fixed on purpose: adding a column to the table must not leak it to clients.
type AccountView struct {
	AccountID int64     `json:"account_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountsResponse is the envelope returned by the listing endpoint.
type AccountsResponse struct {
	TotalCount int64         `json:"total_count"`
	Accounts   []AccountView `json:"accounts"`
}
