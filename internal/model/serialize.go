package model

// NewAccountView maps a stored account to its public representation.
func NewAccountView(a Account) AccountView {
	return AccountView{
		AccountID: a.AccountID,
		Username:  a.Username,
		Email:     a.Email,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
}

// NewAccountViews preserves input order and never returns nil, so an empty page encodes as [].
func NewAccountViews(accounts []Account) []AccountView {
	out := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, NewAccountView(a))
	}
	return out
}

// NewAccountsResponse wraps a page of accounts and the population size into the response envelope.
func NewAccountsResponse(total int64, accounts []Account) AccountsResponse {
	return AccountsResponse{
		TotalCount: total,
		Accounts:   NewAccountViews(accounts),
	}
}
