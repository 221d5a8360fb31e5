package models

// User represents a registered user of the system. Records are seeded at
// startup and owned by the user store.
type User struct {
	UserID      string              `json:"userId"`
	EngName     string              `json:"engName"`
	ChiName     string              `json:"chiName"`
	Email       string              `json:"email"`
	Roles       []string            `json:"roles"`
	Permissions []string            `json:"permissions"`
	Metadata    map[string][]string `json:"metadata"`
}

// CurrentUser is the per-request projection of a validated token. It is
// built once during token validation and read-only afterwards.
type CurrentUser struct {
	UserID         string
	EngName        string
	ChiName        string
	Email          string
	Roles          map[string]struct{}
	Permissions    map[string]struct{}
	MetaDataFilter map[string][]string
}

// IsAdmin reports whether the user carries the "Admin" role.
func (u *CurrentUser) IsAdmin() bool {
	_, ok := u.Roles["Admin"]
	return ok
}

// HasPermission reports whether the user carries the given permission claim.
func (u *CurrentUser) HasPermission(permission string) bool {
	_, ok := u.Permissions[permission]
	return ok
}

// DSM is one entry of the fake document catalog.
type DSM struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Generation      string `json:"generation"`
	Technology      string `json:"technology"`
	Category        string `json:"category"`
	Platform        string `json:"platform"`
	RevisionVersion string `json:"revisionVersion"`
	CustomMark      string `json:"customMark,omitempty"`
}

// Document is an entry of the fixed authorized-document catalog.
type Document struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Content  string `json:"content"`
}
