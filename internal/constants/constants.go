package constants

// Session and context keys
const (
	SessionCookieName   = "rld_session"
	ContextKeyUserID    = "user_id"
	ContextKeyPrincipal = "principal"
)

// Credential rules
const (
	MinPasswordLength = 6
)

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// WorkTypeCatalog lists the accepted work types for labor submissions.
// Submissions outside this catalog are rejected as invalid input.
var WorkTypeCatalog = []string{
	"Preventive Patrol",
	"Incident Response",
	"Community Talks",
	"Interagency Meeting",
	"Targeted Operation",
	"Support to Other Units",
	"Road Control",
	"Administrative Duties",
}

// IsValidWorkType reports whether the given work type is in the catalog.
func IsValidWorkType(workType string) bool {
	for _, wt := range WorkTypeCatalog {
		if wt == workType {
			return true
		}
	}
	return false
}
