package config

import "strings"

// Category selects one of the application's predefined user accounts
type Category string

// User categories
const (
	CategoryStandard    Category = "standard"
	CategoryLocked      Category = "locked"
	CategoryProblem     Category = "problem"
	CategoryPerformance Category = "performance"
)

// Categories lists every known user category
var Categories = []Category{
	CategoryStandard,
	CategoryLocked,
	CategoryProblem,
	CategoryPerformance,
}

// ParseCategory maps free-form input to a Category. Unknown input yields
// CategoryStandard.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryStandard
}

// Credentials is a username/password pair
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Credentials returns the login pair for category, falling back to the
// standard user for unknown categories.
func (s *Settings) Credentials(category Category) Credentials {
	switch category {
	case CategoryLocked:
		return Credentials{Username: s.LockedUser, Password: s.StandardPassword}
	case CategoryProblem:
		return Credentials{Username: s.ProblemUser, Password: s.StandardPassword}
	case CategoryPerformance:
		return Credentials{Username: s.PerformanceUser, Password: s.StandardPassword}
	default:
		return Credentials{Username: s.StandardUser, Password: s.StandardPassword}
	}
}
