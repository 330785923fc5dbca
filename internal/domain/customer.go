package domain

import "regexp"

var (
	customerNamePattern  = regexp.MustCompile(`^[a-zA-Z]+$`)
	customerEmailPattern = regexp.MustCompile(`^[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,3}$`)
)

// Customer owns zero or more accounts. Ownership is weak: deleting a
// customer is handled outside the operation core.
type Customer struct {
	ID    int64
	Name  string
	Email string
}

// Validate ensures the customer adheres to domain rules.
func (c *Customer) Validate() error {
	var violations []Violation

	switch {
	case c.Name == "":
		violations = append(violations, Violation{Cause: "name cannot be null or empty", Attribute: "name"})
	case len(c.Name) < 2 || len(c.Name) > 20:
		violations = append(violations, Violation{Cause: "name must be between 2 and 20 characters", Attribute: "name"})
	case !customerNamePattern.MatchString(c.Name):
		violations = append(violations, Violation{Cause: "name should only contain alphabetic characters", Attribute: "name"})
	}

	switch {
	case c.Email == "":
		violations = append(violations, Violation{Cause: "email cannot be null or empty", Attribute: "email"})
	case len(c.Email) > 30:
		violations = append(violations, Violation{Cause: "email cannot exceed 30 characters", Attribute: "email"})
	case !customerEmailPattern.MatchString(c.Email):
		violations = append(violations, Violation{Cause: "email should be valid", Attribute: "email"})
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
