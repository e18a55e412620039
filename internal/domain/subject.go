package domain

import "time"

// SubjectType is the breed-equivalent used to look up service durations
type SubjectType struct {
	ID       int64
	Name     string
	IsActive bool
}

// Subject is the entity receiving the service (an animal record)
type Subject struct {
	ID            int64
	CustomerID    int64
	SubjectTypeID int64
	Name          string
	SizeClass     string
	IsInternal    bool
	CreatedAt     time.Time
}

// Customer owns subjects and receives invites
type Customer struct {
	ID         int64
	Name       string
	Email      *string
	Phone      *string
	IsInternal bool
	CreatedAt  time.Time
}

// ContactAddress returns the address notifications are delivered to, phone first
func (c *Customer) ContactAddress() (string, bool) {
	if c.Phone != nil && *c.Phone != "" {
		return *c.Phone, true
	}
	if c.Email != nil && *c.Email != "" {
		return *c.Email, true
	}
	return "", false
}

// CustomerCategory groups customers for category-wide invites
type CustomerCategory struct {
	ID   int64
	Name string
}
