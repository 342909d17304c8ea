package types

import (
	"fmt"
	"slices"
	"strings"
)

// Collection is a named, ordered list of property IDs owned by a user.
// PropertyIDs may hold duplicates; membership is a linear scan.
type Collection struct {
	ID          string   `json:"id"`
	UserID      string   `json:"userId" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	PropertyIDs []string `json:"propertyIds"`
	CreatedAt   int64    `json:"createdAt"`
}

// EntityID returns the collection ID.
func (c Collection) EntityID() string { return c.ID }

// Validate requires an owner and a name.
func (c Collection) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("%w: userId must not be empty", ErrInvalidData)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidData)
	}
	return nil
}

// Clone returns a copy whose PropertyIDs slice is not shared with c.
// A nil slice becomes an empty one so encoded collections never carry null.
func (c Collection) Clone() Collection {
	ids := make([]string, len(c.PropertyIDs))
	copy(ids, c.PropertyIDs)
	c.PropertyIDs = ids
	return c
}

// Contains reports whether propertyID is a member.
func (c Collection) Contains(propertyID string) bool {
	return slices.Contains(c.PropertyIDs, propertyID)
}

// WithAdded returns a copy with propertyID appended.
func (c Collection) WithAdded(propertyID string) Collection {
	c = c.Clone()
	c.PropertyIDs = append(c.PropertyIDs, propertyID)
	return c
}

// WithRemoved returns a copy without any occurrence of propertyID.
func (c Collection) WithRemoved(propertyID string) Collection {
	c = c.Clone()
	c.PropertyIDs = slices.DeleteFunc(c.PropertyIDs, func(id string) bool {
		return id == propertyID
	})
	return c
}

// CollectionPatch names the fields of a partial collection update. A nil
// PropertyIDs leaves membership unchanged; an empty non-nil slice clears it.
type CollectionPatch struct {
	Name        *string  `json:"name,omitempty"`
	PropertyIDs []string `json:"propertyIds"`
}

// Apply returns a copy of c with the named fields replaced.
func (cp CollectionPatch) Apply(c Collection) Collection {
	c = c.Clone()
	if cp.Name != nil {
		c.Name = *cp.Name
	}
	if cp.PropertyIDs != nil {
		c.PropertyIDs = append([]string{}, cp.PropertyIDs...)
	}
	return c
}
