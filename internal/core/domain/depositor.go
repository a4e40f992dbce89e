// internal/core/domain/depositor.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Depositor is a person consigning articles for sale, identified by a short
// scannable code.
type Depositor struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`

	// ArticleCount is a snapshot taken at creation. It is not kept in sync with
	// the article collection; derived counts come from the catalog.
	ArticleCount int `json:"article_count"`

	CheckedIn   bool       `json:"checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
}

// Validate performs domain validation on the depositor.
func (d *Depositor) Validate() error {
	if d.FirstName == "" {
		return &ValidationError{Field: "first_name", Reason: "is required"}
	}
	if d.LastName == "" {
		return &ValidationError{Field: "last_name", Reason: "is required"}
	}
	if d.Phone == "" {
		return &ValidationError{Field: "phone", Reason: "is required"}
	}
	return nil
}

// PrepareForStorage assigns identity and timestamps before the first write.
func (d *Depositor) PrepareForStorage(now time.Time) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
}

// FullName returns the display name used on article snapshots.
func (d *Depositor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// CheckIn marks the depositor as physically registered. Calling it again is a
// no-op that keeps the original timestamp.
func (d *Depositor) CheckIn(now time.Time) {
	if d.CheckedIn {
		return
	}
	d.CheckedIn = true
	d.CheckedInAt = &now
}

// DepositorPatch carries the editable fields of a depositor. Nil means leave
// unchanged. Code and identity are never patchable.
type DepositorPatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// Apply copies the set fields onto the depositor.
func (p *DepositorPatch) Apply(d *Depositor) {
	if p.FirstName != nil {
		d.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		d.LastName = *p.LastName
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
}
