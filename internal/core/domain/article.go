// internal/core/domain/article.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Article is a single priced item consigned for sale. DepositorCode and
// DepositorName are denormalized snapshots taken at creation time; renaming the
// depositor later does not update them.
type Article struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	DepositorCode string          `json:"depositor_code"`
	DepositorName string          `json:"depositor_name"`
	PhotoRef      string          `json:"photo_ref,omitempty"`
	Size          string          `json:"size"`
	Sex           string          `json:"sex"`
	Price         decimal.Decimal `json:"price"`
	Location      string          `json:"location,omitempty"`
	Sold          bool            `json:"sold"`
	SoldAt        *time.Time      `json:"sold_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Validate performs domain validation on the article.
func (a *Article) Validate() error {
	if a.DepositorCode == "" {
		return &ValidationError{Field: "depositor_code", Reason: "is required"}
	}
	if a.Size == "" {
		return &ValidationError{Field: "size", Reason: "is required"}
	}
	if a.Sex == "" {
		return &ValidationError{Field: "sex", Reason: "is required"}
	}
	if a.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "cannot be negative"}
	}
	return nil
}

// PrepareForStorage assigns identity, composes the article code from the
// depositor code and sequence, and stamps creation time.
func (a *Article) PrepareForStorage(sequence int, now time.Time) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Code == "" {
		a.Code = ComposeArticleCode(a.DepositorCode, sequence)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
}

// MarkSold flips the article to sold. Re-marking keeps the original sale time.
func (a *Article) MarkSold(now time.Time) {
	if a.Sold {
		return
	}
	a.Sold = true
	a.SoldAt = &now
}

// ArticlePatch carries the editable fields of an article. Nil means leave
// unchanged.
type ArticlePatch struct {
	PhotoRef *string          `json:"photo_ref,omitempty"`
	Size     *string          `json:"size,omitempty"`
	Sex      *string          `json:"sex,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Location *string          `json:"location,omitempty"`
}

// Apply copies the set fields onto the article. Once an article is sold its
// price is frozen; only metadata may still change.
func (p *ArticlePatch) Apply(a *Article) error {
	if a.Sold && p.Price != nil && !p.Price.Equal(a.Price) {
		return &ImmutableFieldError{Field: "price"}
	}
	if p.Price != nil {
		a.Price = *p.Price
	}
	if p.PhotoRef != nil {
		a.PhotoRef = *p.PhotoRef
	}
	if p.Size != nil {
		a.Size = *p.Size
	}
	if p.Sex != nil {
		a.Sex = *p.Sex
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	return nil
}
