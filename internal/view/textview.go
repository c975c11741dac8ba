package view

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/partwire/internal/contenttype"
	"github.com/alexisbeaulieu97/partwire/internal/property"
)

// TextView is a view over text data with a content type and a set of roles.
// Every view owns a property collection that listeners use to attach state.
type TextView interface {
	property.Owner

	ID() string
	Roles() RoleSet
	ContentType() *contenttype.ContentType
	CreatedAt() time.Time

	// IsReady reports whether creation listeners have run and the view may be presented.
	IsReady() bool
	IsClosed() bool
}

type textView struct {
	property.Bag

	id          string
	roles       RoleSet
	contentType *contenttype.ContentType
	createdAt   time.Time

	mu     sync.RWMutex
	ready  bool
	closed bool
}

func newTextView(ct *contenttype.ContentType, roles RoleSet) *textView {
	v := &textView{
		id:          uuid.NewString(),
		roles:       roles,
		contentType: ct,
		createdAt:   time.Now(),
	}
	// The collection exists before any listener sees the view.
	v.Properties()
	return v
}

func (v *textView) ID() string                            { return v.id }
func (v *textView) Roles() RoleSet                        { return v.roles }
func (v *textView) ContentType() *contenttype.ContentType { return v.contentType }
func (v *textView) CreatedAt() time.Time                  { return v.createdAt }

func (v *textView) IsReady() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.ready
}

func (v *textView) IsClosed() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.closed
}

func (v *textView) markReady() {
	v.mu.Lock()
	v.ready = true
	v.mu.Unlock()
}

// markClosed reports false if the view was already closed.
func (v *textView) markClosed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return false
	}
	v.closed = true
	return true
}
