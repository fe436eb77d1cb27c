package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Household is the highest level of organization in Hearthledger, all
// other resources reference it directly or transitively.
type Household struct {
	DefaultModel
	Name string `json:"name" example:"The Miller family" default:""`
	Note string `json:"note" example:"Shared finances" default:""`
}

func (h *Household) BeforeSave(_ *gorm.DB) error {
	h.Name = strings.TrimSpace(h.Name)
	h.Note = strings.TrimSpace(h.Note)
	return nil
}

// Role determines what a member is allowed to do.
//
// Roles are ordered: viewer < editor < admin.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// AtLeast reports whether the role grants at least the permissions of
// the required role.
func (r Role) AtLeast(required Role) bool {
	rank := map[Role]int{RoleViewer: 1, RoleEditor: 2, RoleAdmin: 3}
	return rank[r] >= rank[required]
}

// Member is a person in a household.
type Member struct {
	DefaultModel
	HouseholdID uuid.UUID `json:"householdId"`
	Household   Household `json:"-"`
	Name        string    `json:"name"`
	Role        Role      `json:"role" example:"editor"`
}

func (m *Member) BeforeSave(_ *gorm.DB) error {
	m.Name = strings.TrimSpace(m.Name)
	return nil
}

// Session is a bearer token for a member.
type Session struct {
	DefaultModel
	Token       string    `json:"-" gorm:"uniqueIndex"`
	MemberID    uuid.UUID `json:"memberId"`
	Member      Member    `json:"-"`
	HouseholdID uuid.UUID `json:"householdId"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Expired reports whether the session has expired.
func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(time.Now())
}

// RequestContext identifies the caller of a request. It is resolved
// from the bearer token by the router middleware and passed explicitly,
// it is never global state.
type RequestContext struct {
	MemberID    uuid.UUID
	HouseholdID uuid.UUID
	Role        Role
}

// ResolveToken looks up the session for a bearer token and returns the
// request context for it.
func ResolveToken(db *gorm.DB, token string) (RequestContext, error) {
	var session Session
	err := db.Preload("Member").Where(&Session{Token: token}).First(&session).Error
	if err != nil {
		return RequestContext{}, err
	}

	if session.Expired() {
		return RequestContext{}, ErrNoPermission
	}

	return RequestContext{
		MemberID:    session.MemberID,
		HouseholdID: session.HouseholdID,
		Role:        session.Member.Role,
	}, nil
}
