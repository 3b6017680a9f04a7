// Package authz decides whether an actor may act on a resource.
// Evaluation is pure: no database access, no side effects.
package authz

import (
	"github.com/gardenops/inventory-backend/internal/models"
)

// Action is one of the operations a policy rule can allow.
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Kind identifies which resource family a rule applies to.
type Kind string

const (
	KindUser    Kind = "user"
	KindProduct Kind = "product"
	KindStock   Kind = "stock"
)

// Resource is anything the policy table can vote on.
type Resource interface {
	PolicyKind() Kind
}

// UserResource, ProductResource and StockResource adapt entities to the
// policy table without the entities importing this package.
type UserResource struct{ User *models.User }
type ProductResource struct{ Product *models.Product }
type StockResource struct{ Stock *models.Stock }

func (UserResource) PolicyKind() Kind    { return KindUser }
func (ProductResource) PolicyKind() Kind { return KindProduct }
func (StockResource) PolicyKind() Kind   { return KindStock }

type ruleKey struct {
	kind   Kind
	action Action
}

type rule func(actor *models.User, res Resource) bool

// rules holds one predicate per (resource kind, action) pair. Anything
// absent from the table is denied. Admin actors short-circuit before
// the table is consulted; a nil actor never reaches it.
var rules = map[ruleKey]rule{
	{KindProduct, ActionView}:   anyStaff,
	{KindProduct, ActionEdit}:   staffOwner,
	{KindProduct, ActionDelete}: staffOwner,
	{KindStock, ActionEdit}:     staffOwner,
	{KindStock, ActionDelete}:   staffOwner,
	{KindUser, ActionView}:      self,
	{KindUser, ActionEdit}:      self,
	{KindUser, ActionDelete}:    neverSelf,
}

// Can reports whether actor may perform action on res. Anonymous
// actors are always denied.
func Can(actor *models.User, action Action, res Resource) bool {
	if actor == nil || res == nil {
		return false
	}

	// A user may never delete themself, admin or not.
	if ur, ok := res.(UserResource); ok && action == ActionDelete {
		if ur.User != nil && ur.User.ID == actor.ID {
			return false
		}
	}

	if actor.IsAdmin() {
		return true
	}

	r, ok := rules[ruleKey{res.PolicyKind(), action}]
	if !ok {
		return false
	}
	return r(actor, res)
}

// CanUser, CanProduct and CanStock are typed conveniences over Can.
func CanUser(actor *models.User, action Action, target *models.User) bool {
	return Can(actor, action, UserResource{User: target})
}

func CanProduct(actor *models.User, action Action, p *models.Product) bool {
	return Can(actor, action, ProductResource{Product: p})
}

func CanStock(actor *models.User, action Action, s *models.Stock) bool {
	return Can(actor, action, StockResource{Stock: s})
}

// anyStaff grants staff read access regardless of ownership.
func anyStaff(actor *models.User, _ Resource) bool {
	return actor.IsStaff()
}

// staffOwner grants write access to staff on records they own.
func staffOwner(actor *models.User, res Resource) bool {
	if !actor.IsStaff() {
		return false
	}
	switch r := res.(type) {
	case ProductResource:
		return r.Product != nil && r.Product.IsOwnedBy(actor)
	case StockResource:
		return r.Stock != nil && r.Stock.IsOwnedBy(actor)
	}
	return false
}

// self grants a user access to their own record.
func self(actor *models.User, res Resource) bool {
	r, ok := res.(UserResource)
	return ok && r.User != nil && r.User.ID == actor.ID
}

// neverSelf is the user-delete rule: only admins may delete other
// users, and the self case is rejected before this table runs. A
// non-admin actor therefore always fails here.
func neverSelf(_ *models.User, _ Resource) bool {
	return false
}
