package authz

import (
	"embed"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

//go:embed model.conf
var modelFS embed.FS

// policies grant route prefixes to roles. Admins inherit every employee rule.
var policies = [][]string{
	{domain.RoleEmployee, "/api/auth/*", "(GET)|(POST)"},
	{domain.RoleEmployee, "/api/votes/*", "(GET)|(POST)"},
	{domain.RoleAdmin, "/api/admin/*", "(GET)|(POST)|(PUT)|(DELETE)"},
}

var roleInheritance = [][]string{
	{domain.RoleAdmin, domain.RoleEmployee},
}

// Authorizer evaluates route access with a casbin RBAC model.
type Authorizer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
}

var _ ports.Authorizer = (*Authorizer)(nil)

func NewAuthorizer() (*Authorizer, error) {
	modelText, err := modelFS.ReadFile("model.conf")
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	m, err := model.NewModelFromString(string(modelText))
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("failed to add policies: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicies(roleInheritance); err != nil {
		return nil, fmt.Errorf("failed to add role inheritance: %w", err)
	}

	return &Authorizer{enforcer: enforcer}, nil
}

func (a *Authorizer) Authorize(role, path, method string) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	allowed, err := a.enforcer.Enforce(role, path, method)
	if err != nil {
		return false, fmt.Errorf("failed to check permission: %w", err)
	}
	return allowed, nil
}
