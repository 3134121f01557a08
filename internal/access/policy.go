// Package access holds the declarative authorization table consulted before every
// protected handler. Each action maps the roles allowed to perform it to the scope
// predicate applied to the caller's queries.
package access

import (
	"errors"
	"fmt"

	"github.com/noah-isme/course-reporting-api/internal/models"
)

// ErrForbidden is matched by every authorization denial.
var ErrForbidden = errors.New("forbidden")

// Action names an operation guarded by the policy.
type Action string

const (
	ActionUserList         Action = "user.list"
	ActionCourseCreate     Action = "course.create"
	ActionCourseList       Action = "course.list"
	ActionClassCreate      Action = "class.create"
	ActionClassList        Action = "class.list"
	ActionClassListMine    Action = "class.list_mine"
	ActionReportCreate     Action = "report.create"
	ActionReportList       Action = "report.list"
	ActionReportFeedback   Action = "report.feedback"
	ActionRatingCreate     Action = "rating.create"
	ActionRatingListMine   Action = "rating.list_mine"
	ActionRatingListTarget Action = "rating.list_target"
	ActionFacultyOverview  Action = "faculty.overview"
	ActionActivityList     Action = "activity.list"
)

// Scope is the row filter applied for a caller.
type Scope int

const (
	// ScopeAll applies no filter.
	ScopeAll Scope = iota + 1
	// ScopeFaculty restricts rows to the caller's faculty.
	ScopeFaculty
	// ScopeLecturer restricts rows to those whose lecturer is the caller.
	ScopeLecturer
	// ScopePRL restricts rows to those addressed to the caller as principal lecturer.
	ScopePRL
	// ScopeSelf makes the caller the owner of the rows it creates.
	ScopeSelf
)

func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeFaculty:
		return "faculty"
	case ScopeLecturer:
		return "lecturer"
	case ScopePRL:
		return "prl"
	case ScopeSelf:
		return "self"
	default:
		return "none"
	}
}

// Identity is the verified caller extracted from a session token.
type Identity struct {
	UserID  uint
	Name    string
	Email   string
	Role    models.UserRole
	Faculty string
}

// Grant is the outcome of a successful authorization.
type Grant struct {
	Identity
	Action Action
	Scope  Scope
}

// Rule describes who may perform an action and how their rows are scoped.
type Rule struct {
	// Roles maps each named role to its scope.
	Roles map[models.UserRole]Scope
	// AnyRole grants every authenticated role this scope when non-zero.
	AnyRole Scope
	// Fallback lets roles not named in Roles through unscoped when the policy enables it.
	Fallback bool
	// Denied is the client-facing message for refused roles.
	Denied string
}

// DeniedError reports a refused authorization.
type DeniedError struct {
	Action  Action
	Role    models.UserRole
	Message string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("role %q may not perform %s", e.Role, e.Action)
}

// Is lets callers match denials with errors.Is(err, ErrForbidden).
func (e *DeniedError) Is(target error) bool {
	return target == ErrForbidden
}

// Policy is the action table.
type Policy struct {
	rules            map[Action]Rule
	unscopedFallback bool
}

// Option customises a Policy.
type Option func(*Policy)

// WithUnscopedFallback toggles whether roles outside a rule's list see unscoped rows on
// actions marked Fallback. Disabled means they are denied.
func WithUnscopedFallback(enabled bool) Option {
	return func(p *Policy) {
		p.unscopedFallback = enabled
	}
}

// WithRule overrides or adds the rule for an action.
func WithRule(action Action, rule Rule) Option {
	return func(p *Policy) {
		p.rules[action] = rule
	}
}

// NewPolicy builds the policy from DefaultRules.
func NewPolicy(opts ...Option) *Policy {
	p := &Policy{
		rules:            DefaultRules(),
		unscopedFallback: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultRules returns the course-reporting authorization table.
func DefaultRules() map[Action]Rule {
	return map[Action]Rule{
		ActionUserList: {AnyRole: ScopeAll},
		ActionCourseCreate: {
			Roles:  map[models.UserRole]Scope{models.RolePL: ScopeAll},
			Denied: "Only Program Leaders can add courses",
		},
		ActionCourseList: {
			Roles: map[models.UserRole]Scope{
				models.RolePL:       ScopeFaculty,
				models.RolePRL:      ScopeFaculty,
				models.RoleLecturer: ScopeFaculty,
			},
			Fallback: true,
			Denied:   "You are not allowed to view courses",
		},
		ActionClassCreate: {
			Roles:  map[models.UserRole]Scope{models.RolePL: ScopeAll},
			Denied: "Only program leaders can add classes",
		},
		ActionClassList: {
			Roles:  map[models.UserRole]Scope{models.RolePL: ScopeAll},
			Denied: "Only program leaders can view all classes",
		},
		ActionClassListMine: {
			Roles:  map[models.UserRole]Scope{models.RoleLecturer: ScopeLecturer},
			Denied: "Only lecturers can access their classes",
		},
		ActionReportCreate: {
			Roles:  map[models.UserRole]Scope{models.RoleLecturer: ScopeSelf},
			Denied: "Only lecturers can submit reports",
		},
		ActionReportList: {
			Roles: map[models.UserRole]Scope{
				models.RoleLecturer: ScopeLecturer,
				models.RolePRL:      ScopePRL,
			},
			Fallback: true,
			Denied:   "You are not allowed to view reports",
		},
		ActionReportFeedback: {
			Roles:  map[models.UserRole]Scope{models.RolePRL: ScopePRL},
			Denied: "Only PRLs can submit feedback",
		},
		ActionRatingCreate: {
			Roles:  map[models.UserRole]Scope{models.RoleStudent: ScopeSelf},
			Denied: "Only students can submit ratings",
		},
		ActionRatingListMine: {
			Roles:  map[models.UserRole]Scope{models.RoleLecturer: ScopeLecturer},
			Denied: "Only lecturers can access this",
		},
		ActionRatingListTarget: {AnyRole: ScopeAll},
		ActionFacultyOverview:  {AnyRole: ScopeAll},
		ActionActivityList: {
			Roles:  map[models.UserRole]Scope{models.RolePL: ScopeAll},
			Denied: "Only program leaders can view activity",
		},
	}
}

// Authorize resolves the caller's scope for action or returns a *DeniedError.
func (p *Policy) Authorize(action Action, identity Identity) (Grant, error) {
	rule, ok := p.rules[action]
	if !ok {
		return Grant{}, &DeniedError{Action: action, Role: identity.Role, Message: "Access denied"}
	}

	if _, known := models.ParseRole(string(identity.Role)); !known {
		return Grant{}, p.deny(action, rule, identity)
	}

	if scope, listed := rule.Roles[identity.Role]; listed {
		return Grant{Identity: identity, Action: action, Scope: scope}, nil
	}

	if rule.AnyRole != 0 {
		return Grant{Identity: identity, Action: action, Scope: rule.AnyRole}, nil
	}

	if rule.Fallback && p.unscopedFallback {
		return Grant{Identity: identity, Action: action, Scope: ScopeAll}, nil
	}

	return Grant{}, p.deny(action, rule, identity)
}

func (p *Policy) deny(action Action, rule Rule, identity Identity) error {
	message := rule.Denied
	if message == "" {
		message = "Access denied"
	}
	return &DeniedError{Action: action, Role: identity.Role, Message: message}
}
