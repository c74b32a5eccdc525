package policy

// Token exposes the attributes of the credential a caller presented.
// Implementations are read-only views; the engine never mutates them.
type Token interface {
	// GetAPIAttribute returns the API attribute with the given name, if it
	// exists. API attributes can appear on the left side of a check: the rule
	// "project_name:cloud_admin" checks whether the API attribute
	// project_name exists and has the string value "cloud_admin". They are
	// usually derived from the validated token of the current request.
	GetAPIAttribute(name string) (string, bool)

	// HasRole returns whether the token covers the given role.
	HasRole(name string) bool
}

// Target exposes the attributes of the object a request acts upon, typically
// IDs or names appearing in the request path or body. Target attributes are
// referenced on the right side of a check through the %(name)s syntax.
type Target interface {
	// GetAttribute returns the target attribute with the given name, if it
	// exists.
	GetAttribute(name string) (string, bool)
}

// Request pairs the token and target attribute providers for one evaluation.
// It is a read-only view consumed, not owned, by the engine.
type Request struct {
	Token  Token
	Target Target
}

// NewRequest returns a request for the given token with no target
// attributes. Chain WithTarget to attach a target.
func NewRequest(token Token) Request {
	return Request{Token: token, Target: emptyTarget{}}
}

// WithTarget returns a copy of the request with the given target attached.
func (r Request) WithTarget(target Target) Request {
	r.Target = target
	return r
}

// emptyTarget is the target of a request that has no target attributes.
type emptyTarget struct{}

func (emptyTarget) GetAttribute(string) (string, bool) {
	return "", false
}

// TargetMap adapts a plain map to the Target interface, for callers that do
// not want to define their own implementation.
type TargetMap map[string]string

func (m TargetMap) GetAttribute(name string) (string, bool) {
	value, ok := m[name]
	return value, ok
}

// StaticToken is a simple Token backed by fixed data. It is convenient for
// hosts that have already extracted roles and attributes from a validated
// credential, and for tests.
type StaticToken struct {
	Roles         []string
	APIAttributes map[string]string
}

func (t *StaticToken) GetAPIAttribute(name string) (string, bool) {
	value, ok := t.APIAttributes[name]
	return value, ok
}

func (t *StaticToken) HasRole(name string) bool {
	for _, role := range t.Roles {
		if role == name {
			return true
		}
	}
	return false
}
