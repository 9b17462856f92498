// Package resolver turns an inbound navigation request into an invitation
// descriptor. The hosting shell's URL shape is not guaranteed, so the
// resolver layers independent detection strategies over path-, query- and
// hash-based navigation and returns the first match in a fixed priority
// order. It is a pure function of the navigation context and is safe to
// re-evaluate on every navigation change.
package resolver

import (
	"sort"
	"strings"

	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/entity"
)

// Role-indicating sentinels shared by the view parameter, the path scan
// and the full-string scan.
const (
	sentinelPartnerView  = "partnerview"
	sentinelCustomerView = "customerview"
	broadMarker          = "onboard"
)

// NavigationContext is the normalized navigation state of the hosting
// shell: query string flattened into Params, plus the path and fragment.
type NavigationContext struct {
	Path     string            `json:"path"`
	Params   map[string]string `json:"params"`
	Fragment string            `json:"fragment"`
}

// Param returns a parameter value, or empty string when absent.
func (n NavigationContext) Param(name string) string {
	return n.Params[name]
}

// full reconstructs a single navigation string covering path, query and
// fragment, for the strategies that match against the whole of it.
func (n NavigationContext) full() string {
	var b strings.Builder
	b.WriteString(n.Path)
	if len(n.Params) > 0 {
		keys := make([]string, 0, len(n.Params))
		for k := range n.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sep := "?"
		for _, k := range keys {
			b.WriteString(sep)
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(n.Params[k])
			sep = "&"
		}
	}
	if n.Fragment != "" {
		b.WriteString("#")
		b.WriteString(n.Fragment)
	}
	return b.String()
}

// Config names the recognized navigation parameters and fallback values.
// spec-equivalent defaults are provided by DefaultConfig.
type Config struct {
	TokenParam   string
	RoleParam    string
	DemoParam    string
	DemoValue    string
	DemoToken    string
	InviterParam string
	CompanyParam string
	ViewParam    string

	DefaultInviter string
	DefaultCompany string
}

// DefaultConfig returns the standard parameter names and fallbacks.
func DefaultConfig() Config {
	return Config{
		TokenParam:     "uid",
		RoleParam:      "type",
		DemoParam:      "demo",
		DemoValue:      "onboarding",
		DemoToken:      "demo-invitation-001",
		InviterParam:   "inviter",
		CompanyParam:   "company",
		ViewParam:      "view",
		DefaultInviter: entity.DefaultInviterName,
		DefaultCompany: entity.DefaultCompanyName,
	}
}

type strategy func(nav NavigationContext) (*entity.InvitationDescriptor, bool)

// Resolver detects invitations in navigation contexts.
type Resolver struct {
	cfg        Config
	strategies []strategy
}

// New creates a resolver with the given configuration.
func New(cfg Config) *Resolver {
	r := &Resolver{cfg: cfg}
	r.strategies = []strategy{
		r.directParams,
		r.demoParam,
		r.pathIndicator,
		r.fullStringIndicator,
		r.viewParam,
		r.broadFallback,
	}
	return r
}

// Resolve tries each strategy in priority order and returns the first
// match. Later strategies never override an earlier one. No match means
// the wizard simply does not activate; it is not an error.
func (r *Resolver) Resolve(nav NavigationContext) (*entity.InvitationDescriptor, bool) {
	for _, try := range r.strategies {
		if descriptor, ok := try(nav); ok {
			return descriptor, true
		}
	}
	return nil, false
}

// Strategy 1: token and role parameters both present.
func (r *Resolver) directParams(nav NavigationContext) (*entity.InvitationDescriptor, bool) {
	token := nav.Param(r.cfg.TokenParam)
	role, ok := entity.ParseRole(nav.Param(r.cfg.RoleParam))
	if token == "" || !ok {
		return nil, false
	}
	return r.descriptor(nav, token, role), true
}

// Strategy 2: a single demo parameter synthesizes a fixed demo token;
// role defaults to customer unless the role parameter says otherwise.
func (r *Resolver) demoParam(nav NavigationContext) (*entity.InvitationDescriptor, bool) {
	if nav.Param(r.cfg.DemoParam) != r.cfg.DemoValue {
		return nil, false
	}
	role := entity.RoleCustomer
	if parsed, ok := entity.ParseRole(nav.Param(r.cfg.RoleParam)); ok {
		role = parsed
	}
	return r.descriptor(nav, r.cfg.DemoToken, role), true
}

// Strategy 3: token plus a role-indicating substring in the path.
func (r *Resolver) pathIndicator(nav NavigationContext) (*entity.InvitationDescriptor, bool) {
	return r.indicatorIn(nav, nav.Path)
}

// Strategy 4: same indicators matched against the full navigation string,
// covering shells where the path segment is not a true path.
func (r *Resolver) fullStringIndicator(nav NavigationContext) (*entity.InvitationDescriptor, bool) {
	return r.indicatorIn(nav, nav.full())
}

// Strategy 5: token plus an explicit view parameter.
func (r *Resolver) viewParam(nav NavigationContext) (*entity.InvitationDescriptor, bool) {
	token := nav.Param(r.cfg.TokenParam)
	if token == "" {
		return nil, false
	}
	switch nav.Param(r.cfg.ViewParam) {
	case sentinelPartnerView:
		return r.descriptor(nav, token, entity.RoleVendor), true
	case sentinelCustomerView:
		return r.descriptor(nav, token, entity.RoleCustomer), true
	}
	return nil, false
}

// Strategy 6: broadest fallback. The full navigation string mentions
// onboarding and a token is present; role inferred from vendor/partner
// substrings, defaulting to customer.
func (r *Resolver) broadFallback(nav NavigationContext) (*entity.InvitationDescriptor, bool) {
	token := nav.Param(r.cfg.TokenParam)
	full := strings.ToLower(nav.full())
	if token == "" || !strings.Contains(full, broadMarker) {
		return nil, false
	}
	role := entity.RoleCustomer
	if strings.Contains(full, "vendor") || strings.Contains(full, "partner") {
		role = entity.RoleVendor
	}
	return r.descriptor(nav, token, role), true
}

func (r *Resolver) indicatorIn(nav NavigationContext, haystack string) (*entity.InvitationDescriptor, bool) {
	token := nav.Param(r.cfg.TokenParam)
	if token == "" {
		return nil, false
	}
	if strings.Contains(haystack, sentinelPartnerView) {
		return r.descriptor(nav, token, entity.RoleVendor), true
	}
	if strings.Contains(haystack, sentinelCustomerView) {
		return r.descriptor(nav, token, entity.RoleCustomer), true
	}
	return nil, false
}

func (r *Resolver) descriptor(nav NavigationContext, token string, role entity.Role) *entity.InvitationDescriptor {
	inviter := nav.Param(r.cfg.InviterParam)
	if inviter == "" {
		inviter = r.cfg.DefaultInviter
	}
	company := nav.Param(r.cfg.CompanyParam)
	if company == "" {
		company = r.cfg.DefaultCompany
	}
	return &entity.InvitationDescriptor{
		ID:          token,
		Role:        role,
		InviterName: inviter,
		CompanyName: company,
	}
}
