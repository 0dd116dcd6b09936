package advisor

import "github.com/pathwise-dev/pathwise/pkg/model"

// route is the explicit routing outcome for one request. The downgrade path
// from a generative route to routeRuleOnly/routeStaticFallback is the core
// failure-recovery contract: a provider outage must never surface as an
// error to the end user.
type route int

const (
	// routeHybrid combines rule-based recommendations with a generative
	// narrative.
	routeHybrid route = iota
	// routeGenerativeOnly serves intents with no catalog relevance.
	routeGenerativeOnly
	// routeRuleOnly serves recommendations with a templated lead-in, used
	// when the generative path is unavailable or failed.
	routeRuleOnly
	// routeStaticFallback serves canned text when nothing else can.
	routeStaticFallback
)

func (r route) String() string {
	switch r {
	case routeHybrid:
		return "hybrid"
	case routeGenerativeOnly:
		return "generative_only"
	case routeRuleOnly:
		return "rule_only"
	case routeStaticFallback:
		return "static_fallback"
	default:
		return "unknown"
	}
}

// decideRoute picks the initial route for an intent. Catalog-relevant intents
// prefer hybrid when the generative path is configured; ResumeHelp and
// Unknown go generative-only. Without a configured responder the request is
// already a fallback.
func decideRoute(it model.Intent, generative, hasRecs bool) (route, bool) {
	if it.CatalogRelevant() {
		if generative {
			return routeHybrid, false
		}
		if hasRecs {
			return routeRuleOnly, true
		}
		return routeStaticFallback, true
	}

	if generative {
		return routeGenerativeOnly, false
	}
	return routeStaticFallback, true
}
