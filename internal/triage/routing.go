package triage

// Queue identifies the work queue an order is routed to.
type Queue string

const (
	QueueAutoApproved Queue = "auto_approved"
	QueueLabTech      Queue = "lab_tech"
	QueueEngineer     Queue = "engineer"
)

// Valid reports whether q is one of the known queues.
func (q Queue) Valid() bool {
	switch q {
	case QueueAutoApproved, QueueLabTech, QueueEngineer:
		return true
	}
	return false
}

// Decision boundaries for the routing table. Complexity at exactly
// AutoComplexityMax fails the auto-approval rule (strict less-than);
// complexity at exactly TechComplexityMax still routes to lab_tech.
const (
	AutoComplexityMax = 30
	AutoConfidenceMin = 90
	TechComplexityMax = 60
)

// Decision is the routing outcome: the queue and whether the order was
// approved without human review. AutoApproved is true exactly when Queue
// is QueueAutoApproved.
type Decision struct {
	Queue        Queue `json:"queue"`
	AutoApproved bool  `json:"auto_approved"`
}

// Route evaluates the routing decision table top to bottom, first match
// wins:
//
//  1. critical issue and complexity above 60      -> engineer
//  2. complexity under 30, confidence at least 90,
//     and no critical issue                       -> auto_approved
//  3. complexity at most 60                       -> lab_tech
//  4. otherwise                                   -> engineer
//
// The table is total: every input maps to exactly one outcome.
func Route(isValid, hasCritical bool, complexity, confidence int) Decision {
	switch {
	case hasCritical && complexity > TechComplexityMax:
		return Decision{Queue: QueueEngineer}
	case complexity < AutoComplexityMax && confidence >= AutoConfidenceMin && !hasCritical:
		return Decision{Queue: QueueAutoApproved, AutoApproved: true}
	case complexity <= TechComplexityMax:
		return Decision{Queue: QueueLabTech}
	default:
		return Decision{Queue: QueueEngineer}
	}
}
