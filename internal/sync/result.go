package sync

import "time"

// Domain identifies one reconciled collection.
type Domain string

const (
	DomainEmployees   Domain = "employees"
	DomainCareerPaths Domain = "career-paths"
	DomainEvents      Domain = "events"
	DomainOperations  Domain = "operations"
)

// Domains lists every reconcilable domain in combined-run order.
var Domains = []Domain{DomainEmployees, DomainCareerPaths, DomainEvents, DomainOperations}

// Result summarizes one reconciliation pass. Count is the number of external
// records applied (created plus updated); skipped blocks are excluded.
type Result struct {
	Domain     Domain    `json:"domain"`
	Success    bool      `json:"success"`
	Count      int       `json:"count"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
	Message    string    `json:"message"`
	FinishedAt time.Time `json:"finished_at"`
}
