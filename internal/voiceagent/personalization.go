package voiceagent

import (
	"context"
	"fmt"
	"time"

	"lead_gateway_backend/platform/logger"
)

// PersonalizationResolver computes the pre-call variable set. It never
// errors and never blocks past its budget: the lookup runs under a bounded
// timeout with a recover, and any failure path yields defaults with the
// caller phone already set.
type PersonalizationResolver struct {
	lookup  ContactLookup
	timeout time.Duration
	log     *logger.Logger
}

// NewPersonalizationResolver creates a resolver over the given lookup.
// A non-positive timeout falls back to 2 seconds.
func NewPersonalizationResolver(lookup ContactLookup, timeout time.Duration, log *logger.Logger) *PersonalizationResolver {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &PersonalizationResolver{lookup: lookup, timeout: timeout, log: log}
}

// Resolve returns the complete 16-variable set for the given caller phone.
func (r *PersonalizationResolver) Resolve(ctx context.Context, phone *string) DynamicVariables {
	vars := DefaultVariables()
	if phone == nil || *phone == "" {
		return vars
	}

	// Eager assignment: the phone variable survives any lookup failure.
	vars.Phone = *phone

	if r.lookup == nil {
		return vars
	}

	lead, err := r.boundedLookup(ctx, *phone)
	if err != nil {
		r.log.Warn("pre-call lookup failed, defaults used", "error", err.Error())
		return vars
	}
	if lead == nil {
		return vars
	}

	return mapLeadToVariables(lead, *phone)
}

// boundedLookup runs the lookup in its own goroutine so a stalled
// implementation cannot hold the caller past the timeout, and converts a
// panic into an error.
func (r *PersonalizationResolver) boundedLookup(ctx context.Context, phone string) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		lead map[string]any
		err  error
	}

	resultCh := make(chan result, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				resultCh <- result{err: fmt.Errorf("lookup panicked: %v", rec)}
			}
		}()
		lead, err := r.lookup.LookupByPhone(ctx, phone)
		resultCh <- result{lead: lead, err: err}
	}()

	select {
	case res := <-resultCh:
		return res.lead, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// mapLeadToVariables maps a raw CRM field map onto the variable set with
// the documented per-field fallbacks.
func mapLeadToVariables(lead map[string]any, phone string) DynamicVariables {
	leadStatus := stringField(lead, "Lead_Status")
	hasPrevious := leadStatus != "" && leadStatus != "new" && leadStatus != "New"

	vars := DynamicVariables{
		FirstName:          fallback(stringField(lead, "First_Name"), "there"),
		LastName:           stringField(lead, "Last_Name"),
		LeadStatus:         fallback(leadStatus, "new"),
		QualificationScore: scoreField(lead, "qualification_score"),
		PropertyType:       fallback(stringField(lead, "Lead_Type"), "not specified"),
		Source:             fallback(stringField(lead, "Lead_Source"), fallback(stringField(lead, "Campaign"), "phone")),
		PreviousContact:    "no",
		LastInteraction:    fallback(stringField(lead, "call_timestamp"), fallback(stringField(lead, "Modified_Time"), "first contact")),
		Notes:              fallback(stringField(lead, "call_summary"), stringField(lead, "Description")),
		OHID:               fallback(stringField(lead, "DistributionID"), anyField(lead, "Record_Id")),
		BudgetRange:        fallback(stringField(lead, "Budget_Range"), "not discussed"),
		InvestmentTimeline: fallback(stringField(lead, "Investment_Timeline"), "not discussed"),
		PreferredLocation:  fallback(stringField(lead, "Preferred_Location"), "Dubai"),
		Nationality:        stringField(lead, "Nationality"),
		Occupation:         stringField(lead, "Occupation"),
		Phone:              phone,
	}
	if hasPrevious {
		vars.PreviousContact = "yes"
	}
	return vars
}

func fallback(value, alt string) string {
	if value != "" {
		return value
	}
	return alt
}

func stringField(lead map[string]any, key string) string {
	value, _ := lead[key].(string)
	return value
}

// anyField coerces a possibly-numeric legacy field to a string.
func anyField(lead map[string]any, key string) string {
	value, ok := lead[key]
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		return fmt.Sprintf("%.0f", typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

// scoreField renders a string-or-number score as a string, defaulting "0".
func scoreField(lead map[string]any, key string) string {
	value, ok := lead[key]
	if !ok || value == nil {
		return "0"
	}
	switch typed := value.(type) {
	case string:
		return fallback(typed, "0")
	case float64:
		return fmt.Sprintf("%.0f", typed)
	case int:
		return fmt.Sprintf("%d", typed)
	default:
		return "0"
	}
}
