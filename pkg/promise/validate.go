package promise

import "fmt"

// validateRequest rejects invalid input before any planning happens, so a
// calculation is never partially computed. Every failure wraps
// ErrInvalidRequest.
func validateRequest(req *Request, rules *Rules) error {
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidRequest)
	}
	for i, item := range req.Items {
		if item.ItemCode == "" {
			return fmt.Errorf("%w: item %d has no item_code", ErrInvalidRequest, i)
		}
		if !item.Qty.IsPositive() {
			return fmt.Errorf("%w: item %s qty must be positive, got %s", ErrInvalidRequest, item.ItemCode, item.Qty)
		}
	}
	if req.Today.IsZero() {
		return fmt.Errorf("%w: today must be supplied", ErrInvalidRequest)
	}

	if rules.LeadTimeBufferDays < 0 {
		return fmt.Errorf("%w: lead_time_buffer_days must be >= 0, got %d", ErrInvalidRequest, rules.LeadTimeBufferDays)
	}
	if rules.ProcessingLeadTimeDays != nil && *rules.ProcessingLeadTimeDays < 0 {
		return fmt.Errorf("%w: processing_lead_time_days must be >= 0, got %d", ErrInvalidRequest, *rules.ProcessingLeadTimeDays)
	}
	if _, err := reconcilerFor(rules.Mode()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if _, err := newRuleClock(rules); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	return nil
}
