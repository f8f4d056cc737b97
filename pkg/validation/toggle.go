package validation

import (
	"context"

	"github.com/goliatone/go-hydrate/pkg/dom"
	"github.com/goliatone/go-hydrate/pkg/events"
)

const (
	// BulkToggleSelector is the master checkbox of the statuses cleanup form.
	BulkToggleSelector = "#account_statuses_cleanup_policy_enabled"
	// DisabledWrapperClass marks the label wrapper of a disabled input.
	DisabledWrapperClass = "disabled"
	labelWrapperSelector = ".with_label"
)

// SetInputDisabled toggles the disabled flag on input and mirrors it as the
// "disabled" class on the closest ".with_label" wrapper, when there is one.
// For checkboxes the wrapper's hidden fallback input (value "0") follows the
// checkbox so unchecked state is not submitted for a disabled field.
func SetInputDisabled(input *dom.Element, disabled bool) {
	if input == nil {
		return
	}
	input.SetDisabled(disabled)

	wrapper := input.Closest(labelWrapperSelector)
	if wrapper == nil {
		return
	}
	wrapper.ToggleClass(DisabledWrapperClass, disabled)
	if input.Type() == "checkbox" {
		if hidden := wrapper.Query(`input[type=hidden][value="0"]`); hidden != nil {
			hidden.SetDisabled(disabled)
		}
	}
}

// BulkToggle enables or disables every visible input and select in the
// checkbox's form according to its checked state. The checkbox itself is
// skipped. It returns the number of fields updated.
func BulkToggle(checkbox *dom.Element) int {
	if checkbox == nil {
		return 0
	}
	form := checkbox.Form()
	if form == nil {
		return 0
	}
	disabled := !checkbox.Checked()

	count := 0
	for _, el := range form.QueryAll("input, select") {
		if el.Same(checkbox) || (el.Tag() == "input" && el.Type() == "hidden") {
			continue
		}
		SetInputDisabled(el, disabled)
		count++
	}
	return count
}

// HandleBulkToggle is an events.Handler bound to BulkToggleSelector.
func HandleBulkToggle(_ context.Context, _ *events.Event, matched *dom.Element) {
	BulkToggle(matched)
}
