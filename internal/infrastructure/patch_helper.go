package infrastructure

import (
	"encoding/json"
	"fmt"

	"github.com/Victor-armando18/storefront-engine/internal/domain"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

// ApplyCheckoutPatch applies an RFC 6902 patch to a checkout request.
func ApplyCheckoutPatch(original domain.CheckoutRequest, patchData []byte) (domain.CheckoutRequest, error) {
	originalJSON, err := json.Marshal(original)
	if err != nil {
		return original, err
	}

	patch, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		return original, fmt.Errorf("failed to decode patch: %w", err)
	}

	modifiedJSON, err := patch.Apply(originalJSON)
	if err != nil {
		return original, fmt.Errorf("failed to apply patch: %w", err)
	}

	var updated domain.CheckoutRequest
	if err := json.Unmarshal(modifiedJSON, &updated); err != nil {
		return original, fmt.Errorf("patched request is invalid: %w", err)
	}
	return updated, nil
}

// TotalsDelta returns the JSON merge patch that turns the client's claimed totals into the
// computed ones. A nil claim yields the full computed document.
func TotalsDelta(claimed *domain.OrderTotals, computed domain.OrderTotals) (json.RawMessage, bool, error) {
	before := []byte("{}")
	if claimed != nil {
		var err error
		if before, err = json.Marshal(claimed); err != nil {
			return nil, false, err
		}
	}
	after, err := json.Marshal(computed)
	if err != nil {
		return nil, false, err
	}

	patch, err := jsonpatch.CreateMergePatch(before, after)
	if err != nil {
		return nil, false, fmt.Errorf("failed to diff totals: %w", err)
	}
	if len(patch) <= 2 {
		return nil, false, nil
	}
	return json.RawMessage(patch), true, nil
}
