package gfapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formbridge/pkg/gravity"
)

// wireResult is the submission result as the REST API encodes it. PHP
// serialises an empty validation_messages map as [].
type wireResult struct {
	IsValid             bool            `json:"is_valid"`
	ValidationMessages  json.RawMessage `json:"validation_messages"`
	PageNumber          int             `json:"page_number"`
	SourcePageNumber    int             `json:"source_page_number"`
	ConfirmationMessage string          `json:"confirmation_message"`
	ConfirmationType    string          `json:"confirmation_type"`
	EntryID             gravity.ID      `json:"entry_id"`
}

// wireKeys are the keys wireResult models; anything else is carried in
// SubmissionResult.Extra.
var wireKeys = []string{
	"is_valid",
	"validation_messages",
	"page_number",
	"source_page_number",
	"confirmation_message",
	"confirmation_type",
	"entry_id",
}

func decodeResult(data []byte) (gravity.SubmissionResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return gravity.SubmissionResult{}, fmt.Errorf("gfapi: decode submission result: %w", err)
	}
	var wire wireResult
	if err := json.Unmarshal(data, &wire); err != nil {
		return gravity.SubmissionResult{}, fmt.Errorf("gfapi: decode submission result: %w", err)
	}

	result := gravity.SubmissionResult{
		IsValid:             wire.IsValid,
		PageNumber:          wire.PageNumber,
		SourcePageNumber:    wire.SourcePageNumber,
		ConfirmationMessage: wire.ConfirmationMessage,
		ConfirmationType:    wire.ConfirmationType,
		EntryID:             wire.EntryID,
	}

	raw := bytes.TrimSpace(wire.ValidationMessages)
	if len(raw) > 0 && raw[0] == '{' {
		messages := make(map[string]string)
		if err := json.Unmarshal(raw, &messages); err != nil {
			return gravity.SubmissionResult{}, fmt.Errorf("gfapi: decode validation messages: %w", err)
		}
		if len(messages) > 0 {
			result.ValidationMessages = messages
		}
	}

	for _, key := range wireKeys {
		delete(fields, key)
	}
	if len(fields) > 0 {
		result.Extra = fields
	}
	return result, nil
}
