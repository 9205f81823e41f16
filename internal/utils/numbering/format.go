package numbering

import "fmt"

// FormatEntryNumber renders the canonical journal entry number:
// {TypePrefix}/{Year}/{Month:02}/{Sequence:04}, e.g. "JE/2025/03/0007".
// Sequences beyond four digits widen naturally and remain unique.
func FormatEntryNumber(prefix string, year int, month int, sequence int64) string {
	return fmt.Sprintf("%s/%d/%02d/%04d", prefix, year, month, sequence)
}

// FormatTemplateNumber renders the number of a template-derived entry:
// {Prefix}-{Sequence:06}, e.g. "RECUR-000042".
func FormatTemplateNumber(prefix string, sequence int64) string {
	return fmt.Sprintf("%s-%06d", prefix, sequence)
}
