package sharing

import "github.com/google/uuid"

// IsValidUUID reports whether s is a canonical hyphenated UUID
// (8-4-4-4-12 hex, case-insensitive) with a version nibble in 1..5 and an
// RFC 4122 variant nibble (8, 9, a, or b). This is the strict rule the
// backend enforces when issuing IDs; lookalike strings that fail it are
// treated as readable ids and routed to the alias endpoint instead.
func IsValidUUID(s string) bool {
	// uuid.Parse also accepts braced, URN, and un-hyphenated encodings;
	// the length gate restricts acceptance to the canonical form.
	if len(s) != 36 {
		return false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	if v := u.Version(); v < 1 || v > 5 {
		return false
	}
	return u.Variant() == uuid.RFC4122
}
