package models

// Match is one entry of an account's match list. A user's entries carry
// RestID, a restaurant's entries carry UserID.
type Match struct {
	RestID string `json:"rest_id,omitempty" bson:"rest_id,omitempty"`
	UserID string `json:"user_id,omitempty" bson:"user_id,omitempty"`
}

// MatchFor builds the entry appended to owner's list when it matches target.
func MatchFor(owner Variant, targetID string) Match {
	if owner == VariantUser {
		return Match{RestID: targetID}
	}
	return Match{UserID: targetID}
}

// MatchPair is the result of a two-sided match.
type MatchPair struct {
	UserMatches       []Match `json:"user_matches"`
	RestaurantMatches []Match `json:"restaurant_matches"`
}

// NonNilMatches returns m, or an empty list when m is nil, so clients always
// see a JSON array.
func NonNilMatches(m []Match) []Match {
	if m == nil {
		return []Match{}
	}
	return m
}
