// Package bookmark holds the bookmark record type shared by the confirmed
// and temporary collections, and the precedence rule used when merging
// provider suggestions into a partially filled record.
package bookmark

// Bookmark is one record in either flat collection. ID is assigned by the
// store on first persist; OwnerID is fixed to the authenticated caller and
// never settable to anyone else. Paths are slash-delimited and carry no
// uniqueness constraint.
type Bookmark struct {
	ID      string   `json:"_id,omitempty"`
	OwnerID string   `json:"ownerID,omitempty"`
	Path    string   `json:"path,omitempty"`
	URL     string   `json:"url,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Notes   string   `json:"notes,omitempty"`
}

// Suggestion is the provider's proposal for the inferable fields. Every
// field is optional; absent or empty values never displace user input.
type Suggestion struct {
	Path  string   `json:"path,omitempty"`
	Tags  []string `json:"tags,omitempty"`
	Notes string   `json:"notes,omitempty"`
}

// MergeSuggestion combines a user-supplied record with a provider
// suggestion. Any non-empty user field wins; the suggestion only fills
// gaps. OwnerID, ID, and URL are never provider-influenced.
func MergeSuggestion(user Bookmark, s Suggestion) Bookmark {
	merged := user
	if merged.Path == "" && s.Path != "" {
		merged.Path = s.Path
	}
	if len(merged.Tags) == 0 && len(s.Tags) > 0 {
		merged.Tags = s.Tags
	}
	if merged.Notes == "" && s.Notes != "" {
		merged.Notes = s.Notes
	}
	return merged
}

// Fields returns the subset of the record the provider is allowed to see:
// the inferable fields plus the URL that drives inference. ID and OwnerID
// stay out of the prompt.
func (b Bookmark) Fields() Bookmark {
	return Bookmark{
		URL:   b.URL,
		Path:  b.Path,
		Tags:  b.Tags,
		Notes: b.Notes,
	}
}
