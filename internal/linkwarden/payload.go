package linkwarden

const (
	// MaxNewTags is the most tags a single update may add.
	MaxNewTags = 5
	// MaxTagLength is the longest tag name the API accepts.
	MaxTagLength = 50
)

// BuildUpdatePayload merges proposed tag names into a complete update
// payload for the link. It returns nil when the link has no collection
// (the update API requires one) or when every proposed tag already exists
// on the link, which makes re-running against an enriched link a no-op.
//
// Matching against existing tags is case-sensitive and exact.
func BuildUpdatePayload(link *Link, proposed []string) *UpdatePayload {
	if link.Collection == nil {
		return nil
	}

	existing := make(map[string]struct{}, len(link.Tags))
	for _, tag := range link.Tags {
		if tag.Name != "" {
			existing[tag.Name] = struct{}{}
		}
	}

	var newTags []string
	for _, name := range proposed {
		if name == "" {
			continue
		}
		if _, ok := existing[name]; ok {
			continue
		}
		newTags = append(newTags, name)
	}
	if len(newTags) == 0 {
		return nil
	}
	if len(newTags) > MaxNewTags {
		newTags = newTags[:MaxNewTags]
	}

	var tags []Tag
	for _, tag := range link.Tags {
		if tag.Name != "" {
			tags = append(tags, Tag{ID: tag.ID, Name: tag.Name})
		}
	}
	for _, name := range newTags {
		tags = append(tags, Tag{Name: truncate(name, MaxTagLength)})
	}

	collectionID := link.CollectionID
	if collectionID == 0 {
		collectionID = link.Collection.ID
	}

	payload := &UpdatePayload{
		ID:          link.ID,
		Name:        link.Name,
		URL:         link.URL,
		Description: link.Description,
		Icon:        link.Icon,
		IconWeight:  link.IconWeight,
		Color:       link.Color,
		Collection: Collection{
			ID:      collectionID,
			OwnerID: link.Collection.OwnerID,
		},
		Tags: tags,
	}

	if len(link.PinnedBy) > 0 {
		pins := make([]PinRef, 0, len(link.PinnedBy))
		for _, pin := range link.PinnedBy {
			pins = append(pins, PinRef{ID: pin.ID})
		}
		payload.PinnedBy = pins
	}

	return payload
}

// truncate cuts a string to at most limit runes, never splitting a
// multi-byte character.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
