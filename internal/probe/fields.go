package probe

func findField(fields []Field, name string) string {
	for _, field := range fields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}

func setFieldValue(fields []Field, name, value string) []Field {
	for i := range fields {
		if fields[i].Name == name {
			fields[i].Value = value
			return fields
		}
	}
	return append(fields, Field{Name: name, Value: value})
}

// Get returns the raw value of the named field, or "" when absent.
func (t Track) Get(name string) string {
	return findField(t.Fields, name)
}

func (t Track) Has(name string) bool {
	for _, field := range t.Fields {
		if field.Name == name {
			return true
		}
	}
	return false
}

// Set replaces the named field's value, appending it when missing.
func (t *Track) Set(name, value string) {
	t.Fields = setFieldValue(t.Fields, name, value)
}

// NewTrack builds a track from alternating name/value pairs. A trailing
// name without a value is ignored.
func NewTrack(kind StreamKind, pairs ...string) Track {
	track := Track{Kind: kind}
	for i := 0; i+1 < len(pairs); i += 2 {
		track.Set(pairs[i], pairs[i+1])
	}
	return track
}
