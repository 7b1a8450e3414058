package firestore

import (
	"strconv"

	"github.com/promptdeck/promptdeck/internal/domain/prompt"
)

// Value is the Firestore typed-value envelope. Exactly one field is set.
// Integers travel as decimal strings per the Firestore REST convention.
type Value struct {
	StringValue  *string     `json:"stringValue,omitempty"`
	IntegerValue *string     `json:"integerValue,omitempty"`
	BooleanValue *bool       `json:"booleanValue,omitempty"`
	NullValue    any         `json:"nullValue,omitempty"`
	ArrayValue   *ArrayValue `json:"arrayValue,omitempty"`
	MapValue     *MapValue   `json:"mapValue,omitempty"`
}

// ArrayValue wraps a Firestore array.
type ArrayValue struct {
	Values []Value `json:"values,omitempty"`
}

// MapValue wraps a Firestore map.
type MapValue struct {
	Fields map[string]Value `json:"fields,omitempty"`
}

// Document is a Firestore document: a named bag of typed fields.
type Document struct {
	Name   string           `json:"name,omitempty"`
	Fields map[string]Value `json:"fields"`
}

// listResponse is the body of a collection list call.
type listResponse struct {
	Documents []Document `json:"documents"`
}

// UserMeta is the folder state stored directly on the user's root
// document (not a sub-document).
type UserMeta struct {
	Folders    []string
	FolderMeta map[string]prompt.FolderMeta
}

// DefaultUserMeta is returned when the user document does not exist yet.
func DefaultUserMeta() UserMeta {
	return UserMeta{Folders: []string{prompt.FolderUncategorized}}
}

func str(s string) Value { return Value{StringValue: &s} }

func integer(n uint32) Value {
	return Value{IntegerValue: ptr(strconv.FormatUint(uint64(n), 10))}
}

func ptr[T any](v T) *T { return &v }

// getString returns the string field or "" when absent or mistyped.
func (d Document) getString(key string) string {
	if v, ok := d.Fields[key]; ok && v.StringValue != nil {
		return *v.StringValue
	}
	return ""
}

// getUint32 parses an integer-as-string field, falling back to 0 on any
// malformage. Remote numeric junk must never abort a fetch.
func (d Document) getUint32(key string) uint32 {
	v, ok := d.Fields[key]
	if !ok || v.IntegerValue == nil {
		return 0
	}
	n, err := strconv.ParseUint(*v.IntegerValue, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// docFromPrompt maps a full record onto the wire envelope. Optional fields
// are omitted rather than written as nulls.
func docFromPrompt(p prompt.Prompt) Document {
	fields := map[string]Value{
		"id":          str(p.ID),
		"name":        str(p.Name),
		"folder":      str(p.Folder),
		"description": str(p.Description),
		"filename":    str(p.Filename),
		"useCount":    integer(p.UseCount),
		"created":     str(p.Created),
		"updated":     str(p.Updated),
		"content":     str(p.Content),
	}
	if p.LastUsed != "" {
		fields["lastUsed"] = str(p.LastUsed)
	}
	if p.Icon != "" {
		fields["icon"] = str(p.Icon)
	}
	if p.Color != "" {
		fields["color"] = str(p.Color)
	}
	return Document{Fields: fields}
}

// promptFromDoc rebuilds a record from the wire envelope. The identifying
// fields must be present; everything else degrades to a zero value.
func promptFromDoc(d Document) (prompt.Prompt, bool) {
	id := d.getString("id")
	name := d.getString("name")
	folder := d.getString("folder")
	filename := d.getString("filename")
	if id == "" || name == "" || folder == "" || filename == "" {
		return prompt.Prompt{}, false
	}

	return prompt.Prompt{
		Metadata: prompt.Metadata{
			ID:          id,
			Name:        name,
			Folder:      folder,
			Description: d.getString("description"),
			Filename:    filename,
			UseCount:    d.getUint32("useCount"),
			LastUsed:    d.getString("lastUsed"),
			Created:     d.getString("created"),
			Updated:     d.getString("updated"),
			Icon:        d.getString("icon"),
			Color:       d.getString("color"),
		},
		Content: d.getString("content"),
	}, true
}

// docFromMeta maps the folder state onto the user's root document.
func docFromMeta(meta UserMeta) Document {
	values := make([]Value, 0, len(meta.Folders))
	for _, f := range meta.Folders {
		values = append(values, str(f))
	}
	fields := map[string]Value{
		"folders": {ArrayValue: &ArrayValue{Values: values}},
	}

	if len(meta.FolderMeta) > 0 {
		metaFields := make(map[string]Value, len(meta.FolderMeta))
		for name, fm := range meta.FolderMeta {
			entry := map[string]Value{"name": str(fm.Name)}
			if fm.Icon != "" {
				entry["icon"] = str(fm.Icon)
			}
			if fm.Color != "" {
				entry["color"] = str(fm.Color)
			}
			metaFields[name] = Value{MapValue: &MapValue{Fields: entry}}
		}
		fields["folderMeta"] = Value{MapValue: &MapValue{Fields: metaFields}}
	}
	return Document{Fields: fields}
}

// metaFromDoc rebuilds the folder state, defaulting to the uncategorized
// folder when the document carries none.
func metaFromDoc(d Document) UserMeta {
	meta := UserMeta{}

	if v, ok := d.Fields["folders"]; ok && v.ArrayValue != nil {
		for _, item := range v.ArrayValue.Values {
			if item.StringValue != nil {
				meta.Folders = append(meta.Folders, *item.StringValue)
			}
		}
	}
	if len(meta.Folders) == 0 {
		meta.Folders = []string{prompt.FolderUncategorized}
	}

	if v, ok := d.Fields["folderMeta"]; ok && v.MapValue != nil {
		meta.FolderMeta = make(map[string]prompt.FolderMeta, len(v.MapValue.Fields))
		for name, entry := range v.MapValue.Fields {
			if entry.MapValue == nil {
				continue
			}
			fm := prompt.FolderMeta{Name: name}
			sub := Document{Fields: entry.MapValue.Fields}
			if n := sub.getString("name"); n != "" {
				fm.Name = n
			}
			fm.Icon = sub.getString("icon")
			fm.Color = sub.getString("color")
			meta.FolderMeta[name] = fm
		}
	}
	return meta
}
