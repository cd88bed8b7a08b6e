// Package sanitize normalizes partial record payloads before they cross
// the remote table boundary. Creation and mutation follow different rules:
// an omitted field at create time must let the remote column default
// apply, while an emptied field on update must be written through as an
// explicit null so clearing is distinguishable from not touching.
package sanitize

// Fields is a JSON-object view of a partial record.
type Fields map[string]any

// Keys owned by the remote service; never part of a client payload.
var serverOwned = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"version":    true,
}

// ForCreate drops every nil-valued and empty-string field, along with
// server-owned keys. Falsy-but-meaningful values (0, false, empty slices)
// pass through untouched.
func ForCreate(in Fields) Fields {
	out := make(Fields, len(in))
	for k, v := range in {
		if serverOwned[k] {
			continue
		}
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// ForUpdate replaces every nil-valued and empty-string field with an
// explicit null; all other values pass through. Server-owned keys are
// dropped.
func ForUpdate(in Fields) Fields {
	out := make(Fields, len(in))
	for k, v := range in {
		if serverOwned[k] {
			continue
		}
		if v == nil {
			out[k] = nil
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			out[k] = nil
			continue
		}
		out[k] = v
	}
	return out
}
