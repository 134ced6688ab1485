package elm

// blockedKeys are fields that legitimately differ between independent
// translator implementations and must not count as divergence. They are
// elided at every object depth, not just the document root.
var blockedKeys = map[string]bool{
	"translatorVersion": true,
	"translatorOptions": true,
	"signatureLevel":    true,
}

// BlockedKeys returns the normalization policy's key set in no
// particular order.
func BlockedKeys() []string {
	keys := make([]string, 0, len(blockedKeys))
	for k := range blockedKeys {
		keys = append(keys, k)
	}
	return keys
}

// Normalize returns a copy of v with all blocked keys removed at any
// nesting depth. The input is never modified, array order is preserved,
// and scalars pass through unchanged. Normalizing an already-normalized
// value yields an identical value.
func Normalize(v Value) Value {
	switch v.Type {
	case ObjectType:
		fields := make(map[string]Value, len(v.Object))
		for k, f := range v.Object {
			if blockedKeys[k] {
				continue
			}
			fields[k] = Normalize(f)
		}
		return FromObject(fields)
	case ArrayType:
		elems := make([]Value, len(v.Array))
		for i, e := range v.Array {
			elems[i] = Normalize(e)
		}
		return FromArray(elems)
	default:
		return v
	}
}
