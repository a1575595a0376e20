package fieldschema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// sameIdentity compares record identities across the representations stores
// hand back: UUIDs as strings, [16]byte or uuid.UUID, and numeric keys as
// any integer kind or json.Number. A 16-byte slice matches either as text or
// as a binary UUID.
func sameIdentity(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ka, kb := identityKey(a), identityKey(b)
	if ka == kb {
		return true
	}
	if u, ok := binaryUUID(a); ok && u == kb {
		return true
	}
	u, ok := binaryUUID(b)
	return ok && u == ka
}

func binaryUUID(v any) (string, bool) {
	b, ok := v.([]byte)
	if !ok {
		return "", false
	}
	u, err := uuid.FromBytes(b)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func identityKey(v any) string {
	switch id := v.(type) {
	case uuid.UUID:
		return id.String()
	case [16]byte:
		return uuid.UUID(id).String()
	case []byte:
		return identityKey(string(id))
	case string:
		if u, err := uuid.Parse(id); err == nil {
			return u.String()
		}
		return id
	case json.Number:
		if i, err := id.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return id.String()
	case float64:
		if id == math.Trunc(id) {
			return strconv.FormatInt(int64(id), 10)
		}
	case fmt.Stringer:
		return id.String()
	}
	if i, ok := asInt64(v); ok {
		return strconv.FormatInt(i, 10)
	}
	return fmt.Sprint(v)
}
