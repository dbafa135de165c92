package defaultjson

import (
	"strconv"

	"github.com/tablekit/defaultjson/types"
)

// CheckMapKeys scans a decoded default for duplicate map keys and reports
// every occurrence after the first as a duplicate_key issue. Decoding itself
// never rejects duplicates (the wire form is positional and consumers may
// want last-wins resolution); this is the separate lint surface for callers
// that treat duplicates as schema-authoring mistakes. A nil result means no
// duplicates were found.
//
// Keys are compared by their canonical encoded text, so byte-slice keys
// compare by content.
func CheckMapKeys(t types.Type, v any) Issues {
	return checkMapKeys(t, v, "/")
}

func checkMapKeys(t types.Type, v any, path string) Issues {
	if v == nil {
		return nil
	}
	switch t.ID() {
	case types.ListID:
		lt := t.(types.ListType)
		elems, ok := v.([]any)
		if !ok {
			return nil
		}
		var iss Issues
		for i, elem := range elems {
			iss = append(iss, checkMapKeys(lt.Element, elem, childPath(path, strconv.Itoa(i)))...)
		}
		return iss

	case types.MapID:
		mt := t.(types.MapType)
		pairs, ok := v.(Pairs)
		if !ok {
			return nil
		}
		var iss Issues
		seen := make(map[string]int, len(pairs))
		for i, p := range pairs {
			keyText, err := Encode(mt.Key, p.Key, false)
			if err != nil {
				continue
			}
			if first, dup := seen[keyText]; dup {
				iss = AppendIssues(iss, Issue{
					Path:          childPath(childPath(path, mapKeysField), strconv.Itoa(i)),
					Code:          CodeDuplicateKey,
					Type:          t.String(),
					Message:       "key repeats the one at index " + strconv.Itoa(first),
					InputFragment: keyText,
				})
			} else {
				seen[keyText] = i
			}
			iss = append(iss, checkMapKeys(mt.Value, p.Value, childPath(childPath(path, mapValuesField), strconv.Itoa(i)))...)
		}
		return iss

	case types.StructID:
		st := t.(*types.StructType)
		rec, ok := v.(*Record)
		if !ok {
			return nil
		}
		var iss Issues
		for pos, f := range st.Fields() {
			if fv := rec.Get(pos); fv != nil {
				iss = append(iss, checkMapKeys(f.Type, fv, childPath(path, strconv.Itoa(f.ID)))...)
			}
		}
		return iss
	}
	return nil
}
