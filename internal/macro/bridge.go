package macro

import (
	"encoding/json"

	lua "github.com/yuin/gopher-lua"
)

// toGoValue converts a Lua value to a Go value. Tables with contiguous
// 1..n integer keys become slices, all others become string-keyed maps.
// Integral numbers come back as int64.
func toGoValue(lv lua.LValue) any {
	return toGoVisited(lv, make(map[*lua.LTable]bool))
}

func toGoVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	isArray := true
	maxN := 0
	count := 0
	t.ForEach(func(k, _ lua.LValue) {
		count++
		kn, ok := k.(lua.LNumber)
		if !ok || float64(kn) != float64(int(kn)) || int(kn) < 1 {
			isArray = false
			return
		}
		if int(kn) > maxN {
			maxN = int(kn)
		}
	})
	if isArray && maxN == count && maxN > 0 {
		arr := make([]any, maxN)
		for i := 1; i <= maxN; i++ {
			arr[i-1] = toGoVisited(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = toGoVisited(v, visited)
	})
	return m
}

// toLuaValue converts a JSON-shaped Go value to a Lua value.
func toLuaValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		t := L.NewTable()
		for i, item := range val {
			t.RawSetInt(i+1, toLuaValue(L, item))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for k, item := range val {
			t.RawSetString(k, toLuaValue(L, item))
		}
		return t
	default:
		return lua.LNil
	}
}

// normalize forces a payload through JSON so scripts see the same
// shapes the wire transports emit: typed structs become string-keyed
// tables with their JSON field names.
func normalize(payload map[string]any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return map[string]any{"success": false, "error": "unencodable payload"}
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{"success": false, "error": "unencodable payload"}
	}
	return out
}
