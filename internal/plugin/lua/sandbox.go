package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// ModuleName is the name under which the host module is preloaded.
const ModuleName = "livemark"

// removedGlobals can load code from disk or strings at run time.
var removedGlobals = []string{"dofile", "loadfile", "load", "loadstring"}

// openSafeLibraries opens the base, table, string and math libraries.
// io, os, debug and package are not opened.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// installSandbox removes loaders and replaces require with one that only
// returns preloaded host modules.
func installSandbox(L *lua.LState, modules map[string]*lua.LTable) {
	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		mod, ok := modules[name]
		if !ok {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(mod)
		return 1
	}))
}
