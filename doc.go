// Package forge provides:
//
// - A builder factory driven by declarative parameter specifications (New/Create)
// - Fluent builders with set<Name>/add<Item> operations and a validating Build
// - Struct binding that derives specifications and a constructor from tags (Bind)
// - A stable error model via *Error (Kind, Param, Index, Reason)
//
// Design policy:
// - Keep only public APIs in the root package; document decoders live under
//   source/, message catalogs under i18n/, and the CLI under cmd/forge.
// - A Factory is immutable once created; every Builder owns its own store.
// - Build returns exactly what the constructor returned.
//
// Typical usage:
//
//	f, err := forge.New([]forge.ParamSpec{
//		{Name: "host", IsRequired: true},
//		{Name: "ports", ItemName: "port", IsList: true},
//	}, newServer)
//	srv, err := f.NewBuilder().
//		Call("setHost", "localhost").
//		Call("addPort", 80).
//		Call("addPort", 443).
//		Build()
package forge
