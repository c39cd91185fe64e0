package listing

import (
	"go/types"

	"github.com/calumari/readex/internal/expr"
)

// mapType converts a Go type to the nearest C# shape.
func mapType(t types.Type) *expr.Type {
	switch tt := t.(type) {
	case nil:
		return expr.Void
	case *types.Basic:
		return basicType(tt)
	case *types.Alias:
		return mapType(types.Unalias(tt))
	case *types.Named:
		return namedType(tt)
	case *types.Pointer:
		return mapType(tt.Elem())
	case *types.Slice:
		return expr.ArrayOf(mapType(tt.Elem()))
	case *types.Array:
		return expr.ArrayOf(mapType(tt.Elem()))
	case *types.Map:
		return expr.Class("Dictionary", mapType(tt.Key()), mapType(tt.Elem()))
	case *types.Chan:
		return expr.Class("Channel", mapType(tt.Elem()))
	case *types.Signature:
		return signatureType(tt)
	case *types.Struct:
		members := make([]string, tt.NumFields())
		for i := range members {
			members[i] = tt.Field(i).Name()
		}
		return expr.Anonymous(members...)
	case *types.TypeParam:
		return expr.GenericParam(tt.Obj().Name())
	case *types.Tuple:
		return tupleType(tt)
	}
	return expr.Object
}

func basicType(b *types.Basic) *expr.Type {
	switch b.Kind() {
	case types.Bool, types.UntypedBool:
		return expr.Bool
	case types.Int, types.Int32, types.UntypedInt:
		return expr.Int
	case types.Int8, types.Int16:
		return expr.Short
	case types.Int64:
		return expr.Long
	case types.Uint, types.Uint16, types.Uint32:
		return expr.UInt
	case types.Uint8:
		return expr.Byte
	case types.Uint64, types.Uintptr:
		return expr.ULong
	case types.Float32:
		return expr.Float
	case types.Float64, types.UntypedFloat:
		return expr.Double
	case types.String, types.UntypedString:
		return expr.String
	case types.UntypedRune:
		return expr.Char
	case types.Complex64, types.Complex128, types.UntypedComplex:
		return expr.Struct("Complex")
	}
	return expr.Object
}

func namedType(n *types.Named) *expr.Type {
	obj := n.Obj()
	if obj.Pkg() == nil && obj.Name() == "error" {
		return expr.Exception
	}
	var args []*expr.Type
	if ta := n.TypeArgs(); ta != nil {
		for i := 0; i < ta.Len(); i++ {
			args = append(args, mapType(ta.At(i)))
		}
	}
	switch n.Underlying().(type) {
	case *types.Interface:
		return expr.Interface(obj.Name(), args...)
	case *types.Basic:
		return expr.Struct(obj.Name(), args...)
	}
	return expr.Class(obj.Name(), args...)
}

func signatureType(sig *types.Signature) *expr.Type {
	args := make([]*expr.Type, 0, sig.Params().Len()+1)
	for i := 0; i < sig.Params().Len(); i++ {
		args = append(args, mapType(sig.Params().At(i).Type()))
	}
	r := resultType(sig)
	if r.IsVoid() {
		return expr.Action(args...)
	}
	return expr.Func(append(args, r)...)
}

// resultType is void, the single result, or a value tuple of all results.
func resultType(sig *types.Signature) *expr.Type {
	return tupleType(sig.Results())
}

func tupleType(t *types.Tuple) *expr.Type {
	switch t.Len() {
	case 0:
		return expr.Void
	case 1:
		return mapType(t.At(0).Type())
	}
	args := make([]*expr.Type, t.Len())
	for i := range args {
		args[i] = mapType(t.At(i).Type())
	}
	return expr.Struct("ValueTuple", args...)
}

// elemType returns the element type of slices, arrays, strings and
// pointers to arrays.
func elemType(t types.Type) types.Type {
	switch u := t.Underlying().(type) {
	case *types.Slice:
		return u.Elem()
	case *types.Array:
		return u.Elem()
	case *types.Pointer:
		return elemType(u.Elem())
	case *types.Basic:
		if u.Info()&types.IsString != 0 {
			return types.Typ[types.Byte]
		}
	}
	return nil
}

func isErrorType(t types.Type) bool {
	if named, ok := t.(*types.Named); ok {
		if named.Obj().Pkg() == nil && named.Obj().Name() == "error" {
			return true
		}
	}
	return false
}
