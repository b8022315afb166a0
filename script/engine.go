package script

import (
	"github.com/d5/tengo/v2"
	"github.com/milk9111/blockworld/world"
	"go.uber.org/zap"
)

func (r *Runtime) engine(w *world.World, e *world.Entity, name string) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return pair(e.Position.X, e.Position.Y), nil
	}}

	values["velocity"] = &tengo.UserFunction{Name: "velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return pair(e.Velocity.X, e.Velocity.Y), nil
	}}

	values["size"] = &tengo.UserFunction{Name: "size", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return pair(e.Width, e.Height), nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "float", Found: args[0].TypeName()}
		}
		y, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "float", Found: args[1].TypeName()}
		}
		if e.Fixed {
			return tengo.FalseValue, nil
		}
		e.Velocity.X, e.Velocity.Y = x, y
		return tengo.TrueValue, nil
	}}

	values["touching_ground"] = &tengo.UserFunction{Name: "touching_ground", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(e.TouchingGround), nil
	}}

	values["colliding"] = &tengo.UserFunction{Name: "colliding", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(e.Colliding), nil
	}}

	values["frame"] = &tengo.UserFunction{Name: "frame", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(w.Frame())}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		msg := ""
		if len(args) > 0 {
			msg, _ = tengo.ToString(args[0])
		}
		r.log.Debug(msg, zap.String("script", name), zap.String("entity", e.Name))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func pair(a, b float64) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: a}, &tengo.Float{Value: b}}}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
