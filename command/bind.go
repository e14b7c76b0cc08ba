package command

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/ggoodman/slashcmd-go/discord"
)

var (
	valueType      = reflect.TypeOf(Value{})
	variantType    = reflect.TypeOf(Variant{})
	snowflakeType  = reflect.TypeOf(discord.Snowflake(0))
	userPtrType    = reflect.TypeOf((*discord.User)(nil))
	memberPtrType  = reflect.TypeOf((*discord.Member)(nil))
	rolePtrType    = reflect.TypeOf((*discord.Role)(nil))
	channelPtrType = reflect.TypeOf((*discord.InteractionChannel)(nil))
	attachPtrType  = reflect.TypeOf((*discord.Attachment)(nil))
	textUnmarshal  = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// BindError reports a struct field that cannot receive a decoded option.
type BindError struct {
	Field  string
	Reason string
}

func (e *BindError) Error() string {
	return fmt.Sprintf("command: bind %s: %s", e.Field, e.Reason)
}

// Bind copies the decoded options into the struct pointed to by dst.
//
// Struct fields map to options by the `cmd` tag, or by the field name with
// its first letter lowered; `cmd:"-"` skips a field. At a dispatching level,
// fields map to subcommands and only the selected one is populated; it must
// be a struct or pointer to struct that binds the subcommand's options.
//
// Scalars bind to matching Go kinds, choices bind their variant key to
// string fields (or through encoding.TextUnmarshaler) and their literal to
// numeric fields. Entity options bind to discord.Snowflake or to pointers
// of the resolved entity type. Absent optional options leave the field at
// its zero value. dst is only modified when binding succeeds.
func (o *Options) Bind(dst any) error {
	if dst == nil {
		return errors.New("command: bind target nil")
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("command: bind target must be a non-nil pointer")
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return errors.New("command: bind target must point to a struct")
	}
	fresh := reflect.New(elem.Type()).Elem()
	if err := o.bindStruct(fresh); err != nil {
		return err
	}
	elem.Set(fresh)
	return nil
}

// DecodeInto decodes input and binds the result into a new T.
func DecodeInto[T any](c *Command, input discord.CommandInput) (T, error) {
	var out T
	opts, err := c.Decode(input)
	if err != nil {
		return out, err
	}
	err = opts.Bind(&out)
	return out, err
}

func (o *Options) bindStruct(sv reflect.Value) error {
	t := sv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := optionName(sf)
		if name == "-" {
			continue
		}
		fv := sv.Field(i)
		if o.branches != nil {
			if err := o.bindBranch(name, fv); err != nil {
				return err
			}
			continue
		}
		idx, ok := o.index[name]
		if !ok {
			return &BindError{Field: sf.Name, Reason: fmt.Sprintf("no option named %q in %s", name, strings.Join(o.path, " "))}
		}
		v := o.values[idx]
		if !v.Set {
			continue
		}
		if err := assign(fv, v); err != nil {
			return &BindError{Field: sf.Name, Reason: err.Error()}
		}
	}
	return nil
}

func (o *Options) bindBranch(name string, fv reflect.Value) error {
	if _, ok := o.branches[name]; !ok {
		return &BindError{Field: name, Reason: fmt.Sprintf("no subcommand named %q in %s", name, strings.Join(o.path, " "))}
	}
	if name != o.selected {
		return nil
	}
	switch {
	case fv.Kind() == reflect.Struct:
		return o.sub.bindStruct(fv)
	case fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.Struct:
		child := reflect.New(fv.Type().Elem())
		if err := o.sub.bindStruct(child.Elem()); err != nil {
			return err
		}
		fv.Set(child)
		return nil
	}
	return &BindError{Field: name, Reason: "subcommand fields must be structs or pointers to structs"}
}

func optionName(sf reflect.StructField) string {
	if tag, ok := sf.Tag.Lookup("cmd"); ok {
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return name
		}
	}
	return strings.ToLower(sf.Name[:1]) + sf.Name[1:]
}

func assign(fv reflect.Value, v Value) error {
	switch fv.Type() {
	case valueType:
		fv.Set(reflect.ValueOf(v))
		return nil
	case variantType:
		if v.Variant == nil {
			return fmt.Errorf("%s option is not a choice", v.Kind)
		}
		fv.Set(reflect.ValueOf(*v.Variant))
		return nil
	case snowflakeType:
		if !carriesID(v.Kind) {
			return fmt.Errorf("%s option carries no id", v.Kind)
		}
		fv.Set(reflect.ValueOf(v.ID))
		return nil
	case userPtrType:
		return setEntity(fv, v.User, v.Kind == KindUser || v.Kind == KindMentionable, v.Kind)
	case memberPtrType:
		return setEntity(fv, v.Member, v.Kind == KindUser || v.Kind == KindMentionable, v.Kind)
	case rolePtrType:
		return setEntity(fv, v.Role, v.Kind == KindRole || v.Kind == KindMentionable, v.Kind)
	case channelPtrType:
		return setEntity(fv, v.Channel, v.Kind == KindChannel, v.Kind)
	case attachPtrType:
		return setEntity(fv, v.Attachment, v.Kind == KindAttachment, v.Kind)
	}

	if v.Variant != nil && reflect.PointerTo(fv.Type()).Implements(textUnmarshal) {
		return fv.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(v.Variant.Key))
	}
	if fv.Kind() == reflect.Pointer {
		target := reflect.New(fv.Type().Elem())
		if err := assign(target.Elem(), v); err != nil {
			return err
		}
		fv.Set(target)
		return nil
	}

	lit := literalKindOf(v)
	switch fv.Kind() {
	case reflect.String:
		switch {
		case v.Variant != nil:
			fv.SetString(v.Variant.Key)
		case v.Kind == KindString:
			fv.SetString(v.Str)
		default:
			return fmt.Errorf("cannot bind %s option to string", v.Kind)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if lit != LiteralInteger {
			return fmt.Errorf("cannot bind %s option to %s", v.Kind, fv.Type())
		}
		if fv.OverflowInt(v.Int) {
			return fmt.Errorf("%d overflows %s", v.Int, fv.Type())
		}
		fv.SetInt(v.Int)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if lit != LiteralInteger {
			return fmt.Errorf("cannot bind %s option to %s", v.Kind, fv.Type())
		}
		if v.Int < 0 || fv.OverflowUint(uint64(v.Int)) {
			return fmt.Errorf("%d does not fit %s", v.Int, fv.Type())
		}
		fv.SetUint(uint64(v.Int))
	case reflect.Float32, reflect.Float64:
		switch lit {
		case LiteralNumber:
			fv.SetFloat(v.Float)
		case LiteralInteger:
			fv.SetFloat(float64(v.Int))
		default:
			return fmt.Errorf("cannot bind %s option to %s", v.Kind, fv.Type())
		}
	case reflect.Bool:
		if v.Kind != KindBoolean {
			return fmt.Errorf("cannot bind %s option to bool", v.Kind)
		}
		fv.SetBool(v.Bool)
	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
	return nil
}

// literalKindOf reports which numeric payload of v is meaningful.
func literalKindOf(v Value) LiteralKind {
	switch v.Kind {
	case KindInteger:
		return LiteralInteger
	case KindNumber:
		return LiteralNumber
	case KindChoice:
		return v.Variant.Value.Kind()
	}
	return 0
}

func setEntity[T any](fv reflect.Value, entity *T, compatible bool, kind Kind) error {
	if !compatible {
		return fmt.Errorf("cannot bind %s option to %s", kind, fv.Type())
	}
	if entity != nil {
		fv.Set(reflect.ValueOf(entity))
	}
	return nil
}
